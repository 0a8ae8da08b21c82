package commands

import (
	"errors"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/pkg/guard"
)

var (
	ErrAddNoteCommandIsNotConstructed = errors.New(
		"AddNoteCommand must be created via NewAddNoteCommand constructor",
	)
	ErrNoteIsRequired = errors.New("note text is required")
)

// AddNoteCommand represents a request to attach a free-text annotation
// either to the order itself (support note) or to one of its yard legs.
// Notes are not financial state: they never rewrite gross profit and leave
// the change history untouched.
type AddNoteCommand struct { //nolint:recvcheck //using for validation
	orderNo   kernel.OrderNumber
	yardIndex *int
	note      string

	guard guard.ConstructorGuard
}

// NewAddNoteCommand creates a command to attach a note. Pass a nil yardIndex
// for an order-level support note.
func NewAddNoteCommand(
	orderNo kernel.OrderNumber,
	yardIndex *int,
	note string,
) (AddNoteCommand, error) {
	noteCommand := AddNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		noteCommand.setOrderNo(orderNo),
		noteCommand.setYardIndex(yardIndex),
		noteCommand.setNote(note),
	); err != nil {
		return AddNoteCommand{}, err
	}

	return noteCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (c AddNoteCommand) OrderNo() kernel.OrderNumber {
	return c.orderNo
}

// YardIndex returns the target leg's position, or nil for an order-level
// support note.
func (c AddNoteCommand) YardIndex() *int {
	if c.yardIndex == nil {
		return nil
	}

	clone := *c.yardIndex
	return &clone
}

// Note returns the annotation text.
func (c AddNoteCommand) Note() string {
	return c.note
}

func (c *AddNoteCommand) setOrderNo(orderNo kernel.OrderNumber) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}

	c.orderNo = orderNo
	return nil
}

func (c *AddNoteCommand) setYardIndex(yardIndex *int) error {
	if yardIndex == nil {
		return nil
	}
	if *yardIndex < 0 {
		return ErrYardIndexIsInvalid
	}

	clone := *yardIndex
	c.yardIndex = &clone
	return nil
}

func (c *AddNoteCommand) setNote(note string) error {
	if note == "" {
		return ErrNoteIsRequired
	}

	c.note = note
	return nil
}
