package commands

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/pkg/guard"
)

var (
	ErrChangeStatusCommandIsNotConstructed = errors.New(
		"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
	)
	ErrCancellationIsIncomplete = errors.New(
		"cancellation requires both a refund amount and a reason",
	)
	ErrCancellationNotAccepted = errors.New(
		"cancellation details are only accepted for Order Cancelled and Refunded",
	)
	ErrRefundAmountIsInvalid = errors.New("refund amount must not be negative")
)

// Cancellation carries the refund details that accompany a transition into
// Order Cancelled or Refunded. The refund date defaults to the time of the
// mutation when left nil.
type Cancellation struct {
	Amount decimal.Decimal
	Reason string
	Date   *time.Time
}

// ChangeStatusCommand represents a request to move an order to another
// lifecycle status. A cancellation payload is mandatory for transitions into
// a cancellation-family status and rejected for any other target.
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderNo      kernel.OrderNumber
	target       order.Status
	cancellation *Cancellation
	actor        string

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand creates a command to transition an order. Pass a
// nil cancellation for plain status changes.
func NewChangeStatusCommand(
	orderNo kernel.OrderNumber,
	target order.Status,
	cancellation *Cancellation,
	actor string,
) (ChangeStatusCommand, error) {
	statusCommand := ChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderNo(orderNo),
		statusCommand.setTarget(target),
		statusCommand.setCancellation(target, cancellation),
		statusCommand.setActor(actor),
	); err != nil {
		return ChangeStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (c ChangeStatusCommand) OrderNo() kernel.OrderNumber {
	return c.orderNo
}

// Target returns the requested lifecycle status.
func (c ChangeStatusCommand) Target() order.Status {
	return c.target
}

// Cancellation returns the refund details, or nil for plain transitions.
func (c ChangeStatusCommand) Cancellation() *Cancellation {
	if c.cancellation == nil {
		return nil
	}

	clone := *c.cancellation
	return &clone
}

// Actor returns the operator performing the mutation.
func (c ChangeStatusCommand) Actor() string {
	return c.actor
}

func (c *ChangeStatusCommand) setOrderNo(orderNo kernel.OrderNumber) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}

	c.orderNo = orderNo
	return nil
}

func (c *ChangeStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeStatusCommand) setCancellation(target order.Status, cancellation *Cancellation) error {
	if cancellation == nil {
		if target.IsCancellation() {
			return ErrCancellationIsIncomplete
		}
		return nil
	}

	if !target.IsCancellation() {
		return ErrCancellationNotAccepted
	}
	if cancellation.Reason == "" {
		return ErrCancellationIsIncomplete
	}
	if cancellation.Amount.IsNegative() {
		return ErrRefundAmountIsInvalid
	}

	clone := *cancellation
	c.cancellation = &clone
	return nil
}

func (c *ChangeStatusCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
