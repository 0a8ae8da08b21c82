package commands

import (
	"errors"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/pkg/guard"
)

var (
	ErrAddYardEntryCommandIsNotConstructed = errors.New(
		"AddYardEntryCommand must be created via NewAddYardEntryCommand constructor",
	)
	ErrYardNameIsRequired  = errors.New("yard name is required")
	ErrYardCostsAreInvalid = errors.New("yard cost components must not be negative")
)

// AddYardEntryCommand represents a request to append a procurement leg to an
// order's yard ledger. The new leg starts active, not charged, with no
// escalation flag.
type AddYardEntryCommand struct { //nolint:recvcheck //using for validation
	orderNo  kernel.OrderNumber
	yardName string
	costs    order.YardCosts
	actor    string

	guard guard.ConstructorGuard
}

// NewAddYardEntryCommand creates a command to append a yard leg.
func NewAddYardEntryCommand(
	orderNo kernel.OrderNumber,
	yardName string,
	costs order.YardCosts,
	actor string,
) (AddYardEntryCommand, error) {
	entryCommand := AddYardEntryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entryCommand.setOrderNo(orderNo),
		entryCommand.setYardName(yardName),
		entryCommand.setCosts(costs),
		entryCommand.setActor(actor),
	); err != nil {
		return AddYardEntryCommand{}, err
	}

	return entryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddYardEntryCommand) Validate() error {
	return c.guard.Validate(ErrAddYardEntryCommandIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (c AddYardEntryCommand) OrderNo() kernel.OrderNumber {
	return c.orderNo
}

// YardName returns the supplying yard's name.
func (c AddYardEntryCommand) YardName() string {
	return c.yardName
}

// Costs returns the initial monetary components of the leg.
func (c AddYardEntryCommand) Costs() order.YardCosts {
	return c.costs
}

// Actor returns the operator performing the mutation.
func (c AddYardEntryCommand) Actor() string {
	return c.actor
}

func (c *AddYardEntryCommand) setOrderNo(orderNo kernel.OrderNumber) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}

	c.orderNo = orderNo
	return nil
}

func (c *AddYardEntryCommand) setYardName(yardName string) error {
	if yardName == "" {
		return ErrYardNameIsRequired
	}

	c.yardName = yardName
	return nil
}

func (c *AddYardEntryCommand) setCosts(costs order.YardCosts) error {
	if anyNegative(costs) {
		return ErrYardCostsAreInvalid
	}

	c.costs = costs
	return nil
}

func (c *AddYardEntryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func anyNegative(costs order.YardCosts) bool {
	return costs.PartPrice.IsNegative() ||
		costs.Others.IsNegative() ||
		costs.CustShippingReturn.IsNegative() ||
		costs.CustShippingReplacement.IsNegative() ||
		costs.YardShippingReplacement.IsNegative() ||
		costs.RefundedAmount.IsNegative()
}
