package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/pkg/guard"
)

var (
	ErrUpdateYardEntryCommandIsNotConstructed = errors.New(
		"UpdateYardEntryCommand must be created via NewUpdateYardEntryCommand constructor",
	)
	ErrYardIndexIsInvalid = errors.New("yard index must not be negative")
	ErrNoChangesRequested = errors.New("at least one yard-entry change is required")
	ErrShippingIsAmbiguous = errors.New(
		"structured shipping and a legacy shipping detail cannot be set together",
	)
	ErrShippingCostIsInvalid = errors.New("shipping cost must not be negative")
)

// ShippingChange is a structured shipping cost assignment for a yard leg:
// who pays, and how much.
type ShippingChange struct {
	Payer order.ShippingPayer
	Cost  decimal.Decimal
}

// YardStatusChange rewrites a leg's transaction and payment status together.
// A PO-cancelled leg whose card was charged keeps counting toward spend.
type YardStatusChange struct {
	Status  order.YardStatus
	Payment order.PaymentStatus
}

// UpdateYardEntryCommand represents a request to rewrite parts of an
// existing yard leg. Each section is optional; nil sections leave the
// corresponding fields untouched. At least one section must be present.
type UpdateYardEntryCommand struct { //nolint:recvcheck //using for validation
	orderNo        kernel.OrderNumber
	yardIndex      int
	costs          *order.YardCosts
	shipping       *ShippingChange
	legacyShipping *string
	statusChange   *YardStatusChange
	escalation     *bool
	actor          string

	guard guard.ConstructorGuard
}

// NewUpdateYardEntryCommand creates a command to rewrite a yard leg.
// Structured shipping and the legacy free-text detail are mutually
// exclusive within one command.
func NewUpdateYardEntryCommand(
	orderNo kernel.OrderNumber,
	yardIndex int,
	costs *order.YardCosts,
	shipping *ShippingChange,
	legacyShipping *string,
	statusChange *YardStatusChange,
	escalation *bool,
	actor string,
) (UpdateYardEntryCommand, error) {
	entryCommand := UpdateYardEntryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entryCommand.setOrderNo(orderNo),
		entryCommand.setYardIndex(yardIndex),
		entryCommand.setCosts(costs),
		entryCommand.setShipping(shipping, legacyShipping),
		entryCommand.setStatusChange(statusChange),
		entryCommand.setEscalation(escalation),
		entryCommand.setActor(actor),
		entryCommand.requireChanges(costs, shipping, legacyShipping, statusChange, escalation),
	); err != nil {
		return UpdateYardEntryCommand{}, err
	}

	return entryCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateYardEntryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateYardEntryCommandIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (c UpdateYardEntryCommand) OrderNo() kernel.OrderNumber {
	return c.orderNo
}

// YardIndex returns the zero-based position of the leg in the ledger.
func (c UpdateYardEntryCommand) YardIndex() int {
	return c.yardIndex
}

// Costs returns the replacement cost components, or nil.
func (c UpdateYardEntryCommand) Costs() *order.YardCosts {
	if c.costs == nil {
		return nil
	}

	clone := *c.costs
	return &clone
}

// Shipping returns the structured shipping assignment, or nil.
func (c UpdateYardEntryCommand) Shipping() *ShippingChange {
	if c.shipping == nil {
		return nil
	}

	clone := *c.shipping
	return &clone
}

// LegacyShipping returns the free-text shipping detail, or nil.
func (c UpdateYardEntryCommand) LegacyShipping() *string {
	if c.legacyShipping == nil {
		return nil
	}

	clone := *c.legacyShipping
	return &clone
}

// StatusChange returns the transaction/payment status rewrite, or nil.
func (c UpdateYardEntryCommand) StatusChange() *YardStatusChange {
	if c.statusChange == nil {
		return nil
	}

	clone := *c.statusChange
	return &clone
}

// Escalation returns the escalation flag assignment, or nil.
func (c UpdateYardEntryCommand) Escalation() *bool {
	if c.escalation == nil {
		return nil
	}

	clone := *c.escalation
	return &clone
}

// Actor returns the operator performing the mutation.
func (c UpdateYardEntryCommand) Actor() string {
	return c.actor
}

func (c *UpdateYardEntryCommand) setOrderNo(orderNo kernel.OrderNumber) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}

	c.orderNo = orderNo
	return nil
}

func (c *UpdateYardEntryCommand) setYardIndex(yardIndex int) error {
	if yardIndex < 0 {
		return ErrYardIndexIsInvalid
	}

	c.yardIndex = yardIndex
	return nil
}

func (c *UpdateYardEntryCommand) setCosts(costs *order.YardCosts) error {
	if costs == nil {
		return nil
	}
	if anyNegative(*costs) {
		return ErrYardCostsAreInvalid
	}

	clone := *costs
	c.costs = &clone
	return nil
}

func (c *UpdateYardEntryCommand) setShipping(shipping *ShippingChange, legacyShipping *string) error {
	if shipping != nil && legacyShipping != nil {
		return ErrShippingIsAmbiguous
	}

	if shipping != nil {
		if shipping.Cost.IsNegative() {
			return ErrShippingCostIsInvalid
		}
		clone := *shipping
		c.shipping = &clone
	}
	if legacyShipping != nil {
		clone := *legacyShipping
		c.legacyShipping = &clone
	}
	return nil
}

func (c *UpdateYardEntryCommand) setStatusChange(statusChange *YardStatusChange) error {
	if statusChange == nil {
		return nil
	}

	clone := *statusChange
	c.statusChange = &clone
	return nil
}

func (c *UpdateYardEntryCommand) setEscalation(escalation *bool) error {
	if escalation == nil {
		return nil
	}

	clone := *escalation
	c.escalation = &clone
	return nil
}

func (c *UpdateYardEntryCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}

func (c *UpdateYardEntryCommand) requireChanges(
	costs *order.YardCosts,
	shipping *ShippingChange,
	legacyShipping *string,
	statusChange *YardStatusChange,
	escalation *bool,
) error {
	if costs == nil && shipping == nil && legacyShipping == nil &&
		statusChange == nil && escalation == nil {
		return ErrNoChangesRequested
	}
	return nil
}
