package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrActorIsRequired        = errors.New("actor is required")
	ErrQuotedPriceIsInvalid   = errors.New("quoted price must not be negative")
	ErrEstimateIsInvalid      = errors.New("cost estimates must not be negative")
)

// CreateOrderCommand represents a request to register a new sales order.
// Carries the quoted price and the operator's initial yard-cost and shipping
// estimates from which the estimated gross profit is derived.
//
// Example:
//
//	orderNo, _ := kernel.NewOrderNumber("50STARS4956")
//	cmd, err := NewCreateOrderCommand(
//	    orderNo, "J. Smith", "2014 F-150 tailgate",
//	    decimal.NewFromInt(365), decimal.NewFromInt(250), decimal.NewFromInt(20),
//	    "agent.kelly",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNo          kernel.OrderNumber
	customerName     string
	partDescription  string
	quotedPrice      decimal.Decimal
	yardCostEstimate decimal.Decimal
	shippingEstimate decimal.Decimal
	actor            string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new sales order.
// Validates that the order number is well formed, the customer name and
// acting operator are present, and no monetary input is negative.
func NewCreateOrderCommand(
	orderNo kernel.OrderNumber,
	customerName string,
	partDescription string,
	quotedPrice decimal.Decimal,
	yardCostEstimate decimal.Decimal,
	shippingEstimate decimal.Decimal,
	actor string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderNo(orderNo),
		orderCommand.setCustomerName(customerName),
		orderCommand.setPartDescription(partDescription),
		orderCommand.setQuotedPrice(quotedPrice),
		orderCommand.setEstimates(yardCostEstimate, shippingEstimate),
		orderCommand.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (c CreateOrderCommand) OrderNo() kernel.OrderNumber {
	return c.orderNo
}

// CustomerName returns the purchasing customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// PartDescription returns the free-text description of the sold part.
func (c CreateOrderCommand) PartDescription() string {
	return c.partDescription
}

// QuotedPrice returns the price quoted to the customer.
func (c CreateOrderCommand) QuotedPrice() decimal.Decimal {
	return c.quotedPrice
}

// YardCostEstimate returns the operator's initial part-cost estimate.
func (c CreateOrderCommand) YardCostEstimate() decimal.Decimal {
	return c.yardCostEstimate
}

// ShippingEstimate returns the operator's initial shipping-cost estimate.
func (c CreateOrderCommand) ShippingEstimate() decimal.Decimal {
	return c.shippingEstimate
}

// Actor returns the operator performing the mutation.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setOrderNo(orderNo kernel.OrderNumber) error {
	if err := orderNo.Validate(); err != nil {
		return err
	}

	c.orderNo = orderNo
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setPartDescription(partDescription string) error {
	c.partDescription = partDescription
	return nil
}

func (c *CreateOrderCommand) setQuotedPrice(quotedPrice decimal.Decimal) error {
	if quotedPrice.IsNegative() {
		return ErrQuotedPriceIsInvalid
	}

	c.quotedPrice = quotedPrice
	return nil
}

func (c *CreateOrderCommand) setEstimates(yardCostEstimate, shippingEstimate decimal.Decimal) error {
	if yardCostEstimate.IsNegative() || shippingEstimate.IsNegative() {
		return ErrEstimateIsInvalid
	}

	c.yardCostEstimate = yardCostEstimate
	c.shippingEstimate = shippingEstimate
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
