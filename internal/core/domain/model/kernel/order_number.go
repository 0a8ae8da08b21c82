package kernel

import (
	"strings"

	"partsdesk/internal/pkg/errs"
	"partsdesk/internal/pkg/guard"
)

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not
// created through NewOrderNumber. Returned when validating a zero value.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber",
)

// TopicPrefix is prepended to an order number to form the change-notification
// topic for that order.
const TopicPrefix = "order."

// OrderNumber is the externally-assigned identity of an order. It is a value
// object: immutable once created, compared by value, never re-issued.
//
// The zero value is invalid; construct through NewOrderNumber.
//
// Example:
//
//	no, err := kernel.NewOrderNumber("50STARS4956")
//	if err != nil {
//	    // handle validation error
//	}
//	topic := no.Topic() // "order.50STARS4956"
type OrderNumber struct {
	value string

	guard guard.ConstructorGuard
}

// NewOrderNumber creates an OrderNumber from its external string form.
// Surrounding whitespace is trimmed; an empty result is rejected.
func NewOrderNumber(value string) (OrderNumber, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}

	return OrderNumber{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the OrderNumber was created through NewOrderNumber.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}

// String returns the external string form of the order number.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers by value.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Topic returns the pub/sub routing key for this order's change stream.
func (n OrderNumber) Topic() string {
	return TopicPrefix + n.value
}
