package order

import (
	"partsdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of a sales order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Placed ──> Customer Approved ──> Yard Processing ──> In Transit
//	                                                         │
//	               ┌─────────────────────────────────────────┤
//	               │                                         │
//	          Dispute ──> Refunded              Order Fulfilled / Voided
//	               │                            Order Cancelled / Refunded
//	               └──> back to any active state
//
// Order Cancelled, Refunded and Voided are additionally reachable from any
// non-terminal state, since a customer may cancel or be refunded at any
// point before a terminal outcome. Fulfilled, Cancelled, Refunded and Voided
// are final for cost purposes; Dispute may still resolve to Refunded or
// return to an active state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order is first created.
	Placed

	// CustomerApproved indicates the customer confirmed the quote.
	CustomerApproved

	// YardProcessing indicates the operations team is sourcing parts
	// from supplier yards.
	YardProcessing

	// InTransit indicates the part has shipped to the customer.
	InTransit

	// OrderFulfilled is the successful terminal outcome.
	OrderFulfilled

	// OrderCancelled is the cancelled terminal outcome. Cost-final.
	OrderCancelled

	// Dispute indicates the order is contested. It may still resolve to
	// Refunded or return to an active state.
	Dispute

	// Refunded indicates the customer was refunded. Cost-final.
	Refunded

	// Voided indicates the order was administratively voided. Cost-final.
	Voided
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Placed:           "Placed",
		CustomerApproved: "Customer Approved",
		YardProcessing:   "Yard Processing",
		InTransit:        "In Transit",
		OrderFulfilled:   "Order Fulfilled",
		OrderCancelled:   "Order Cancelled",
		Dispute:          "Dispute",
		Refunded:         "Refunded",
		Voided:           "Voided",
	}
}

// statusTransitions is the transition table. A target is reachable from a
// source only if listed here; transitioning to the current status is always
// a permitted no-op (recorded in history, state unchanged).
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:           {CustomerApproved, OrderCancelled, Refunded, Voided},
		CustomerApproved: {YardProcessing, OrderCancelled, Refunded, Voided},
		YardProcessing:   {InTransit, OrderCancelled, Refunded, Voided},
		InTransit:        {OrderFulfilled, OrderCancelled, Dispute, Refunded, Voided},
		Dispute:          {CustomerApproved, YardProcessing, InTransit, Refunded},
		OrderFulfilled:   {},
		OrderCancelled:   {},
		Refunded:         {},
		Voided:           {},
	}
}

// StatusFromString maps the display form back to a Status. Used when a
// target status arrives from an external caller.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status " + s)
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidError("status is unknown")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status is invalid")
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is final for cost purposes.
// History and notes may still be appended to a terminal order, but no
// further cost mutation is expected.
func (s Status) IsTerminal() bool {
	switch s {
	case OrderFulfilled, OrderCancelled, Refunded, Voided:
		return true
	default:
		return false
	}
}

// IsCancellation reports whether the status is one of the two outcomes a
// cancellation/refund payload may target.
func (s Status) IsCancellation() bool {
	return s == OrderCancelled || s == Refunded
}

// CanTransitionTo reports whether target is reachable from s under the
// transition table. A same-status transition is always allowed; it records
// an administrative touch without changing state.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	for _, allowed := range statusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition to target.
//
// Returns:
//   - (target, nil) when the transition is on the table or a same-status no-op
//   - (0, InvalidTransitionError) otherwise; the caller's state is unchanged
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
