package order

import (
	"strings"

	"partsdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// YardStatus is the status of one supplier-side sub-transaction.
type YardStatus int

const (
	// YardActive is the normal working state of a yard leg.
	YardActive YardStatus = iota

	// YardPOCancelled indicates the purchase order with the yard was
	// cancelled. A cancelled leg contributes to spend only if the card was
	// actually charged.
	YardPOCancelled
)

// String returns the display form of the yard status.
func (s YardStatus) String() string {
	if s == YardPOCancelled {
		return "PO cancelled"
	}
	return "Active"
}

// YardStatusFromString maps the display form back to a YardStatus.
// Unrecognized input maps to YardActive.
func YardStatusFromString(s string) YardStatus {
	if strings.EqualFold(strings.TrimSpace(s), "PO cancelled") {
		return YardPOCancelled
	}
	return YardActive
}

// PaymentStatus is the card-charge state of a yard leg.
type PaymentStatus int

const (
	// PaymentNotCharged means no money moved to the yard.
	PaymentNotCharged PaymentStatus = iota

	// PaymentCardCharged means the yard was paid.
	PaymentCardCharged
)

// String returns the display form of the payment status.
func (s PaymentStatus) String() string {
	if s == PaymentCardCharged {
		return "Card charged"
	}
	return "Not charged"
}

// PaymentStatusFromString maps the display form back to a PaymentStatus.
// Unrecognized input maps to PaymentNotCharged.
func PaymentStatusFromString(s string) PaymentStatus {
	if strings.EqualFold(strings.TrimSpace(s), "Card charged") {
		return PaymentCardCharged
	}
	return PaymentNotCharged
}

// ShippingPayer identifies who carries the shipping cost of a yard leg.
// It is the structured replacement for the legacy free-text shipping-detail
// string ("Own shipping: 42.50" / "Yard shipping: 20").
type ShippingPayer int

const (
	// ShippingUnspecified means the leg carries no structured shipping cost;
	// the legacy detail string, if any, is parsed instead.
	ShippingUnspecified ShippingPayer = iota

	// ShippingOwn means we paid for shipping.
	ShippingOwn

	// ShippingYard means the yard paid for shipping.
	ShippingYard
)

// String returns the display form of the shipping payer.
func (p ShippingPayer) String() string {
	switch p {
	case ShippingOwn:
		return "Own shipping"
	case ShippingYard:
		return "Yard shipping"
	default:
		return "Unspecified"
	}
}

// ShippingPayerFromString parses a display form back into a ShippingPayer.
// Unrecognized values coerce to ShippingUnspecified.
func ShippingPayerFromString(s string) ShippingPayer {
	switch {
	case strings.EqualFold(s, "Own shipping"):
		return ShippingOwn
	case strings.EqualFold(s, "Yard shipping"):
		return ShippingYard
	default:
		return ShippingUnspecified
	}
}

// YardCosts groups the monetary fields of a yard leg. All fields default to
// zero; a zero value is a valid, empty cost set.
type YardCosts struct {
	// PartPrice is what the yard charged for the part itself.
	PartPrice decimal.Decimal

	// Others is miscellaneous yard-side cost.
	Others decimal.Decimal

	// CustShippingReturn is customer-absorbed shipping-return cost.
	CustShippingReturn decimal.Decimal

	// CustShippingReplacement is customer-absorbed shipping-replacement cost.
	CustShippingReplacement decimal.Decimal

	// YardShippingReplacement is yard-absorbed shipping-replacement cost.
	YardShippingReplacement decimal.Decimal

	// RefundedAmount is what the yard refunded us; it reduces spend.
	RefundedAmount decimal.Decimal
}

// YardEntry is one supplier-side sub-transaction tied to an Order. Entries
// are identified by their stable positional index in the order's yard
// ledger: yards are appended, never reinserted.
type YardEntry struct {
	index    int
	yardName string

	costs YardCosts

	// shippingDetail is the legacy free-text encoding, e.g.
	// "Own shipping: 42.50". Kept for import compatibility; the structured
	// pair below is preferred when set.
	shippingDetail string
	shippingPayer  ShippingPayer
	shippingCost   decimal.Decimal

	status        YardStatus
	paymentStatus PaymentStatus
	escalation    bool
	notes         []string
}

// NewYardEntry creates a yard leg in YardActive / PaymentNotCharged state.
// The index is assigned by the owning Order when the entry is appended.
func NewYardEntry(yardName string, costs YardCosts) (YardEntry, error) {
	if strings.TrimSpace(yardName) == "" {
		return YardEntry{}, errs.NewValueIsRequiredError("yard name")
	}

	return YardEntry{
		yardName: strings.TrimSpace(yardName),
		costs:    costs,
	}, nil
}

// RestoreYardEntry rebuilds a yard leg from persistence. No business
// validation is re-run beyond enum coercion done by the caller.
func RestoreYardEntry(
	index int,
	yardName string,
	costs YardCosts,
	shippingDetail string,
	shippingPayer ShippingPayer,
	shippingCost decimal.Decimal,
	status YardStatus,
	paymentStatus PaymentStatus,
	escalation bool,
	notes []string,
) YardEntry {
	return YardEntry{
		index:          index,
		yardName:       yardName,
		costs:          costs,
		shippingDetail: shippingDetail,
		shippingPayer:  shippingPayer,
		shippingCost:   shippingCost,
		status:         status,
		paymentStatus:  paymentStatus,
		escalation:     escalation,
		notes:          append([]string(nil), notes...),
	}
}

// Index returns the entry's stable position in the yard ledger.
func (e *YardEntry) Index() int { return e.index }

// YardName returns the supplier yard's name.
func (e *YardEntry) YardName() string { return e.yardName }

// Costs returns the monetary fields of the leg.
func (e *YardEntry) Costs() YardCosts { return e.costs }

// ShippingDetail returns the legacy free-text shipping encoding.
func (e *YardEntry) ShippingDetail() string { return e.shippingDetail }

// ShippingPayer returns who carries the structured shipping cost.
func (e *YardEntry) ShippingPayer() ShippingPayer { return e.shippingPayer }

// ShippingCost returns the structured shipping cost. Meaningful only when
// ShippingPayer is not ShippingUnspecified.
func (e *YardEntry) ShippingCost() decimal.Decimal { return e.shippingCost }

// Status returns the yard-transaction status of the leg.
func (e *YardEntry) Status() YardStatus { return e.status }

// PaymentStatus returns the card-charge state of the leg.
func (e *YardEntry) PaymentStatus() PaymentStatus { return e.paymentStatus }

// Escalation reports whether this leg is under escalation.
func (e *YardEntry) Escalation() bool { return e.escalation }

// Notes returns a copy of the leg's free-text annotations.
func (e *YardEntry) Notes() []string {
	return append([]string(nil), e.notes...)
}

// SetCosts rewrites the leg's monetary fields.
func (e *YardEntry) SetCosts(costs YardCosts) {
	e.costs = costs
}

// SetLegacyShipping records the free-text shipping-detail string and clears
// any structured shipping cost. Used on the legacy import path only.
func (e *YardEntry) SetLegacyShipping(detail string) {
	e.shippingDetail = detail
	e.shippingPayer = ShippingUnspecified
	e.shippingCost = decimal.Zero
}

// SetShipping records the structured shipping cost for the leg.
func (e *YardEntry) SetShipping(payer ShippingPayer, cost decimal.Decimal) {
	e.shippingPayer = payer
	e.shippingCost = cost
}

// SetStatus rewrites the transaction and payment status of the leg.
func (e *YardEntry) SetStatus(status YardStatus, payment PaymentStatus) {
	e.status = status
	e.paymentStatus = payment
}

// SetEscalation flags or clears the escalation state of the leg.
func (e *YardEntry) SetEscalation(flag bool) {
	e.escalation = flag
}

// AddNote appends a free-text annotation to the leg.
func (e *YardEntry) AddNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return errs.NewValueIsRequiredError("yard note")
	}
	e.notes = append(e.notes, note)
	return nil
}

// CountsTowardSpend reports whether the leg participates in the yard-spend
// total. A PO-cancelled leg counts only if the card was actually charged:
// cancellation without a charge must not inflate spend.
func (e *YardEntry) CountsTowardSpend() bool {
	if e.status == YardPOCancelled {
		return e.paymentStatus == PaymentCardCharged
	}
	return true
}

// clone returns a value copy with its own notes slice, so callers holding a
// snapshot cannot mutate the aggregate's ledger.
func (e *YardEntry) clone() YardEntry {
	c := *e
	c.notes = append([]string(nil), e.notes...)
	return c
}
