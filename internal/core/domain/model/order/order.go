package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the root aggregate of the sales pipeline: one part sale tracked
// from placement through a terminal outcome, with its per-yard cost ledger,
// refund state and immutable audit history.
//
// Order maintains these invariants:
//   - The order number is externally assigned and immutable once created
//   - Status transitions follow the table in Status
//   - History entries are append-only and never rewritten
//   - GP, status and escalation are the only business-state fields that may
//     be rewritten, and every rewrite is accompanied by a history entry for
//     the mutation that caused it
//   - Yard entries are appended, never reinserted; their index is stable
type Order struct {
	orderNo         kernel.OrderNumber
	customerName    string
	partDescription string

	quotedPrice decimal.Decimal
	salesTax    decimal.Decimal
	estimatedGP decimal.Decimal
	currentGP   decimal.Decimal

	refundAmount       decimal.Decimal
	refundDate         *time.Time
	cancellationReason string

	status       Status
	history      []string
	supportNotes []string
	yardEntries  []YardEntry

	// version is the optimistic-concurrency token. It is bumped by the
	// persistence layer on every committed mutation; a stale version loses
	// the write race and surfaces ConcurrencyConflict.
	version int

	isConstructed bool
}

// NewOrder creates an order in Placed status. The estimated GP is computed
// once, from the operator's initial yard-cost and shipping estimates:
//
//	estimatedGP = quoted − yardCostEstimate − shippingEstimate − salesTax
//
// where salesTax is the fixed 5% of the quoted price. The current GP starts
// at quoted − salesTax, since the yard ledger is empty.
func NewOrder(
	orderNo kernel.OrderNumber,
	customerName string,
	partDescription string,
	quotedPrice decimal.Decimal,
	yardCostEstimate decimal.Decimal,
	shippingEstimate decimal.Decimal,
	actor string,
	now time.Time,
) (*Order, error) {
	if err := orderNo.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(actor) == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}
	if quotedPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidError("quoted price")
	}

	salesTax := kernel.SalesTax(quotedPrice)
	o := &Order{
		orderNo:         orderNo,
		customerName:    strings.TrimSpace(customerName),
		partDescription: strings.TrimSpace(partDescription),
		quotedPrice:     quotedPrice,
		salesTax:        salesTax,
		estimatedGP:     kernel.EstimateGP(quotedPrice, yardCostEstimate, shippingEstimate),
		currentGP:       kernel.RoundMoney(quotedPrice.Sub(salesTax)),
		status:          Placed,
		isConstructed:   true,
	}
	o.appendAction("order created", actor, now)

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The status must be a
// defined lifecycle state; no transition rules are re-applied.
func RestoreOrder(
	orderNo kernel.OrderNumber,
	customerName string,
	partDescription string,
	quotedPrice decimal.Decimal,
	salesTax decimal.Decimal,
	estimatedGP decimal.Decimal,
	currentGP decimal.Decimal,
	refundAmount decimal.Decimal,
	refundDate *time.Time,
	cancellationReason string,
	status Status,
	history []string,
	supportNotes []string,
	yardEntries []YardEntry,
	version int,
) (*Order, error) {
	if err := orderNo.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	entries := make([]YardEntry, len(yardEntries))
	for i := range yardEntries {
		entries[i] = yardEntries[i].clone()
		entries[i].index = i
	}

	return &Order{
		orderNo:            orderNo,
		customerName:       customerName,
		partDescription:    partDescription,
		quotedPrice:        quotedPrice,
		salesTax:           salesTax,
		estimatedGP:        estimatedGP,
		currentGP:          currentGP,
		refundAmount:       refundAmount,
		refundDate:         refundDate,
		cancellationReason: cancellationReason,
		status:             status,
		history:            append([]string(nil), history...),
		supportNotes:       append([]string(nil), supportNotes...),
		yardEntries:        entries,
		version:            version,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// OrderNo returns the order's externally-assigned identity.
func (o *Order) OrderNo() kernel.OrderNumber { return o.orderNo }

// CustomerName returns the customer's display name.
func (o *Order) CustomerName() string { return o.customerName }

// PartDescription returns the free-text description of the part sold.
func (o *Order) PartDescription() string { return o.partDescription }

// QuotedPrice returns the quoted sale price.
func (o *Order) QuotedPrice() decimal.Decimal { return o.quotedPrice }

// SalesTax returns the tax amount derived at creation.
func (o *Order) SalesTax() decimal.Decimal { return o.salesTax }

// EstimatedGP returns the gross profit estimated at creation. It is never
// recomputed; CurrentGP tracks reality.
func (o *Order) EstimatedGP() decimal.Decimal { return o.estimatedGP }

// CurrentGP returns the continuously-recomputed gross profit.
func (o *Order) CurrentGP() decimal.Decimal { return o.currentGP }

// RefundAmount returns the customer refund amount; zero until a
// cancellation/refund event occurs.
func (o *Order) RefundAmount() decimal.Decimal { return o.refundAmount }

// RefundDate returns the refund date, or nil if no refund occurred.
func (o *Order) RefundDate() *time.Time {
	if o.refundDate == nil {
		return nil
	}
	d := *o.refundDate
	return &d
}

// CancellationReason returns the recorded reason, empty until a
// cancellation/refund event occurs.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// Status returns the order's current lifecycle state.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the append-only audit trail, in insertion order.
func (o *Order) History() []string {
	return append([]string(nil), o.history...)
}

// SupportNotes returns a copy of the order-level annotations.
func (o *Order) SupportNotes() []string {
	return append([]string(nil), o.supportNotes...)
}

// YardEntries returns a snapshot of the yard ledger. Mutating the returned
// entries does not affect the aggregate.
func (o *Order) YardEntries() []YardEntry {
	entries := make([]YardEntry, len(o.yardEntries))
	for i := range o.yardEntries {
		entries[i] = o.yardEntries[i].clone()
	}
	return entries
}

// Version returns the optimistic-concurrency token of the loaded snapshot.
func (o *Order) Version() int { return o.version }

// ChangeStatus validates and applies a status transition, appending a
// history entry. Transitioning to the current status is a no-op that still
// records the administrative touch.
func (o *Order) ChangeStatus(target Status, actor string, now time.Time) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.appendHistory("status", next.String(), actor, now)
	return nil
}

// ApplyCancellation records a cancellation/refund event: it validates that
// both the refund amount and the reason are present, transitions to the
// target cancellation status (Order Cancelled or Refunded), and sets the
// refund fields. The caller recomputes GP afterwards.
func (o *Order) ApplyCancellation(
	target Status,
	amount decimal.Decimal,
	reason string,
	date time.Time,
	actor string,
	now time.Time,
) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("refund amount")
	}
	if !target.IsCancellation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"target status",
			fmt.Errorf("%s does not accept a cancellation payload", target),
		)
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.refundAmount = amount
	o.refundDate = &date
	o.cancellationReason = strings.TrimSpace(reason)
	o.appendHistory("status", next.String(), actor, now)
	o.appendHistory("customer refunded amount", amount.String(), actor, now)
	o.appendHistory("cancellation reason", o.cancellationReason, actor, now)
	return nil
}

// AppendYardEntry adds a yard leg to the ledger and returns its assigned
// index. Yard entries may be appended in any non-terminal state.
func (o *Order) AppendYardEntry(entry YardEntry, actor string, now time.Time) (int, error) {
	if strings.TrimSpace(actor) == "" {
		return 0, errs.NewValueIsRequiredError("actor")
	}

	entry = entry.clone()
	entry.index = len(o.yardEntries)
	o.yardEntries = append(o.yardEntries, entry)
	o.appendAction(fmt.Sprintf("yard %d (%s) added", entry.index+1, entry.yardName), actor, now)
	return entry.index, nil
}

// UpdateYardCosts rewrites the monetary fields of a yard leg.
func (o *Order) UpdateYardCosts(index int, costs YardCosts, actor string, now time.Time) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}

	entry.SetCosts(costs)
	o.appendAction(fmt.Sprintf("yard %d costs updated", index+1), actor, now)
	return nil
}

// UpdateYardShipping records a structured shipping cost on a yard leg.
func (o *Order) UpdateYardShipping(
	index int,
	payer ShippingPayer,
	cost decimal.Decimal,
	actor string,
	now time.Time,
) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}

	entry.SetShipping(payer, cost)
	o.appendHistory(
		fmt.Sprintf("yard %d shipping", index+1),
		fmt.Sprintf("%s: %s", payer, cost),
		actor, now,
	)
	return nil
}

// UpdateYardLegacyShipping records the free-text shipping-detail string on a
// yard leg. Legacy import path only; unparsable strings degrade to zero at
// aggregation time, they are not rejected here.
func (o *Order) UpdateYardLegacyShipping(index int, detail string, actor string, now time.Time) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}

	entry.SetLegacyShipping(detail)
	o.appendHistory(fmt.Sprintf("yard %d shipping", index+1), detail, actor, now)
	return nil
}

// UpdateYardStatus rewrites the transaction and payment status of a yard leg.
func (o *Order) UpdateYardStatus(
	index int,
	status YardStatus,
	payment PaymentStatus,
	actor string,
	now time.Time,
) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}

	entry.SetStatus(status, payment)
	o.appendHistory(fmt.Sprintf("yard %d status", index+1), status.String(), actor, now)
	o.appendHistory(fmt.Sprintf("yard %d payment status", index+1), payment.String(), actor, now)
	return nil
}

// SetYardEscalation flags or clears escalation on a yard leg.
func (o *Order) SetYardEscalation(index int, flag bool, actor string, now time.Time) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}

	entry.SetEscalation(flag)
	o.appendHistory(fmt.Sprintf("yard %d escalation", index+1), fmt.Sprintf("%t", flag), actor, now)
	return nil
}

// AddYardNote appends a free-text annotation to a yard leg. Notes are not
// financial state and leave history untouched.
func (o *Order) AddYardNote(index int, note string) error {
	entry, err := o.entryAt(index)
	if err != nil {
		return err
	}
	return entry.AddNote(note)
}

// AddSupportNote appends an order-level free-text annotation.
func (o *Order) AddSupportNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return errs.NewValueIsRequiredError("support note")
	}
	o.supportNotes = append(o.supportNotes, note)
	return nil
}

// ApplyCurrentGP stores a freshly recomputed current GP. The value must come
// from the GP calculator over this order's full ledger snapshot; it is never
// hand-edited. The triggering mutation's history entry covers the rewrite.
func (o *Order) ApplyCurrentGP(value decimal.Decimal) {
	o.currentGP = kernel.RoundMoney(value)
}

func (o *Order) entryAt(index int) (*YardEntry, error) {
	if index < 0 || index >= len(o.yardEntries) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"yard index",
			fmt.Errorf("%d is out of range for a ledger of %d", index, len(o.yardEntries)),
		)
	}
	return &o.yardEntries[index], nil
}

// appendHistory records a field rewrite in the audit format
// "<field> updated to <value> by <actor> on <timestamp>".
func (o *Order) appendHistory(field, value, actor string, now time.Time) {
	o.history = append(o.history, fmt.Sprintf(
		"%s updated to %s by %s on %s", field, value, actor, now.Format(time.RFC3339),
	))
}

// appendAction records a non-rewrite action, e.g. order creation.
func (o *Order) appendAction(action, actor string, now time.Time) {
	o.history = append(o.history, fmt.Sprintf(
		"%s by %s on %s", action, actor, now.Format(time.RFC3339),
	))
}
