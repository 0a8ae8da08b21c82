// Package queries contains read operations over persisted orders. Handlers
// query the database directly and map rows into response structs; derived
// values such as the escalation bucket are computed from the live snapshot
// at read time, never read from a stored column.
package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full snapshot of a single order: identity,
// financials, lifecycle status, yard ledger, notes, and change history.
type GetOrderQuery struct {
	orderNo kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's snapshot.
func NewGetOrderQuery(orderNo kernel.OrderNumber) (GetOrderQuery, error) {
	if err := orderNo.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderNo: orderNo,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderNo returns the external order identifier.
func (q GetOrderQuery) OrderNo() kernel.OrderNumber {
	return q.orderNo
}

// YardEntryResponse is one procurement leg of the snapshot.
type YardEntryResponse struct {
	Index                   int
	YardName                string
	PartPrice               decimal.Decimal
	Others                  decimal.Decimal
	CustShippingReturn      decimal.Decimal
	CustShippingReplacement decimal.Decimal
	YardShippingReplacement decimal.Decimal
	RefundedAmount          decimal.Decimal
	ShippingDetail          string
	ShippingPayer           string
	ShippingCost            decimal.Decimal
	Status                  string
	PaymentStatus           string
	Escalation              bool
	Notes                   []string
}

// GetOrderQueryResponse is the full order snapshot. Escalation carries the
// bucket derived from the current status and the primary yard's flag.
type GetOrderQueryResponse struct {
	OrderNo            string
	CustomerName       string
	PartDescription    string
	QuotedPrice        decimal.Decimal
	SalesTax           decimal.Decimal
	EstimatedGP        decimal.Decimal
	CurrentGP          decimal.Decimal
	RefundAmount       decimal.Decimal
	RefundDate         *time.Time
	CancellationReason string
	Status             string
	Escalation         string
	History            []string
	SupportNotes       []string
	YardEntries        []YardEntryResponse
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
