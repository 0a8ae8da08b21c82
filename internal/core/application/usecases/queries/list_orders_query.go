package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/pkg/guard"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrPageSizeIsInvalid  = errors.New("page size must not exceed 200")
	ErrOffsetIsInvalid    = errors.New("offset must not be negative")
	ErrDateRangeIsInvalid = errors.New("date range start must not be after its end")
)

// ListOrdersFilter narrows the order listing. All fields are optional; nil
// or empty fields do not constrain the result.
type ListOrdersFilter struct {
	// Status keeps only orders in this lifecycle status.
	Status *order.Status

	// Escalation keeps only orders whose derived bucket matches. The bucket
	// is computed per row at read time, not stored.
	Escalation *services.EscalationBucket

	// CreatedFrom and CreatedTo bound the creation timestamp, inclusive.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Search matches case-insensitively against the order number, customer
	// name, and part description.
	Search string
}

// ListOrdersQuery retrieves a filtered, paginated page of order summaries,
// newest first.
type ListOrdersQuery struct {
	filter ListOrdersFilter
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A non-positive limit falls
// back to the default page size of 50.
func NewListOrdersQuery(filter ListOrdersFilter, limit, offset int) (ListOrdersQuery, error) {
	if limit > maxPageSize {
		return ListOrdersQuery{}, ErrPageSizeIsInvalid
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		return ListOrdersQuery{}, ErrOffsetIsInvalid
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil &&
		filter.CreatedFrom.After(*filter.CreatedTo) {
		return ListOrdersQuery{}, ErrDateRangeIsInvalid
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		filter: filter,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the listing constraints.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of rows skipped before the page.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// OrderSummary is one row of the listing.
type OrderSummary struct {
	OrderNo         string
	CustomerName    string
	PartDescription string
	QuotedPrice     decimal.Decimal
	EstimatedGP     decimal.Decimal
	CurrentGP       decimal.Decimal
	Status          string
	Escalation      string
	CreatedAt       time.Time
}
