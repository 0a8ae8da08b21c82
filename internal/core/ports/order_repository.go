// Package ports defines the contracts between the order engine and its
// infrastructure collaborators: persistence, unit-of-work transaction
// boundaries, and the change-notification fan-out.
package ports

import (
	"context"
	"time"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every operation is scoped to a single order document; mutations on
// different orders proceed fully in parallel with no cross-order locking.
type OrderRepository interface {
	// Add persists a new order aggregate. The order number must not already
	// exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order under an optimistic
	// version check. If a competing mutation committed first, Update returns
	// a ConcurrencyConflictError and the caller must refetch and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its order number, with its full
	// yard ledger, history and notes.
	Get(ctx context.Context, orderNo kernel.OrderNumber) (*order.Order, error)

	// GetActiveUpdatedSince retrieves non-terminal orders touched since the
	// given time. Used by the reconciliation sweep to repair GP drift.
	GetActiveUpdatedSince(ctx context.Context, since time.Time) ([]*order.Order, error)
}
