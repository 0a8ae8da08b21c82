package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"partsdesk/internal/core/domain/model/kernel"
	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Concurrency control is per order: Update carries the version the aggregate
// was loaded with in its WHERE clause, so a competing writer that committed
// first makes the statement match zero rows and the losing writer gets a
// ConcurrencyConflictError. Writers on different orders never contend.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(orderNo kernel.OrderNumber, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database with version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderNo(), aggregate)
	return nil
}

// Update saves an existing order under an optimistic version check. The yard
// ledger is rewritten wholesale; entries are few per order and carry no
// identity beyond their position.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("order_no = ? AND version = ?", dto.OrderNo, aggregate.Version()).
		Select("*").Omit("order_no", "created_at", "YardEntries").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("orderNo", dto.OrderNo)
	}

	if err := r.replaceYardEntries(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderNo(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceYardEntries(ctx context.Context, dto OrderDTO) error {
	err := r.db.WithContext(ctx).
		Where("order_no = ?", dto.OrderNo).
		Delete(&YardEntryDTO{}).Error
	if err != nil {
		return err
	}

	if len(dto.YardEntries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.YardEntries).Error
}

// Get retrieves an order by its external number, yard ledger included.
func (r *GormOrderRepository) Get(ctx context.Context, orderNo kernel.OrderNumber) (*order.Order, error) {
	if err := orderNo.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("YardEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index")
		}).
		First(&dto, "order_no = ?", orderNo.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNo", orderNo.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveUpdatedSince retrieves all non-terminal orders touched at or
// after the given instant. The reconciliation job uses this to bound its
// sweep to recently changed orders.
func (r *GormOrderRepository) GetActiveUpdatedSince(
	ctx context.Context,
	since time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("YardEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_index")
		}).
		Where("status NOT IN ? AND updated_at >= ?", terminalStatuses(), since).
		Order("order_no").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func terminalStatuses() []string {
	return []string{
		order.OrderFulfilled.String(),
		order.OrderCancelled.String(),
		order.Refunded.String(),
		order.Voided.String(),
	}
}
