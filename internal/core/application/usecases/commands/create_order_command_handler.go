package commands

import (
	"context"
	"time"

	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in Placed status with the sales tax and estimated gross
// profit derived from the quoted price.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	classifier services.EscalationClassifier
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations. Requires an OrderUoWFactory for transactional persistence;
// the notifier may be nil when change notifications are not wanted.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle processes the order creation command. The order is persisted in
// Placed status; subscribers of its topic are notified after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := order.NewOrder(
		cmd.OrderNo(),
		cmd.CustomerName(),
		cmd.PartDescription(),
		cmd.QuotedPrice(),
		cmd.YardCostEstimate(),
		cmd.ShippingEstimate(),
		cmd.Actor(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishSnapshot(h.notifier, h.classifier, aggregate, ports.Payload{
		"estimatedGP": aggregate.EstimatedGP().String(),
	})
	return nil
}
