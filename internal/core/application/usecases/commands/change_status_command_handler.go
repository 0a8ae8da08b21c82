package commands

import (
	"context"
	"time"

	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// ChangeStatusCommandHandler handles lifecycle transitions, including the
// cancellation family. Every successful transition rewrites the current
// gross profit before persisting, so a refund is reflected in GP within the
// same transaction that records it.
type ChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	calc       services.GPCalculator
	classifier services.EscalationClassifier
}

// NewChangeStatusCommandHandler creates a handler for status transitions.
func NewChangeStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		calc:       services.NewGPCalculator(),
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle processes the status change command. Transitions are checked
// against the lifecycle table; an illegal pair surfaces an
// InvalidTransitionError and leaves the order untouched.
func (h *ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderNo())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if cancellation := cmd.Cancellation(); cancellation != nil {
		date := now
		if cancellation.Date != nil {
			date = *cancellation.Date
		}
		err = aggregate.ApplyCancellation(
			cmd.Target(), cancellation.Amount, cancellation.Reason, date, cmd.Actor(), now,
		)
	} else {
		err = aggregate.ChangeStatus(cmd.Target(), cmd.Actor(), now)
	}
	if err != nil {
		return err
	}

	aggregate.ApplyCurrentGP(h.calc.CurrentGP(aggregate))

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	extra := ports.Payload{}
	if cmd.Cancellation() != nil {
		extra["refundAmount"] = aggregate.RefundAmount().String()
	}
	publishSnapshot(h.notifier, h.classifier, aggregate, extra)
	return nil
}
