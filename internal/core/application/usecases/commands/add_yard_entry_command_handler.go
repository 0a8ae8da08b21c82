package commands

import (
	"context"
	"time"

	"partsdesk/internal/core/domain/model/order"
	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// AddYardEntryCommandHandler appends procurement legs to the yard ledger.
// Appending a leg changes the order's total yard spend, so the current gross
// profit is rewritten in the same transaction.
type AddYardEntryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	calc       services.GPCalculator
	classifier services.EscalationClassifier
}

// NewAddYardEntryCommandHandler creates a handler for yard-ledger appends.
func NewAddYardEntryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) AddYardEntryCommandHandler {
	return AddYardEntryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		calc:       services.NewGPCalculator(),
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle processes the yard-entry append command.
func (h *AddYardEntryCommandHandler) Handle(ctx context.Context, cmd AddYardEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry, err := order.NewYardEntry(cmd.YardName(), cmd.Costs())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	index, err := aggregate.AppendYardEntry(entry, cmd.Actor(), time.Now().UTC())
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

	publishSnapshot(h.notifier, h.classifier, aggregate, ports.Payload{
		"yardIndex": index,
	})
	return nil
}
