package commands

import (
	"context"
	"time"

	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// UpdateYardEntryCommandHandler rewrites parts of an existing yard leg:
// costs, shipping, transaction/payment status, and the escalation flag. All
// requested sections apply within one transaction, followed by a single
// gross-profit rewrite.
type UpdateYardEntryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	calc       services.GPCalculator
	classifier services.EscalationClassifier
}

// NewUpdateYardEntryCommandHandler creates a handler for yard-leg rewrites.
func NewUpdateYardEntryCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) UpdateYardEntryCommandHandler {
	return UpdateYardEntryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		calc:       services.NewGPCalculator(),
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle processes the yard-entry update command. An out-of-range index
// surfaces a ValueIsInvalidError from the aggregate.
func (h *UpdateYardEntryCommandHandler) Handle(ctx context.Context, cmd UpdateYardEntryCommand) error {
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
	index := cmd.YardIndex()

	if costs := cmd.Costs(); costs != nil {
		if err = aggregate.UpdateYardCosts(index, *costs, cmd.Actor(), now); err != nil {
			return err
		}
	}
	if shipping := cmd.Shipping(); shipping != nil {
		if err = aggregate.UpdateYardShipping(index, shipping.Payer, shipping.Cost, cmd.Actor(), now); err != nil {
			return err
		}
	}
	if detail := cmd.LegacyShipping(); detail != nil {
		if err = aggregate.UpdateYardLegacyShipping(index, *detail, cmd.Actor(), now); err != nil {
			return err
		}
	}
	if statusChange := cmd.StatusChange(); statusChange != nil {
		if err = aggregate.UpdateYardStatus(index, statusChange.Status, statusChange.Payment, cmd.Actor(), now); err != nil {
			return err
		}
	}
	if escalation := cmd.Escalation(); escalation != nil {
		if err = aggregate.SetYardEscalation(index, *escalation, cmd.Actor(), now); err != nil {
			return err
		}
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
