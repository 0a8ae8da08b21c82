package commands

import (
	"context"

	"partsdesk/internal/core/domain/services"
)

// ReconcileOrdersCommandHandler repairs gross-profit drift across active
// orders. The current GP column is derived state; a writer that bypassed the
// engine, or a historical bug, can leave it out of step with the ledger.
// The sweep recomputes it from scratch and persists only the orders that
// actually drifted, so a clean sweep writes nothing.
type ReconcileOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	calc       services.GPCalculator
}

// NewReconcileOrdersCommandHandler creates a handler for reconciliation
// sweeps.
func NewReconcileOrdersCommandHandler(uowFactory OrderUoWFactory) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		calc:       services.NewGPCalculator(),
	}
}

// Handle processes the reconciliation command. All repairs occur within a
// single transaction; there is no change notification because no business
// fact changed, only a derived column was brought back in line.
func (h *ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) error {
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

	repo := uow.OrderRepository()
	orders, err := repo.GetActiveUpdatedSince(ctx, cmd.UpdatedSince())
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		derived := h.calc.CurrentGP(aggregate)
		if aggregate.CurrentGP().Equal(derived) {
			continue
		}

		aggregate.ApplyCurrentGP(derived)
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
