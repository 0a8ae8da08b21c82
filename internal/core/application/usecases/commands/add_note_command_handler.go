package commands

import (
	"context"

	"partsdesk/internal/core/domain/services"
	"partsdesk/internal/core/ports"
)

// AddNoteCommandHandler attaches free-text annotations to orders and yard
// legs. Notes do not touch gross profit, so no recomputation happens here.
type AddNoteCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	classifier services.EscalationClassifier
}

// NewAddNoteCommandHandler creates a handler for note operations.
func NewAddNoteCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) AddNoteCommandHandler {
	return AddNoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		classifier: services.NewEscalationClassifier(),
	}
}

// Handle processes the note command.
func (h *AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) error {
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

	if index := cmd.YardIndex(); index != nil {
		err = aggregate.AddYardNote(*index, cmd.Note())
	} else {
		err = aggregate.AddSupportNote(cmd.Note())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishSnapshot(h.notifier, h.classifier, aggregate, nil)
	return nil
}
