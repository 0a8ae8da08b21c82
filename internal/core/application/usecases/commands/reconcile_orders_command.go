package commands

import (
	"errors"
	"time"

	"partsdesk/internal/pkg/errs"
	"partsdesk/internal/pkg/guard"
)

// ReconcileOrdersCommand triggers a gross-profit reconciliation sweep over
// recently touched non-terminal orders. Any order whose stored current GP
// drifted from the value derived from its ledger is rewritten.
type ReconcileOrdersCommand struct {
	updatedSince time.Time

	guard guard.ConstructorGuard
}

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

// NewReconcileOrdersCommand creates a command sweeping orders touched at or
// after updatedSince.
func NewReconcileOrdersCommand(updatedSince time.Time) (ReconcileOrdersCommand, error) {
	if updatedSince.IsZero() {
		return ReconcileOrdersCommand{}, errs.NewValueIsRequiredError("updatedSince")
	}

	return ReconcileOrdersCommand{
		updatedSince: updatedSince,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// UpdatedSince returns the lower bound of the sweep window.
func (c *ReconcileOrdersCommand) UpdatedSince() time.Time {
	return c.updatedSince
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}
