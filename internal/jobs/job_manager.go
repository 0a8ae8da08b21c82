// Package jobs provides scheduled background tasks for the order engine,
// implemented with github.com/robfig/cron/v3.
//
// The only job today is the ReconciliationJob, which periodically recomputes
// the derived current GP of recently touched non-terminal orders and repairs
// drift. Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "0 */15 * * * *", 24*time.Hour, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"partsdesk/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *ReconciliationJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command handlers.
func NewJobManager(
	reconcileHandler commands.ReconcileOrdersCommandHandler,
	reconcileSpec string,
	reconcileLookback time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewReconciliationJob(reconcileHandler, reconcileSpec, reconcileLookback, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
