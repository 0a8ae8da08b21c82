package jobs

import (
	"context"
	"log/slog"
	"time"

	"partsdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob schedules the gross-profit reconciliation sweep. Each run
// recomputes current GP for non-terminal orders touched within the lookback
// window and repairs any drift.
type ReconciliationJob struct {
	handler  commands.ReconcileOrdersCommandHandler
	cron     *cron.Cron
	spec     string
	lookback time.Duration
	logger   *slog.Logger
}

// NewReconciliationJob creates a reconciliation job. The spec is a six-field
// cron expression (seconds first); lookback bounds how far back a sweep
// reaches for recently touched orders.
func NewReconciliationJob(
	handler commands.ReconcileOrdersCommandHandler,
	spec string,
	lookback time.Duration,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		spec:     spec,
		lookback: lookback,
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start begins the reconciliation job on its cron schedule.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReconcileOrdersCommand(time.Now().UTC().Add(-j.lookback))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep could not be constructed", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.spec)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
