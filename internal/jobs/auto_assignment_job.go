package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// sweepSchedule runs the assignment sweep every ten seconds. Each run is
// bounded by the configured assignment timeout per order, so a slow run
// overlaps the next tick rather than piling up unbounded.
const sweepSchedule = "*/10 * * * * *"

// AutoAssignmentJob periodically sweeps orders still in placed status and
// runs the widening courier search for each. Orders the engine could not
// bind stay placed and are retried on the next sweep.
type AutoAssignmentJob struct {
	listUnassigned queries.ListUnassignedOrdersQueryHandler
	autoAssign     commands.StartAutoAssignmentCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewAutoAssignmentJob creates the sweep job.
func NewAutoAssignmentJob(
	listUnassigned queries.ListUnassignedOrdersQueryHandler,
	autoAssign commands.StartAutoAssignmentCommandHandler,
	logger *slog.Logger,
) *AutoAssignmentJob {
	return &AutoAssignmentJob{
		listUnassigned: listUnassigned,
		autoAssign:     autoAssign,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "auto_assignment_job"),
	}
}

// Start schedules the sweep.
func (j *AutoAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(sweepSchedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-assignment job started")
	return nil
}

// Stop stops the sweep.
func (j *AutoAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-assignment job stopped")
}

func (j *AutoAssignmentJob) sweep() {
	ctx := context.Background()

	waiting, err := j.listUnassigned.Handle(ctx, queries.NewListUnassignedOrdersQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list waiting orders", "error", err)
		return
	}

	for _, row := range waiting {
		cmd, cmdErr := commands.NewStartAutoAssignmentCommand(row.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build assignment command",
				"order_id", row.ID, "error", cmdErr)
			continue
		}

		result, runErr := j.autoAssign.Handle(ctx, cmd)
		if runErr != nil {
			// A concurrent manual assignment may have taken the order between
			// the listing and the run; that surfaces as not found and is fine.
			if !errors.Is(runErr, commands.ErrOrderNotFound) {
				j.logger.ErrorContext(ctx, "Assignment run failed",
					"order_id", row.ID, "error", runErr)
			}
			continue
		}

		if result.Success {
			j.logger.InfoContext(ctx, "Order assigned",
				"order_id", row.ID, "courier_id", result.Log.Courier())
		}
	}
}
