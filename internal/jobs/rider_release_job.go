package jobs

import (
	"context"
	"log/slog"

	"orderhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderReleaseJob periodically reconciles rider assigned sets against the
// order store, releasing assignments whose orders have terminalized without a
// matching release. A cheap sweep over busy riders, so running it every
// minute is fine.
type RiderReleaseJob struct {
	handler commands.ReleaseStuckRidersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRiderReleaseJob creates the reconciliation job.
func NewRiderReleaseJob(handler commands.ReleaseStuckRidersCommandHandler, logger *slog.Logger) *RiderReleaseJob {
	return &RiderReleaseJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "rider_release_job"),
	}
}

// Start begins the reconciliation sweep, running once a minute.
func (j *RiderReleaseJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReleaseStuckRidersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build release command", "error", cmdErr)
			return
		}

		repaired, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Rider release job failed", "error", handleErr)
			return
		}
		if len(repaired) > 0 {
			j.logger.InfoContext(ctx, "Released stale rider assignments", "riders", len(repaired))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider release job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *RiderReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rider release job stopped")
}
