package jobs

import (
	"fmt"
	"log/slog"

	"orderhub/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs in the application.
type JobManager struct {
	riderReleaseJob *RiderReleaseJob
}

// NewJobManager creates a job manager wired to the command handlers the jobs
// execute.
func NewJobManager(
	releaseStuckRidersHandler commands.ReleaseStuckRidersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		riderReleaseJob: NewRiderReleaseJob(releaseStuckRidersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.riderReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider release job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.riderReleaseJob.Stop()
}
