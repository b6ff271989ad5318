// Package jobs provides scheduled background tasks for the engine, built on
// github.com/robfig/cron/v3.
//
// One job is registered: RiderReleaseJob, a reconciliation sweep that drops
// rider assignments whose orders have already terminalized. In the normal
// flow a terminal transition releases its rider transactionally, so the job
// only repairs drift left behind by partial failures or manual data fixes.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(releaseHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
