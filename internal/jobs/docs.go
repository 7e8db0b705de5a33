// Package jobs provides scheduled background tasks for the POD service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ConnectivityCheckJob probes the jobs table on CONNECTIVITY_CHECK_SCHEDULE
// (default "@every 1m") and logs the classified outcome: missing settings,
// authentication, missing table or unreachable server.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(checker, config.ConnectivityCheckSchedule, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Check failures are logged on every run and never stop the service. A
// schedule that cannot be parsed makes StartAll fail.
package jobs
