// Package jobs provides scheduled background tasks.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DeliverySweepJob runs every five seconds by default and advances every delivery
// whose deadline has passed (ASSIGNED -> IN_TRANSIT -> DELIVERED).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewDeliverySweepJob(&sweepHandler, "@every 5s", logger))
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are parsed with seconds enabled, so both six-field expressions
// ("*/5 * * * * *") and descriptors ("@every 5s") are accepted. A pass that is
// still running when the next one is due makes the next one skip.
//
// # Error Handling
//
// A failed pass is logged. A panic inside a pass is recovered by cron.Recover and
// logged. Neither stops the schedule.
package jobs
