// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. AutoAssignmentJob - Sweeps orders still waiting for a courier and runs
// the widening search for each of them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(listUnassignedHandler, autoAssignHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Search exhaustion is a normal outcome and is not logged as an error; the
// order stays placed and the next sweep picks it up again. Locator failures
// and storage errors are logged and the sweep moves on to the next order.
package jobs
