// Package jobs provides scheduled background tasks for the fulfillment core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. OrderPullJob - Imports pending orders from all active sales channel accounts
// 2. OrderProcessingJob - Advances processable orders through label creation and tracking sync
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pullHandler, uowFactory, processHandler,
//		pullSchedule, processSchedule, batchLimit, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take six-field cron expressions with a seconds field. The pull
// job defaults to every five minutes, the processing job to every thirty
// seconds, so a failed order waits a tick before its next attempt instead of
// being hammered in a tight loop.
//
// # Error Handling
//
// - The pull job isolates per-account failures and logs them without aborting the tick
// - The processing job logs per-order failures and moves on to the next candidate
// - Failed job starts will stop any already running jobs
package jobs
