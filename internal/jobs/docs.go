// Package jobs provides scheduled background tasks of the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and call command handlers.
//
// # Available Jobs
//
//  1. OutboxRelayJob publishes pending outbox messages to the message bus. Failed
//     messages stay pending and are retried on the next tick. Relay results are
//     counted in the ordering_outbox_* metrics.
//  2. OutboxCleanupJob deletes sent outbox messages older than the retention.
//
// # Usage
//
//	relayJob := jobs.NewOutboxRelayJob(relayHandler, relayCmd, "*/1 * * * * *", m, logger)
//	cleanupJob := jobs.NewOutboxCleanupJob(cleanupHandler, cleanupCmd, "0 0 * * * *", logger)
//
//	jobManager := jobs.NewJobManager(relayJob, cleanupJob)
//	if err := jobManager.StartAll(); err != nil {
//	    return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules come from OUTBOX_RELAY_SCHEDULE and OUTBOX_CLEANUP_SCHEDULE. A tick is
// skipped while the previous run of the same job is still in progress, and a panic
// inside a run is recovered and logged.
//
// # Error Handling
//
//   - a failed relay run is logged and counted; its messages are picked up again
//   - a failed cleanup run is logged only
//   - StartAll stops the relay job again when the cleanup job cannot start
//   - StopAll waits for running ticks to return
package jobs
