package jobs

import (
	"fmt"
)

// JobManager starts and stops the background jobs of the service together.
type JobManager struct {
	outboxRelayJob   *OutboxRelayJob
	outboxCleanupJob *OutboxCleanupJob
}

func NewJobManager(outboxRelayJob *OutboxRelayJob, outboxCleanupJob *OutboxCleanupJob) *JobManager {
	return &JobManager{
		outboxRelayJob:   outboxRelayJob,
		outboxCleanupJob: outboxCleanupJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.outboxCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start outbox cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.outboxCleanupJob.Stop()
	jm.outboxRelayJob.Stop()
}
