package jobs

import (
	"fmt"
	"log/slog"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderPullJob       *OrderPullJob
	orderProcessingJob *OrderProcessingJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	pullOrdersHandler commands.PullOrdersCommandHandler,
	uowFactory commands.OrderUoWFactory,
	processOrderHandler commands.ProcessOrderCommandHandler,
	pullSchedule string,
	processSchedule string,
	processBatchLimit int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderPullJob: NewOrderPullJob(pullOrdersHandler, pullSchedule, logger),
		orderProcessingJob: NewOrderProcessingJob(
			uowFactory, processOrderHandler, processSchedule, processBatchLimit, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderPullJob.Start(); err != nil {
		return fmt.Errorf("failed to start order pull job: %w", err)
	}

	if err := jm.orderProcessingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderPullJob.Stop()
		return fmt.Errorf("failed to start order processing job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderProcessingJob.Stop()
	jm.orderPullJob.Stop()
}
