package jobs

import (
	"context"
	"log/slog"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderProcessingJob drives the fulfillment pipeline. On each tick it picks
// up processable orders and advances every one of them by a single stage.
// Failed orders are retried on later ticks until their retry budget runs out.
type OrderProcessingJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.ProcessOrderCommandHandler
	schedule   string
	batchLimit int
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderProcessingJob creates a new job that processes up to batchLimit
// orders per tick on the given cron schedule.
func NewOrderProcessingJob(
	uowFactory commands.OrderUoWFactory,
	handler commands.ProcessOrderCommandHandler,
	schedule string,
	batchLimit int,
	logger *slog.Logger,
) *OrderProcessingJob {
	return &OrderProcessingJob{
		uowFactory: uowFactory,
		handler:    handler,
		schedule:   schedule,
		batchLimit: batchLimit,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_processing_job"),
	}
}

// Start begins the order processing job on its configured schedule.
func (j *OrderProcessingJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		uow := j.uowFactory.Create()
		orders, err := uow.OrderRepository().GetAllProcessable(ctx, j.batchLimit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Processable order lookup failed", "error", err)
			return
		}

		for _, o := range orders {
			cmd, err := commands.NewProcessOrderCommand(o.ID(), nil)
			if err != nil {
				j.logger.ErrorContext(ctx, "Process command construction failed",
					"order_id", o.ID().String(), "error", err)
				continue
			}

			// Remote failures are absorbed into FAILED transitions by the
			// handler; anything surfacing here is a configuration or
			// infrastructure problem.
			if err := j.handler.Handle(ctx, cmd); err != nil {
				j.logger.ErrorContext(ctx, "Order processing failed",
					"order_id", o.ID().String(), "status", o.Status().String(), "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order processing job started",
		"schedule", j.schedule, "batch_limit", j.batchLimit)
	return nil
}

// Stop stops the order processing job.
func (j *OrderProcessingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order processing job stopped")
}
