package jobs

import (
	"context"
	"log/slog"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderPullJob periodically imports pending orders from every active sales
// channel account.
type OrderPullJob struct {
	handler  commands.PullOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderPullJob creates a new job for pulling channel orders on the given
// cron schedule (six-field expression with seconds).
func NewOrderPullJob(handler commands.PullOrdersCommandHandler, schedule string, logger *slog.Logger) *OrderPullJob {
	return &OrderPullJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_pull_job"),
	}
}

// Start begins the order pull job on its configured schedule.
func (j *OrderPullJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewPullOrdersCommand("")
		if err != nil {
			j.logger.ErrorContext(ctx, "Order pull command construction failed", "error", err)
			return
		}

		reports, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order pull job failed", "error", err)
			return
		}

		for _, r := range reports {
			if r.Err != nil {
				j.logger.ErrorContext(ctx, "Channel account pull failed",
					"channel", r.Channel, "account_id", r.AccountID, "error", r.Err)
				continue
			}
			if r.Pulled > 0 {
				j.logger.InfoContext(ctx, "Channel account pulled",
					"channel", r.Channel, "account_id", r.AccountID,
					"pulled", r.Pulled, "created", r.Created, "skipped", r.Skipped)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order pull job started", "schedule", j.schedule)
	return nil
}

// Stop stops the order pull job.
func (j *OrderPullJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order pull job stopped")
}
