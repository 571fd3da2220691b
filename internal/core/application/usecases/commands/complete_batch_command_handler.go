package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
)

// CompleteBatchCommandHandler finishes a batch. Member orders that are still
// completable move to COMPLETED; members stuck in a failed or exception
// status are left alone for out-of-band recovery. The batch itself is marked
// completed either way and its recorded order count is never rewritten, so
// the gap between order count and completed members stays visible.
type CompleteBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewCompleteBatchCommandHandler creates a handler for batch completion.
func NewCompleteBatchCommandHandler(uowFactory BatchUoWFactory) CompleteBatchCommandHandler {
	return CompleteBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle completes the batch and returns how many member orders were
// completed in this run.
func (h *CompleteBatchCommandHandler) Handle(ctx context.Context, cmd CompleteBatchCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	orderRepo := uow.OrderRepository()

	b, err := batchRepo.GetByBatchID(ctx, cmd.BatchID())
	if err != nil {
		return 0, err
	}

	orders, err := orderRepo.GetAllInBatch(ctx, cmd.BatchID())
	if err != nil {
		return 0, err
	}

	now := time.Now()
	completed := 0
	remarks := fmt.Sprintf("batch %s completed", cmd.BatchID())

	for _, o := range orders {
		if !o.Status().CompletableInBatch() || o.Status() == order.New {
			continue
		}

		from := o.Status()
		if err = o.Complete(now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}

		statusLog := order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), remarks)
		if err = uow.AuditRepository().AppendStatusLog(ctx, statusLog); err != nil {
			return 0, err
		}
		completed++
	}

	if err = b.Complete(now); err != nil {
		return 0, err
	}
	if err = batchRepo.Update(ctx, b); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return completed, nil
}
