package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/metrics"
)

// ErrNoEligibleOrders is returned when a batch run finds nothing to group.
// No batch row is created in that case; batch identifiers stay gapless.
var ErrNoEligibleOrders = errors.New("no orders eligible for batching")

// GenerateBatchCommandHandler groups a channel's synced, unbatched orders
// into a new batch. The batch row, the day-scoped sequence allocation and
// every member-order stamp commit in one transaction, so a concurrent run
// can never split the same orders across two batches.
type GenerateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewGenerateBatchCommandHandler creates a handler for batch generation.
func NewGenerateBatchCommandHandler(uowFactory BatchUoWFactory) GenerateBatchCommandHandler {
	return GenerateBatchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the next batch for the channel and returns its batch
// identifier. Returns ErrNoEligibleOrders when no order qualifies.
func (h *GenerateBatchCommandHandler) Handle(ctx context.Context, cmd GenerateBatchCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	batchRepo := uow.BatchRepository()

	orders, err := orderRepo.GetAllSyncedWithoutBatch(ctx, cmd.Channel(), cmd.AccountID())
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "", ErrNoEligibleOrders
	}

	day := time.Now()
	existing, err := batchRepo.CountByPrefix(ctx, batch.BatchIDPrefix(cmd.Channel(), day))
	if err != nil {
		return "", err
	}
	batchID := batch.AllocateBatchID(cmd.Channel(), day, int(existing))

	b, err := batch.NewBatch(kernel.NewUUID(), batchID, cmd.Channel(), len(orders), cmd.Operator())
	if err != nil {
		return "", err
	}
	if err = batchRepo.Add(ctx, b); err != nil {
		return "", err
	}

	for _, o := range orders {
		if err = o.AssignBatch(batchID); err != nil {
			return "", fmt.Errorf("stamping order %s: %w", o.OrderNumber(), err)
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	metrics.BatchesGenerated.WithLabelValues(cmd.Channel()).Inc()
	return batchID, nil
}
