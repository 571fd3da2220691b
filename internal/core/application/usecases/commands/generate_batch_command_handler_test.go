package commands_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatchCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewGenerateBatchCommand("woocommerce", "", "ops")
	require.NoError(t, err)

	first := restoreOrderAt(t, order.Synced, 0, 0)
	second := restoreOrderAt(t, order.Synced, 1, 0)
	prefix := batch.BatchIDPrefix("woocommerce", time.Now())
	wantBatchID := fmt.Sprintf("%s%03d", prefix, 3)

	orderRepo := new(MockOrderRepository)
	batchRepo := new(MockBatchRepository)
	orderRepo.On("GetAllSyncedWithoutBatch", ctx, "woocommerce", "").
		Return([]*order.Order{first, second}, nil).Once()
	batchRepo.On("CountByPrefix", ctx, prefix).Return(int64(2), nil).Once()
	batchRepo.On("Add", ctx, mock.MatchedBy(func(b *batch.Batch) bool {
		return b.BatchID() == wantBatchID && b.OrderCount() == 2 &&
			b.Status() == batch.Pending && b.Operator() == "ops"
	})).Return(nil).Once()
	orderRepo.On("Update", ctx, first).Return(nil).Once()
	orderRepo.On("Update", ctx, second).Return(nil).Once()

	uow := new(MockBatchUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("BatchRepository").Return(batchRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewGenerateBatchCommandHandler(factory)
	batchID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, wantBatchID, batchID)
	require.NotNil(t, first.BatchID())
	assert.Equal(t, wantBatchID, *first.BatchID())
	require.NotNil(t, second.BatchID())
	orderRepo.AssertExpectations(t)
	batchRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestGenerateBatchCommandHandler_NoEligibleOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewGenerateBatchCommand("woocommerce", "1001", "ops")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	batchRepo := new(MockBatchRepository)
	orderRepo.On("GetAllSyncedWithoutBatch", ctx, "woocommerce", "1001").
		Return([]*order.Order{}, nil).Once()

	uow := new(MockBatchUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("BatchRepository").Return(batchRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewGenerateBatchCommandHandler(factory)
	batchID, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoEligibleOrders)
	assert.Empty(t, batchID)
	batchRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
