package commands

import (
	"context"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
)

// opUploadBatch is the audit operation name for printshop hand-offs.
const opUploadBatch = "upload_batch"

// RecordBatchUploadCommandHandler reflects a printshop hand-off outcome onto
// a batch and its member orders. On success the batch and every member in an
// uploadable status move to their uploaded states; on failure both sides move
// to their failed states and each affected order gets an error log row.
type RecordBatchUploadCommandHandler struct {
	uowFactory BatchUoWFactory
}

// NewRecordBatchUploadCommandHandler creates a handler for hand-off outcomes.
func NewRecordBatchUploadCommandHandler(uowFactory BatchUoWFactory) RecordBatchUploadCommandHandler {
	return RecordBatchUploadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the hand-off outcome for the batch in one transaction.
func (h *RecordBatchUploadCommandHandler) Handle(ctx context.Context, cmd RecordBatchUploadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	orderRepo := uow.OrderRepository()

	b, err := batchRepo.GetByBatchID(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	orders, err := orderRepo.GetAllInBatch(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	now := time.Now()
	for _, o := range orders {
		if o.Status() != order.Synced && o.Status() != order.UploadFailed {
			continue
		}

		from := o.Status()
		if cmd.Succeeded() {
			err = o.MarkUploaded(now)
		} else {
			err = o.FailUpload()
		}
		if err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		statusLog := order.NewStatusLog(o.ID(), from, o.Status(), o.Channel(), cmd.Remarks())
		if err = uow.AuditRepository().AppendStatusLog(ctx, statusLog); err != nil {
			return err
		}

		if !cmd.Succeeded() {
			errorLog := order.NewErrorLog(
				o.ID(), o.Channel(), opUploadBatch, cmd.Remarks(), o.PrintshopRetryCount()-1)
			if err = uow.AuditRepository().AppendErrorLog(ctx, errorLog); err != nil {
				return err
			}
		}
	}

	if cmd.Succeeded() {
		err = b.MarkUploaded()
	} else {
		err = b.MarkUploadFailed()
	}
	if err != nil {
		return err
	}
	if err = batchRepo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
