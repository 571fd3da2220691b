package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrRecordBatchUploadCommandIsNotConstructed = errors.New(
	"RecordBatchUploadCommand must be created via NewRecordBatchUploadCommand constructor",
)

// RecordBatchUploadCommand records the outcome of handing a batch's label
// documents to the printshop. The hand-off itself happens outside this core;
// this command only reflects its result onto the batch and its orders.
type RecordBatchUploadCommand struct { //nolint:recvcheck //using for validation
	batchID   string
	succeeded bool
	remarks   string

	guard guard.ConstructorGuard
}

// NewRecordBatchUploadCommand creates a hand-off outcome command. remarks
// carries the failure reason when succeeded is false.
func NewRecordBatchUploadCommand(batchID string, succeeded bool, remarks string) (RecordBatchUploadCommand, error) {
	if batchID == "" {
		return RecordBatchUploadCommand{}, ErrBatchIDIsRequired
	}

	return RecordBatchUploadCommand{
		batchID:   batchID,
		succeeded: succeeded,
		remarks:   remarks,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordBatchUploadCommand) Validate() error {
	return c.guard.Validate(ErrRecordBatchUploadCommandIsNotConstructed)
}

// BatchID returns the human-readable identifier of the handed-off batch.
func (c RecordBatchUploadCommand) BatchID() string {
	return c.batchID
}

// Succeeded reports whether the printshop accepted the batch.
func (c RecordBatchUploadCommand) Succeeded() bool {
	return c.succeeded
}

// Remarks returns the outcome annotation, usually the failure reason.
func (c RecordBatchUploadCommand) Remarks() string {
	return c.remarks
}
