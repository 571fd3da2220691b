package commands

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var (
	ErrCompleteBatchCommandIsNotConstructed = errors.New(
		"CompleteBatchCommand must be created via NewCompleteBatchCommand constructor",
	)
	ErrBatchIDIsRequired = errors.New("batchID is required")
)

// CompleteBatchCommand requests completion of a batch and of its member
// orders that are still completable.
type CompleteBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  string
	operator string

	guard guard.ConstructorGuard
}

// NewCompleteBatchCommand creates a batch completion command.
func NewCompleteBatchCommand(batchID, operator string) (CompleteBatchCommand, error) {
	if batchID == "" {
		return CompleteBatchCommand{}, ErrBatchIDIsRequired
	}

	return CompleteBatchCommand{
		batchID:  batchID,
		operator: operator,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteBatchCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchCommandIsNotConstructed)
}

// BatchID returns the human-readable identifier of the batch to complete.
func (c CompleteBatchCommand) BatchID() string {
	return c.batchID
}

// Operator returns who triggered the completion.
func (c CompleteBatchCommand) Operator() string {
	return c.operator
}
