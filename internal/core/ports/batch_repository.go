package ports

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for order batches.
type BatchRepository interface {
	// Add persists a new batch. The batch id is unique across the system.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Update persists changes to an existing batch.
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetByBatchID retrieves a batch by its human-readable batch identifier.
	GetByBatchID(ctx context.Context, batchID string) (*batch.Batch, error)

	// CountByPrefix counts batches whose batch id starts with the given
	// prefix. Used to allocate the next day- and channel-scoped sequence
	// number.
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}
