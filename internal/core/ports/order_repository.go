// Package ports defines the contracts between the fulfillment core and
// infrastructure: repositories, the unit of work, and the two provider
// capability contracts every channel/carrier integration must implement.
// These interfaces enable dependency inversion and testing with fakes.
package ports

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their order-scoped records (addresses, label artifacts, tracking snapshots).
type OrderRepository interface {
	// Add persists a new order aggregate. Returns an error unwrapping to
	// errs.ErrObjectAlreadyExists when the (channel, accountID, orderNumber)
	// uniqueness invariant is violated.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByUniqueKey retrieves an order by its channel-scoped business key.
	GetByUniqueKey(ctx context.Context, channel, accountID, orderNumber string) (*order.Order, error)

	// GetAllProcessable retrieves orders the orchestrator can act on:
	// those in the label or sync stage, including the failed variants.
	GetAllProcessable(ctx context.Context, limit int) ([]*order.Order, error)

	// GetAllSyncedWithoutBatch retrieves orders eligible for batching:
	// status Synced and no batch id. accountID narrows the selection when
	// non-empty.
	GetAllSyncedWithoutBatch(ctx context.Context, channel, accountID string) ([]*order.Order, error)

	// GetAllInBatch retrieves every order stamped with the given batch id.
	GetAllInBatch(ctx context.Context, batchID string) ([]*order.Order, error)

	// AddAddress persists a postal address created by the pull step.
	AddAddress(ctx context.Context, address *order.Address) error

	// GetAddress retrieves a postal address by id.
	GetAddress(ctx context.Context, id kernel.UUID) (*order.Address, error)

	// AddLabel persists a per-attempt shipping label artifact.
	AddLabel(ctx context.Context, label *order.ShippingLabel) error

	// UpsertTracking stores the latest tracking snapshot for an order,
	// overwriting any previous snapshot.
	UpsertTracking(ctx context.Context, tracking *order.ShippingTracking) error
}
