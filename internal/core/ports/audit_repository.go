package ports

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
)

// AuditRepository defines the append-only contract for the status and error
// trails. Rows are never updated or deleted.
type AuditRepository interface {
	// AppendStatusLog records one status transition.
	AppendStatusLog(ctx context.Context, entry *order.StatusLog) error

	// AppendErrorLog records one failed attempt.
	AppendErrorLog(ctx context.Context, entry *order.ErrorLog) error

	// GetStatusLogs retrieves an order's transition trail in append order.
	GetStatusLogs(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error)

	// GetErrorLogs retrieves an order's failure trail in append order.
	GetErrorLogs(ctx context.Context, orderID kernel.UUID) ([]*order.ErrorLog, error)
}
