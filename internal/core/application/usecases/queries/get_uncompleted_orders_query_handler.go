package queries

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler lists non-terminal orders from the
// database for monitoring and manual intervention.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for pipeline listings.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle lists every order that is neither completed nor cancelled, oldest
// first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, order_number, channel, account_id, status, tracking_number, batch_id
		FROM orders
		WHERE status NOT IN (?, ?)
	`
	args := []any{order.Completed.String(), order.Cancelled.String()}
	if query.Channel() != "" {
		sql += " AND channel = ?"
		args = append(args, query.Channel())
	}
	sql += " ORDER BY created_at, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUncompletedOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetUncompletedOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Channel,
			&resp.AccountID,
			&resp.Status,
			&resp.TrackingNumber,
			&resp.BatchID,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
