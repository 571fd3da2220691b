package queries

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBatchOrdersQueryHandler lists a batch's member orders from the database.
type GetBatchOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchOrdersQueryHandler creates a handler for batch member listings.
func NewGetBatchOrdersQueryHandler(db *gorm.DB) GetBatchOrdersQueryHandler {
	return GetBatchOrdersQueryHandler{db: db}
}

// Handle lists the batch's member orders ordered by order number.
func (h GetBatchOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBatchOrdersQuery,
) ([]GetBatchOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_number, status, carrier_code, tracking_number
		FROM orders
		WHERE batch_id = ?
		ORDER BY order_number
	`, query.BatchID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetBatchOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetBatchOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(&id, &resp.OrderNumber, &resp.Status, &resp.CarrierCode, &resp.TrackingNumber)
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
