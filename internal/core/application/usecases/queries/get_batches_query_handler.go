package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBatchesQueryHandler lists generated batches from the database.
type GetBatchesQueryHandler struct {
	db *gorm.DB
}

// NewGetBatchesQueryHandler creates a handler for batch listings.
func NewGetBatchesQueryHandler(db *gorm.DB) GetBatchesQueryHandler {
	return GetBatchesQueryHandler{db: db}
}

// Handle lists batches newest first, optionally narrowed to one channel.
func (h GetBatchesQueryHandler) Handle(
	ctx context.Context,
	query GetBatchesQuery,
) ([]GetBatchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT batch_id, channel, order_count, status, operator, created_at, completed_at
		FROM order_batches
	`
	args := make([]any, 0, 1)
	if query.Channel() != "" {
		sql += " WHERE channel = ?"
		args = append(args, query.Channel())
	}
	sql += " ORDER BY created_at DESC, batch_id DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]GetBatchesQueryResponse, 0)
	for rows.Next() {
		var resp GetBatchesQueryResponse

		err = rows.Scan(
			&resp.BatchID,
			&resp.Channel,
			&resp.OrderCount,
			&resp.Status,
			&resp.Operator,
			&resp.CreatedAt,
			&resp.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		batches = append(batches, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
