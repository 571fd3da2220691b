// Package auditrepo persists the append-only status and error trails.
package auditrepo

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusLogDTO represents one status transition row. Rows are insert-only.
type StatusLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"size:32"`
	ToStatus   string    `gorm:"size:32"`
	Channel    string    `gorm:"size:32"`
	Remarks    string    `gorm:"size:512"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for status logs.
func (StatusLogDTO) TableName() string {
	return "order_status_logs"
}

// ErrorLogDTO represents one failed attempt row. Rows are insert-only.
type ErrorLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Channel    string    `gorm:"size:32"`
	Operation  string    `gorm:"size:32"`
	Message    string    `gorm:"type:text"`
	RetryCount int
	CreatedAt  time.Time
}

// TableName specifies the database table name for error logs.
func (ErrorLogDTO) TableName() string {
	return "order_error_logs"
}

func statusLogFromDomain(entry *order.StatusLog) StatusLogDTO {
	return StatusLogDTO{
		ID:         entry.ID.Bytes(),
		OrderID:    entry.OrderID.Bytes(),
		FromStatus: entry.FromStatus.String(),
		ToStatus:   entry.ToStatus.String(),
		Channel:    entry.Channel,
		Remarks:    entry.Remarks,
		CreatedAt:  entry.CreatedAt,
	}
}

func statusLogToDomain(dto StatusLogDTO) (*order.StatusLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	from, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return nil, err
	}
	to, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return nil, err
	}

	return &order.StatusLog{
		ID:         id,
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Channel:    dto.Channel,
		Remarks:    dto.Remarks,
		CreatedAt:  dto.CreatedAt,
	}, nil
}

func errorLogFromDomain(entry *order.ErrorLog) ErrorLogDTO {
	return ErrorLogDTO{
		ID:         entry.ID.Bytes(),
		OrderID:    entry.OrderID.Bytes(),
		Channel:    entry.Channel,
		Operation:  entry.Operation,
		Message:    entry.Message,
		RetryCount: entry.RetryCount,
		CreatedAt:  entry.CreatedAt,
	}
}

func errorLogToDomain(dto ErrorLogDTO) (*order.ErrorLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return &order.ErrorLog{
		ID:         id,
		OrderID:    orderID,
		Channel:    dto.Channel,
		Operation:  dto.Operation,
		Message:    dto.Message,
		RetryCount: dto.RetryCount,
		CreatedAt:  dto.CreatedAt,
	}, nil
}
