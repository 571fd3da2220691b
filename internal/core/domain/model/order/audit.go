package order

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
)

// StatusLog is one append-only row per status transition. Rows are never
// updated or deleted; operators troubleshoot orders through this trail.
type StatusLog struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	FromStatus Status
	ToStatus   Status
	Channel    string
	Remarks    string
	CreatedAt  time.Time
}

// NewStatusLog creates a transition record stamped with the current time.
func NewStatusLog(orderID kernel.UUID, from, to Status, channel, remarks string) *StatusLog {
	return &StatusLog{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		Channel:    channel,
		Remarks:    remarks,
		CreatedAt:  time.Now(),
	}
}

// ErrorLog is one append-only row per failed attempt. RetryCount holds the
// pre-increment counter value, so the first failure logs retry_count=0.
type ErrorLog struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Channel    string
	Operation  string
	Message    string
	RetryCount int
	CreatedAt  time.Time
}

// NewErrorLog creates a failure record stamped with the current time.
func NewErrorLog(orderID kernel.UUID, channel, operation, message string, retryCount int) *ErrorLog {
	return &ErrorLog{
		ID:         kernel.NewUUID(),
		OrderID:    orderID,
		Channel:    channel,
		Operation:  operation,
		Message:    message,
		RetryCount: retryCount,
		CreatedAt:  time.Now(),
	}
}
