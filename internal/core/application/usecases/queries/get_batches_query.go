package queries

import (
	"errors"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrGetBatchesQueryIsNotConstructed = errors.New(
	"GetBatchesQuery must be created via NewGetBatchesQuery constructor",
)

// GetBatchesQuery lists generated batches, newest first.
type GetBatchesQuery struct {
	channel string

	guard guard.ConstructorGuard
}

// NewGetBatchesQuery creates the batch listing query. channel may be empty
// to list across all channels.
func NewGetBatchesQuery(channel string) GetBatchesQuery {
	return GetBatchesQuery{
		channel: channel,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchesQueryIsNotConstructed)
}

// Channel returns the channel filter, empty for all channels.
func (q GetBatchesQuery) Channel() string {
	return q.channel
}

// GetBatchesQueryResponse is one row of the batch listing.
type GetBatchesQueryResponse struct {
	BatchID     string
	Channel     string
	OrderCount  int
	Status      string
	Operator    string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
