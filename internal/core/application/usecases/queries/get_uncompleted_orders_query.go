package queries

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errors.New(
	"GetUncompletedOrdersQuery must be created via NewGetUncompletedOrdersQuery constructor",
)

// GetUncompletedOrdersQuery lists orders still inside the fulfillment
// pipeline, i.e. everything not completed or cancelled. Exception orders are
// included: they are exactly what operators look for.
type GetUncompletedOrdersQuery struct {
	channel string

	guard guard.ConstructorGuard
}

// NewGetUncompletedOrdersQuery creates the listing query. channel may be
// empty to list across all channels.
func NewGetUncompletedOrdersQuery(channel string) GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{
		channel: channel,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

// Channel returns the channel filter, empty for all channels.
func (q GetUncompletedOrdersQuery) Channel() string {
	return q.channel
}

// GetUncompletedOrdersQueryResponse is one row of the pipeline listing.
type GetUncompletedOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Channel        string
	AccountID      string
	Status         string
	TrackingNumber string
	BatchID        *string
}
