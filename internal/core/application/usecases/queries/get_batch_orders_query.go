package queries

import (
	"errors"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var (
	ErrGetBatchOrdersQueryIsNotConstructed = errors.New(
		"GetBatchOrdersQuery must be created via NewGetBatchOrdersQuery constructor",
	)
	ErrBatchIDIsRequired = errors.New("batchID is required")
)

// GetBatchOrdersQuery lists the member orders of one batch.
type GetBatchOrdersQuery struct {
	batchID string

	guard guard.ConstructorGuard
}

// NewGetBatchOrdersQuery creates a query for a batch's member orders.
func NewGetBatchOrdersQuery(batchID string) (GetBatchOrdersQuery, error) {
	if batchID == "" {
		return GetBatchOrdersQuery{}, ErrBatchIDIsRequired
	}

	return GetBatchOrdersQuery{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBatchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchOrdersQueryIsNotConstructed)
}

// BatchID returns the human-readable identifier of the batch.
func (q GetBatchOrdersQuery) BatchID() string {
	return q.batchID
}

// GetBatchOrdersQueryResponse is one member order of a batch.
type GetBatchOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Status         string
	CarrierCode    string
	TrackingNumber string
}
