// Package queries contains read-only operations against the database.
// Query handlers bypass the domain model and read projections directly,
// implementing the read side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with its full audit trail.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the unique identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the detail view of one order: the projection row
// plus the append-only status and error trails in append order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Channel        string
	AccountID      string
	Status         string
	CarrierCode    string
	TrackingNumber string
	TrackingURL    string
	LabelRetries   int
	SyncRetries    int
	BatchID        *string

	ShippingAddress *AddressResponse
	BillingAddress  *AddressResponse

	StatusLogs []StatusLogResponse
	ErrorLogs  []ErrorLogResponse
}

// AddressResponse is the address attached to an order at ingestion.
type AddressResponse struct {
	Name        string
	Company     string
	Street      string
	HouseNumber string
	City        string
	ZipCode     string
	CountryCode string
	Email       string
	Phone       string
}

// StatusLogResponse is one row of an order's transition trail.
type StatusLogResponse struct {
	FromStatus string
	ToStatus   string
	Remarks    string
	CreatedAt  time.Time
}

// ErrorLogResponse is one row of an order's failure trail.
type ErrorLogResponse struct {
	Operation  string
	Message    string
	RetryCount int
	CreatedAt  time.Time
}
