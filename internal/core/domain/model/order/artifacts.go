package order

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
)

// ShippingLabel is a one-per-attempt label artifact produced by a
// LogisticsProvider. The payload is the base64-encoded label document;
// rendering it into a printable file happens outside this core.
type ShippingLabel struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	CarrierCode    string
	TrackingNumber string
	TrackingURL    string
	LabelPayload   string
	CreatedAt      time.Time
}

// NewShippingLabel stamps a label artifact with an id and creation time.
// The order id is bound by the orchestrator once the label is accepted.
func NewShippingLabel(carrierCode, trackingNumber, trackingURL, labelPayload string) *ShippingLabel {
	return &ShippingLabel{
		ID:             kernel.NewUUID(),
		CarrierCode:    carrierCode,
		TrackingNumber: trackingNumber,
		TrackingURL:    trackingURL,
		LabelPayload:   labelPayload,
		CreatedAt:      time.Now(),
	}
}

// ShippingTracking is the latest tracking snapshot for an order, overwritten
// on every refresh.
type ShippingTracking struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Location    string
	Description string
	Delivered   bool
	UpdatedAt   time.Time
}

// NewShippingTracking stamps a tracking snapshot with an id and update time.
func NewShippingTracking(orderID kernel.UUID, location, description string, delivered bool) *ShippingTracking {
	return &ShippingTracking{
		ID:          kernel.NewUUID(),
		OrderID:     orderID,
		Location:    location,
		Description: description,
		Delivered:   delivered,
		UpdatedAt:   time.Now(),
	}
}
