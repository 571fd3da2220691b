package ports

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
)

// ChannelOrder is one order fetched from a sales channel, together with the
// postal addresses the channel delivered alongside it. The pull step owns
// persisting and deduplicating these; adapters only fetch and map.
type ChannelOrder struct {
	Order           *order.Order
	ShippingAddress *order.Address
	BillingAddress  *order.Address
}

// OrderChannel is the capability contract every sales-channel integration
// must implement. Instances are created per use through the provider
// registry and bound to one credential before any call.
//
// Ordinary remote failures are returned as error values; the orchestrator
// converts them into status transitions and audit rows rather than
// propagating them.
type OrderChannel interface {
	// SetCredential binds the integration credential used for all
	// subsequent calls.
	SetCredential(cred *credential.Credential)

	// ChannelCode returns the registry code of the channel (e.g. "woocommerce").
	ChannelCode() string

	// GetPendingOrders fetches orders awaiting fulfillment from the channel.
	GetPendingOrders(ctx context.Context) ([]ChannelOrder, error)

	// SyncTrackingInfo pushes the order's tracking number, tracking URL and
	// carrier to the channel. A nil return means the channel accepted the
	// update.
	SyncTrackingInfo(ctx context.Context, o *order.Order) error
}

// LogisticsProvider is the capability contract every carrier integration
// must implement.
type LogisticsProvider interface {
	// SetCredential binds the integration credential used for all
	// subsequent calls.
	SetCredential(cred *credential.Credential)

	// CarrierCode returns the registry code of the carrier (e.g. "gls").
	CarrierCode() string

	// CreateShippingLabel creates a parcel label for the order.
	// parcelWeights optionally lists per-parcel weights in kilograms; nil
	// lets the carrier apply its defaults.
	CreateShippingLabel(ctx context.Context, o *order.Order, parcelWeights []float64) (*order.ShippingLabel, error)

	// GetTrackingStatus fetches the latest tracking snapshot for the order.
	GetTrackingStatus(ctx context.Context, o *order.Order) (*order.ShippingTracking, error)
}
