package commands

import (
	"context"
	"errors"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/services"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
)

// ErrOrderHasNoTrackingNumber is returned when refreshing tracking for an
// order that has not been labeled yet.
var ErrOrderHasNoTrackingNumber = errors.New("order has no tracking number yet")

// RefreshTrackingCommandHandler fetches the order's latest tracking snapshot
// from its carrier and stores it, overwriting the previous snapshot. The
// order's status machine is untouched; tracking state is informational.
type RefreshTrackingCommandHandler struct {
	uowFactory         OrderUoWFactory
	registry           ports.ProviderRegistry
	providerTimeout    time.Duration
	logisticsAccountID string
}

// NewRefreshTrackingCommandHandler creates a handler for tracking refreshes.
func NewRefreshTrackingCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.ProviderRegistry,
	providerTimeout time.Duration,
	logisticsAccountID string,
) RefreshTrackingCommandHandler {
	return RefreshTrackingCommandHandler{
		uowFactory:         uowFactory,
		registry:           registry,
		providerTimeout:    providerTimeout,
		logisticsAccountID: logisticsAccountID,
	}
}

// Handle fetches and stores the latest tracking snapshot. Remote failures
// are returned to the caller; nothing is persisted in that case.
func (h *RefreshTrackingCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.TrackingNumber() == "" {
		return ErrOrderHasNoTrackingNumber
	}

	resolver := services.NewCredentialResolver(uow.CredentialRepository())
	cred, err := resolver.ResolveLogisticsForOrder(ctx, o, h.logisticsAccountID)
	if err != nil {
		return err
	}

	provider, err := h.registry.LogisticsProvider(o.CarrierCode())
	if err != nil {
		return err
	}
	provider.SetCredential(cred)

	callCtx, cancel := context.WithTimeout(ctx, h.providerTimeout)
	defer cancel()

	tracking, err := provider.GetTrackingStatus(callCtx, o)
	if err != nil {
		return err
	}
	tracking.OrderID = o.ID()

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().UpsertTracking(ctx, tracking); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
