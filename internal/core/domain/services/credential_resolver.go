package services

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/ports"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// CredentialResolver is a domain service that looks up the active
// integration credential for a given (type, provider code, external account)
// triple and validates it before the orchestrator binds it to a provider.
//
// A missing or inactive credential is a configuration failure: it propagates
// to the caller instead of being converted into an order-level failure,
// since no order-scoped action was attempted.
type CredentialResolver struct {
	credentials ports.CredentialRepository
}

// NewCredentialResolver creates a resolver reading from the given repository.
func NewCredentialResolver(credentials ports.CredentialRepository) CredentialResolver {
	return CredentialResolver{credentials: credentials}
}

// Resolve returns the unique active credential for the triple, or an error
// unwrapping to errs.ErrObjectNotFound when none exists.
func (r CredentialResolver) Resolve(
	ctx context.Context,
	credType credential.Type,
	providerCode, externalAccountID string,
) (*credential.Credential, error) {
	if err := credType.Validate(); err != nil {
		return nil, err
	}
	if providerCode == "" {
		return nil, errs.NewValueIsRequiredError("providerCode")
	}
	if externalAccountID == "" {
		return nil, errs.NewValueIsRequiredError("externalAccountID")
	}

	cred, err := r.credentials.GetActive(ctx, credType, providerCode, externalAccountID)
	if err != nil {
		return nil, err
	}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	return cred, nil
}

// ResolveChannelForOrder resolves the sales-channel credential an order was
// pulled through, using the order's own channel and account fields.
func (r CredentialResolver) ResolveChannelForOrder(ctx context.Context, o *order.Order) (*credential.Credential, error) {
	return r.Resolve(ctx, credential.TypeChannel, o.Channel(), o.AccountID())
}

// ResolveLogisticsForOrder resolves the carrier credential for an order.
// The logistics account is not yet per-order configurable, so the account id
// comes from service configuration.
func (r CredentialResolver) ResolveLogisticsForOrder(
	ctx context.Context,
	o *order.Order,
	logisticsAccountID string,
) (*credential.Credential, error) {
	return r.Resolve(ctx, credential.TypeLogistics, o.CarrierCode(), logisticsAccountID)
}
