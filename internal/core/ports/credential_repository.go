package ports

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
)

// CredentialRepository defines the read contract for integration credentials.
// Credentials are administered outside this core; the orchestrator and the
// pull step only ever look them up.
type CredentialRepository interface {
	// Add persists a new credential. Present for seeding and tests.
	Add(ctx context.Context, cred *credential.Credential) error

	// GetActive retrieves the unique active credential for the given
	// (type, provider code, external account id) triple. Returns an error
	// unwrapping to errs.ErrObjectNotFound when none exists.
	GetActive(ctx context.Context, credType credential.Type, providerCode, externalAccountID string) (*credential.Credential, error)

	// GetAllActiveByType retrieves every active credential of one type.
	// Used by the pull step to iterate all configured sales channels.
	GetAllActiveByType(ctx context.Context, credType credential.Type) ([]*credential.Credential, error)
}
