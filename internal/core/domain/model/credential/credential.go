// Package credential contains the IntegrationCredential entity: stored auth
// material scoped to one (type, provider code, external account) triple.
// Credentials are looked up by the credential resolver and bound to provider
// adapters before use; this core never mutates them.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// ErrCredentialIsNotConstructed is returned when a Credential instance was
// not created through NewCredential or RestoreCredential.
var ErrCredentialIsNotConstructed = errors.New("Credential must be created via NewCredential or RestoreCredential")

// Type classifies what kind of integration a credential belongs to.
type Type string

const (
	// TypeChannel scopes a credential to a sales channel (OrderChannel adapter).
	TypeChannel Type = "channel"

	// TypeLogistics scopes a credential to a carrier (LogisticsProvider adapter).
	TypeLogistics Type = "logistics"

	// TypeOther covers integrations outside the two provider contracts.
	TypeOther Type = "other"
)

// Validate checks that the Type is one of the defined kinds.
func (t Type) Validate() error {
	switch t {
	case TypeChannel, TypeLogistics, TypeOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid credential type", string(t)))
	}
}

// Credential holds the auth material for one external integration account.
// The meta map carries free-form provider configuration (base URL, shipper
// id, etc.) and is treated as read-only by consumers.
type Credential struct {
	id                kernel.UUID
	credType          Type
	providerCode      string
	externalAccountID string

	apiKey       string
	apiSecret    string
	accessToken  string
	refreshToken string
	expiresAt    *time.Time

	meta     map[string]any
	isActive bool

	isConstructed bool
}

// NewCredential creates an active credential for the given integration triple.
func NewCredential(
	id kernel.UUID,
	credType Type,
	providerCode, externalAccountID string,
	apiKey, apiSecret string,
	meta map[string]any,
) (*Credential, error) {
	c := &Credential{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		meta:          meta,
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(credType),
		c.setProviderCode(providerCode),
		c.setExternalAccountID(externalAccountID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCredential reconstructs a credential from persistence.
func RestoreCredential(
	id kernel.UUID,
	credType Type,
	providerCode, externalAccountID string,
	apiKey, apiSecret, accessToken, refreshToken string,
	expiresAt *time.Time,
	meta map[string]any,
	isActive bool,
) (*Credential, error) {
	c := &Credential{
		apiKey:        apiKey,
		apiSecret:     apiSecret,
		accessToken:   accessToken,
		refreshToken:  refreshToken,
		expiresAt:     expiresAt,
		meta:          meta,
		isActive:      isActive,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(credType),
		c.setProviderCode(providerCode),
		c.setExternalAccountID(externalAccountID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Credential was constructed through a constructor.
func (c *Credential) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCredentialIsNotConstructed
	}
	return nil
}

// ID returns the credential's unique identifier.
func (c *Credential) ID() kernel.UUID { return c.id }

// Type returns the integration type.
func (c *Credential) Type() Type { return c.credType }

// ProviderCode returns the registry code of the provider this credential
// authenticates against.
func (c *Credential) ProviderCode() string { return c.providerCode }

// ExternalAccountID returns the external account identifier.
func (c *Credential) ExternalAccountID() string { return c.externalAccountID }

// APIKey returns the API key.
func (c *Credential) APIKey() string { return c.apiKey }

// APISecret returns the API secret.
func (c *Credential) APISecret() string { return c.apiSecret }

// AccessToken returns the OAuth access token, empty if unused.
func (c *Credential) AccessToken() string { return c.accessToken }

// RefreshToken returns the OAuth refresh token, empty if unused.
func (c *Credential) RefreshToken() string { return c.refreshToken }

// ExpiresAt returns the access token expiry, nil if unused.
func (c *Credential) ExpiresAt() *time.Time { return c.expiresAt }

// Meta returns the free-form provider configuration map. Callers must treat
// the returned map as read-only.
func (c *Credential) Meta() map[string]any { return c.meta }

// MetaString returns a string value from the meta map, or "" when absent or
// of a different type.
func (c *Credential) MetaString(key string) string {
	if v, ok := c.meta[key].(string); ok {
		return v
	}
	return ""
}

// IsActive reports whether the credential may be used.
func (c *Credential) IsActive() bool { return c.isActive }

func (c *Credential) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Credential) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.credType = t
	return nil
}

func (c *Credential) setProviderCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("providerCode")
	}
	c.providerCode = code
	return nil
}

func (c *Credential) setExternalAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("externalAccountID")
	}
	c.externalAccountID = accountID
	return nil
}
