// Package credentialrepo provides data transfer objects and mapping functions
// for integration credential persistence.
package credentialrepo

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CredentialDTO represents the database structure for integration
// credentials. Meta carries free-form provider configuration as JSON.
type CredentialDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CredType          string    `gorm:"size:16;index:idx_cred_lookup"`
	ProviderCode      string    `gorm:"size:32;index:idx_cred_lookup"`
	ExternalAccountID string    `gorm:"size:64;index:idx_cred_lookup"`
	APIKey            string    `gorm:"size:256"`
	APISecret         string    `gorm:"size:256"`
	AccessToken       string    `gorm:"size:1024"`
	RefreshToken      string    `gorm:"size:1024"`
	ExpiresAt         *time.Time
	Meta              datatypes.JSONMap
	IsActive          bool `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for credentials.
func (CredentialDTO) TableName() string {
	return "integration_credentials"
}

// fromDomain converts a credential entity to its database representation.
func fromDomain(cred *credential.Credential) CredentialDTO {
	return CredentialDTO{
		ID:                cred.ID().Bytes(),
		CredType:          string(cred.Type()),
		ProviderCode:      cred.ProviderCode(),
		ExternalAccountID: cred.ExternalAccountID(),
		APIKey:            cred.APIKey(),
		APISecret:         cred.APISecret(),
		AccessToken:       cred.AccessToken(),
		RefreshToken:      cred.RefreshToken(),
		ExpiresAt:         cred.ExpiresAt(),
		Meta:              datatypes.JSONMap(cred.Meta()),
		IsActive:          cred.IsActive(),
	}
}

// toDomain converts a database DTO back to a credential entity.
func toDomain(dto CredentialDTO) (*credential.Credential, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return credential.RestoreCredential(
		id,
		credential.Type(dto.CredType),
		dto.ProviderCode,
		dto.ExternalAccountID,
		dto.APIKey,
		dto.APISecret,
		dto.AccessToken,
		dto.RefreshToken,
		dto.ExpiresAt,
		map[string]any(dto.Meta),
		dto.IsActive,
	)
}
