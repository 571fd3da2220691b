package credentialrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/credential"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCredentialRepository implements CredentialRepository using GORM.
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GORM credential repository.
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// Add saves a new credential to the database.
func (r *GormCredentialRepository) Add(ctx context.Context, cred *credential.Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cred)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("credential", cred.ID().String(), err)
		}
		return err
	}

	return nil
}

// GetActive retrieves the active credential for one integration triple.
func (r *GormCredentialRepository) GetActive(
	ctx context.Context,
	credType credential.Type,
	providerCode, externalAccountID string,
) (*credential.Credential, error) {
	var dto CredentialDTO
	err := r.db.WithContext(ctx).
		First(&dto,
			"cred_type = ? AND provider_code = ? AND external_account_id = ? AND is_active",
			string(credType), providerCode, externalAccountID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"credential", fmt.Sprintf("%s/%s/%s", credType, providerCode, externalAccountID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveByType retrieves every active credential of one type, ordered
// by provider and account for stable pull iteration.
func (r *GormCredentialRepository) GetAllActiveByType(
	ctx context.Context,
	credType credential.Type,
) ([]*credential.Credential, error) {
	var dtos []CredentialDTO
	err := r.db.WithContext(ctx).
		Where("cred_type = ? AND is_active", string(credType)).
		Order("provider_code, external_account_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	creds := make([]*credential.Credential, 0, len(dtos))
	for _, dto := range dtos {
		cred, credErr := toDomain(dto)
		if credErr != nil {
			return nil, credErr
		}
		creds = append(creds, cred)
	}

	return creds, nil
}
