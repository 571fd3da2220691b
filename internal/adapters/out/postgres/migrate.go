package postgres

import (
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/auditrepo"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/batchrepo"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/credentialrepo"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every table the service
// owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.AddressDTO{},
		&orderrepo.LabelDTO{},
		&orderrepo.TrackingDTO{},
		&batchrepo.BatchDTO{},
		&credentialrepo.CredentialDTO{},
		&auditrepo.StatusLogDTO{},
		&auditrepo.ErrorLogDTO{},
	)
}
