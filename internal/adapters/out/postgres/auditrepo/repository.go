package auditrepo

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM. The repository
// only ever inserts and reads; there is no update or delete path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// AppendStatusLog records one status transition.
func (r *GormAuditRepository) AppendStatusLog(ctx context.Context, entry *order.StatusLog) error {
	dto := statusLogFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AppendErrorLog records one failed attempt.
func (r *GormAuditRepository) AppendErrorLog(ctx context.Context, entry *order.ErrorLog) error {
	dto := errorLogFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetStatusLogs retrieves an order's transition trail in append order.
func (r *GormAuditRepository) GetStatusLogs(ctx context.Context, orderID kernel.UUID) ([]*order.StatusLog, error) {
	var dtos []StatusLogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*order.StatusLog, 0, len(dtos))
	for _, dto := range dtos {
		entry, logErr := statusLogToDomain(dto)
		if logErr != nil {
			return nil, logErr
		}
		logs = append(logs, entry)
	}

	return logs, nil
}

// GetErrorLogs retrieves an order's failure trail in append order.
func (r *GormAuditRepository) GetErrorLogs(ctx context.Context, orderID kernel.UUID) ([]*order.ErrorLog, error) {
	var dtos []ErrorLogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*order.ErrorLog, 0, len(dtos))
	for _, dto := range dtos {
		entry, logErr := errorLogToDomain(dto)
		if logErr != nil {
			return nil, logErr
		}
		logs = append(logs, entry)
	}

	return logs, nil
}
