package batchrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("batchID", aggregate.BatchID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	aggregate.MarkPersisted()
	return nil
}

// Update saves an existing batch to the database. The row must still be at
// the status the aggregate was loaded with; a concurrent transition makes
// the write a conflict instead of silently rewriting the row.
func (r *GormBatchRepository) Update(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BatchDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("batch",
			fmt.Errorf("batch %s is no longer at status %s",
				aggregate.BatchID(), aggregate.PersistedStatus()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	aggregate.MarkPersisted()
	return nil
}

// Get retrieves a batch by ID.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByBatchID retrieves a batch by its human-readable batch identifier.
func (r *GormBatchRepository) GetByBatchID(ctx context.Context, batchID string) (*batch.Batch, error) {
	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "batch_id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batchID", batchID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// likeEscaper neutralizes LIKE metacharacters. Batch id prefixes are full of
// underscores, which LIKE would otherwise treat as single-character wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CountByPrefix counts batches whose batch id starts with the given prefix,
// matched literally.
func (r *GormBatchRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BatchDTO{}).
		Where(`batch_id LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
		Count(&count).Error
	return count, err
}
