package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A violation of the
// (channel, account_id, order_number) unique index surfaces as an
// ObjectAlreadyExistsError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", aggregate.OrderNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	aggregate.MarkPersisted()
	return nil
}

// Update saves an existing order to the database. The row must still be at
// the status the aggregate was loaded with; a concurrent transition makes
// the write a conflict instead of silently rewriting the row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s is no longer at status %s",
				aggregate.ID(), aggregate.PersistedStatus()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	aggregate.MarkPersisted()
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUniqueKey retrieves an order by its channel-scoped business key.
func (r *GormOrderRepository) GetByUniqueKey(
	ctx context.Context,
	channel, accountID, orderNumber string,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "channel = ? AND account_id = ? AND order_number = ?", channel, accountID, orderNumber).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllProcessable retrieves orders in the label or sync stage, oldest
// first, up to limit.
func (r *GormOrderRepository) GetAllProcessable(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			order.WaitingLabel.String(),
			order.LabelFailed.String(),
			order.LabelCreated.String(),
			order.SyncFailed.String(),
		}).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllSyncedWithoutBatch retrieves orders eligible for batching.
func (r *GormOrderRepository) GetAllSyncedWithoutBatch(
	ctx context.Context,
	channel, accountID string,
) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND batch_id IS NULL AND channel = ?", order.Synced.String(), channel)
	if accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllInBatch retrieves every order stamped with the given batch id.
func (r *GormOrderRepository) GetAllInBatch(ctx context.Context, batchID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// AddAddress persists a postal address.
func (r *GormOrderRepository) AddAddress(ctx context.Context, address *order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	dto := addressFromDomain(address)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAddress retrieves a postal address by id.
func (r *GormOrderRepository) GetAddress(ctx context.Context, id kernel.UUID) (*order.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, err
	}

	return addressToDomain(dto)
}

// AddLabel persists a shipping label artifact.
func (r *GormOrderRepository) AddLabel(ctx context.Context, label *order.ShippingLabel) error {
	dto := labelFromDomain(label)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// UpsertTracking stores the latest tracking snapshot for an order, replacing
// the previous one.
func (r *GormOrderRepository) UpsertTracking(ctx context.Context, tracking *order.ShippingTracking) error {
	dto := trackingFromDomain(tracking)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"location", "description", "delivered", "updated_at",
			}),
		}).
		Create(&dto).Error
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
