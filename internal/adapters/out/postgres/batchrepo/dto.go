// Package batchrepo provides data transfer objects and mapping functions for
// batch persistence.
package batchrepo

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/batch"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BatchDTO represents the database structure for persisting batch aggregates.
// The unique index on batch_id doubles as the allocation guard: two runs
// racing for the same day sequence collide here instead of silently sharing
// an identifier.
type BatchDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID     string    `gorm:"size:64;uniqueIndex"`
	Channel     string    `gorm:"size:32;index"`
	OrderCount  int
	Status      string `gorm:"size:32"`
	Operator    string `gorm:"size:64"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "order_batches"
}

// fromDomain converts a batch aggregate to its database representation.
func fromDomain(aggregate *batch.Batch) BatchDTO {
	return BatchDTO{
		ID:          aggregate.ID().Bytes(),
		BatchID:     aggregate.BatchID(),
		Channel:     aggregate.Channel(),
		OrderCount:  aggregate.OrderCount(),
		Status:      aggregate.Status().String(),
		Operator:    aggregate.Operator(),
		CreatedAt:   aggregate.CreatedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO back to a batch aggregate.
func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := batch.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return batch.RestoreBatch(
		id,
		dto.BatchID,
		dto.Channel,
		dto.OrderCount,
		status,
		dto.Operator,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}
