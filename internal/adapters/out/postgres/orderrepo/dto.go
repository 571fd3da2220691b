// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate and its order-scoped records: addresses, shipping labels and
// tracking snapshots.
package orderrepo

import (
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite unique index on (channel, account_id, order_number) is the
// arbiter of the order uniqueness invariant: concurrent pull passes race on
// it rather than on application state.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber       string     `gorm:"size:64;uniqueIndex:uk_channel_account_number"`
	Channel           string     `gorm:"size:32;uniqueIndex:uk_channel_account_number"`
	AccountID         string     `gorm:"size:64;uniqueIndex:uk_channel_account_number"`
	Status            string     `gorm:"size:32;index"`
	ShippingAddressID *uuid.UUID `gorm:"type:uuid"`
	BillingAddressID  *uuid.UUID `gorm:"type:uuid"`
	CarrierCode       string     `gorm:"size:32"`
	TrackingNumber    string     `gorm:"size:64"`
	TrackingURL       string
	LabelRetries      int
	SyncRetries       int
	PrintshopRetries  int
	BatchID           *string `gorm:"size:64;index"`
	SyncedAt          *time.Time
	UploadedAt        *time.Time
	CompletedAt       *time.Time
	RawPayload        datatypes.JSON
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents a postal address captured at pull time. Addresses
// are immutable once written.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:128"`
	Company     string    `gorm:"size:128"`
	Street      string    `gorm:"size:128"`
	HouseNumber string    `gorm:"size:16"`
	City        string    `gorm:"size:64"`
	ZipCode     string    `gorm:"size:16"`
	CountryCode string    `gorm:"size:2"`
	Email       string    `gorm:"size:128"`
	Phone       string    `gorm:"size:32"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "order_addresses"
}

// LabelDTO represents one shipping label attempt artifact. A row per
// successful carrier call; rows are never updated.
type LabelDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	CarrierCode    string    `gorm:"size:32"`
	TrackingNumber string    `gorm:"size:64"`
	TrackingURL    string
	LabelPayload   string `gorm:"type:text"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for shipping labels.
func (LabelDTO) TableName() string {
	return "shipping_labels"
}

// TrackingDTO represents the latest tracking snapshot for an order. One row
// per order, replaced on every refresh.
type TrackingDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Location    string    `gorm:"size:128"`
	Description string    `gorm:"size:256"`
	Delivered   bool
	UpdatedAt   time.Time
}

// TableName specifies the database table name for tracking snapshots.
func (TrackingDTO) TableName() string {
	return "shipping_trackings"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		Channel:           aggregate.Channel(),
		AccountID:         aggregate.AccountID(),
		Status:            aggregate.Status().String(),
		ShippingAddressID: uuidPtr(aggregate.ShippingAddressID()),
		BillingAddressID:  uuidPtr(aggregate.BillingAddressID()),
		CarrierCode:       aggregate.CarrierCode(),
		TrackingNumber:    aggregate.TrackingNumber(),
		TrackingURL:       aggregate.TrackingURL(),
		LabelRetries:      aggregate.LabelRetryCount(),
		SyncRetries:       aggregate.SyncRetryCount(),
		PrintshopRetries:  aggregate.PrintshopRetryCount(),
		BatchID:           aggregate.BatchID(),
		SyncedAt:          aggregate.SyncedAt(),
		UploadedAt:        aggregate.UploadedAt(),
		CompletedAt:       aggregate.CompletedAt(),
		RawPayload:        datatypes.JSON(aggregate.RawPayload()),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	shippingID, err := kernelUUIDPtr(dto.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	billingID, err := kernelUUIDPtr(dto.BillingAddressID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		OrderNumber:       dto.OrderNumber,
		Channel:           dto.Channel,
		AccountID:         dto.AccountID,
		Status:            status,
		ShippingAddressID: shippingID,
		BillingAddressID:  billingID,
		CarrierCode:       dto.CarrierCode,
		TrackingNumber:    dto.TrackingNumber,
		TrackingURL:       dto.TrackingURL,
		LabelRetries:      dto.LabelRetries,
		SyncRetries:       dto.SyncRetries,
		PrintshopRetries:  dto.PrintshopRetries,
		BatchID:           dto.BatchID,
		SyncedAt:          dto.SyncedAt,
		UploadedAt:        dto.UploadedAt,
		CompletedAt:       dto.CompletedAt,
		RawPayload:        []byte(dto.RawPayload),
	})
}

func addressFromDomain(address *order.Address) AddressDTO {
	return AddressDTO{
		ID:          address.ID.Bytes(),
		Name:        address.Name,
		Company:     address.Company,
		Street:      address.Street,
		HouseNumber: address.HouseNumber,
		City:        address.City,
		ZipCode:     address.ZipCode,
		CountryCode: address.CountryCode,
		Email:       address.Email,
		Phone:       address.Phone,
	}
}

func addressToDomain(dto AddressDTO) (*order.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &order.Address{
		ID:          id,
		Name:        dto.Name,
		Company:     dto.Company,
		Street:      dto.Street,
		HouseNumber: dto.HouseNumber,
		City:        dto.City,
		ZipCode:     dto.ZipCode,
		CountryCode: dto.CountryCode,
		Email:       dto.Email,
		Phone:       dto.Phone,
	}, nil
}

func labelFromDomain(label *order.ShippingLabel) LabelDTO {
	return LabelDTO{
		ID:             label.ID.Bytes(),
		OrderID:        label.OrderID.Bytes(),
		CarrierCode:    label.CarrierCode,
		TrackingNumber: label.TrackingNumber,
		TrackingURL:    label.TrackingURL,
		LabelPayload:   label.LabelPayload,
		CreatedAt:      label.CreatedAt,
	}
}

func trackingFromDomain(tracking *order.ShippingTracking) TrackingDTO {
	return TrackingDTO{
		ID:          tracking.ID.Bytes(),
		OrderID:     tracking.OrderID.Bytes(),
		Location:    tracking.Location,
		Description: tracking.Description,
		Delivered:   tracking.Delivered,
		UpdatedAt:   tracking.UpdatedAt,
	}
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
