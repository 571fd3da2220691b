package queries

import (
	"context"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's detail view: the projection row and
// both audit trails.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order row and its status and error trails. Returns an
// error unwrapping to errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var shippingAddressID, billingAddressID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			channel,
			account_id,
			status,
			carrier_code,
			tracking_number,
			tracking_url,
			label_retries,
			sync_retries,
			batch_id,
			shipping_address_id,
			billing_address_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&resp.Channel,
		&resp.AccountID,
		&resp.Status,
		&resp.CarrierCode,
		&resp.TrackingNumber,
		&resp.TrackingURL,
		&resp.LabelRetries,
		&resp.SyncRetries,
		&resp.BatchID,
		&shippingAddressID,
		&billingAddressID,
	)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID(), err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	if resp.ShippingAddress, err = h.address(ctx, shippingAddressID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BillingAddress, err = h.address(ctx, billingAddressID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.StatusLogs, err = h.statusLogs(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ErrorLogs, err = h.errorLogs(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) address(ctx context.Context, addressID uuid.NullUUID) (*AddressResponse, error) {
	if !addressID.Valid {
		return nil, nil
	}

	var addr AddressResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT name, company, street, house_number, city, zip_code, country_code, email, phone
		FROM order_addresses
		WHERE id = ?
	`, addressID.UUID).Row()

	err := row.Scan(
		&addr.Name,
		&addr.Company,
		&addr.Street,
		&addr.HouseNumber,
		&addr.City,
		&addr.ZipCode,
		&addr.CountryCode,
		&addr.Email,
		&addr.Phone,
	)
	if err != nil {
		return nil, err
	}

	return &addr, nil
}

func (h GetOrderQueryHandler) statusLogs(ctx context.Context, orderID kernel.UUID) ([]StatusLogResponse, error) {
	logs := make([]StatusLogResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT from_status, to_status, remarks, created_at
		FROM order_status_logs
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry StatusLogResponse
		if err = rows.Scan(&entry.FromStatus, &entry.ToStatus, &entry.Remarks, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}

func (h GetOrderQueryHandler) errorLogs(ctx context.Context, orderID kernel.UUID) ([]ErrorLogResponse, error) {
	logs := make([]ErrorLogResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT operation, message, retry_count, created_at
		FROM order_error_logs
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ErrorLogResponse
		if err = rows.Scan(&entry.Operation, &entry.Message, &entry.RetryCount, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
