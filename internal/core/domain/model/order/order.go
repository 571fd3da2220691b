package order

import (
	"errors"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderAlreadyBatched is returned when assigning a batch to an order
	// that already belongs to one.
	ErrOrderAlreadyBatched = errors.New("order already belongs to a batch")
)

// Order represents one sales-channel order walking through the fulfillment
// lifecycle. It is the aggregate root mutated exclusively by the flow
// orchestrator (status, tracking fields, retry counters) and the batch
// manager (batch id, completion timestamp).
//
// Invariants:
//   - (channel, accountID, orderNumber) is unique across the system
//   - status transitions follow the Status state machine
//   - retry counters never decrease within a failure cycle
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id          kernel.UUID
	orderNumber string
	channel     string
	accountID   string
	status      Status

	// persistedStatus is the status the storage row carried when this
	// aggregate was loaded or last flushed. Repositories match on it when
	// updating, so a stale snapshot can never overwrite a concurrent
	// transition.
	persistedStatus Status

	shippingAddressID *kernel.UUID
	billingAddressID  *kernel.UUID

	carrierCode    string
	trackingNumber string
	trackingURL    string

	labelRetries     int
	syncRetries      int
	printshopRetries int

	batchID *string

	syncedAt    *time.Time
	uploadedAt  *time.Time
	completedAt *time.Time

	// rawPayload keeps the original channel response for debugging and replay.
	rawPayload []byte

	isConstructed bool
}

// NewOrder creates an order freshly pulled from a sales channel, in status New.
//
// Parameters:
//   - id: unique identifier
//   - orderNumber: the channel's order number, unique per channel+account
//   - channel: sales channel code (registry key for the OrderChannel adapter)
//   - accountID: external account the order was pulled for
//   - rawPayload: the original response blob from the channel, kept opaque
func NewOrder(id kernel.UUID, orderNumber, channel, accountID string, rawPayload []byte) (*Order, error) {
	o := &Order{
		status:          New,
		persistedStatus: New,
		rawPayload:      rawPayload,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setChannel(channel),
		o.setAccountID(accountID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order for
// reconstruction from storage.
type RestoreOrderParams struct {
	ID                kernel.UUID
	OrderNumber       string
	Channel           string
	AccountID         string
	Status            Status
	ShippingAddressID *kernel.UUID
	BillingAddressID  *kernel.UUID
	CarrierCode       string
	TrackingNumber    string
	TrackingURL       string
	LabelRetries      int
	SyncRetries       int
	PrintshopRetries  int
	BatchID           *string
	SyncedAt          *time.Time
	UploadedAt        *time.Time
	CompletedAt       *time.Time
	RawPayload        []byte
}

// RestoreOrder reconstructs an order from persistence without replaying its
// transitions. The status and counters are validated but accepted as-is.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o := &Order{
		carrierCode:       p.CarrierCode,
		trackingNumber:    p.TrackingNumber,
		trackingURL:       p.TrackingURL,
		labelRetries:      p.LabelRetries,
		syncRetries:       p.SyncRetries,
		printshopRetries:  p.PrintshopRetries,
		batchID:           p.BatchID,
		shippingAddressID: p.ShippingAddressID,
		billingAddressID:  p.BillingAddressID,
		syncedAt:          p.SyncedAt,
		uploadedAt:        p.UploadedAt,
		completedAt:       p.CompletedAt,
		rawPayload:        p.RawPayload,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setOrderNumber(p.OrderNumber),
		o.setChannel(p.Channel),
		o.setAccountID(p.AccountID),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = p.Status
	o.persistedStatus = p.Status

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the channel's order number.
func (o *Order) OrderNumber() string { return o.orderNumber }

// Channel returns the sales channel code.
func (o *Order) Channel() string { return o.channel }

// AccountID returns the external account identifier.
func (o *Order) AccountID() string { return o.accountID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PersistedStatus returns the status the order had at its last load or
// flush. Repositories use it as the optimistic predicate when updating.
func (o *Order) PersistedStatus() Status { return o.persistedStatus }

// MarkPersisted records that the current state has been flushed to storage.
// Called by repositories after a successful write.
func (o *Order) MarkPersisted() { o.persistedStatus = o.status }

// ShippingAddressID returns the shipping address reference, nil if unset.
func (o *Order) ShippingAddressID() *kernel.UUID { return o.shippingAddressID }

// BillingAddressID returns the billing address reference, nil if unset.
func (o *Order) BillingAddressID() *kernel.UUID { return o.billingAddressID }

// CarrierCode returns the logistics provider code chosen for the order.
func (o *Order) CarrierCode() string { return o.carrierCode }

// TrackingNumber returns the carrier tracking number, empty before labeling.
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// TrackingURL returns the carrier tracking URL, empty before labeling.
func (o *Order) TrackingURL() string { return o.trackingURL }

// LabelRetryCount returns the consecutive label-stage failure count.
func (o *Order) LabelRetryCount() int { return o.labelRetries }

// SyncRetryCount returns the consecutive sync-stage failure count.
func (o *Order) SyncRetryCount() int { return o.syncRetries }

// PrintshopRetryCount returns the consecutive printshop hand-off failure count.
func (o *Order) PrintshopRetryCount() int { return o.printshopRetries }

// BatchID returns the assigned batch identifier, nil until batched.
func (o *Order) BatchID() *string { return o.batchID }

// SyncedAt returns when tracking info reached the channel, nil before.
func (o *Order) SyncedAt() *time.Time { return o.syncedAt }

// UploadedAt returns when the order's batch was handed to the printshop.
func (o *Order) UploadedAt() *time.Time { return o.uploadedAt }

// CompletedAt returns when the order was completed, nil before.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// RawPayload returns the original channel response blob.
func (o *Order) RawPayload() []byte { return o.rawPayload }

// AttachAddresses links the order to its persisted shipping and billing
// addresses. Performed once by the pull step; addresses are immutable after.
func (o *Order) AttachAddresses(shippingID, billingID *kernel.UUID) error {
	if shippingID != nil {
		if err := shippingID.Validate(); err != nil {
			return err
		}
	}
	if billingID != nil {
		if err := billingID.Validate(); err != nil {
			return err
		}
	}
	o.shippingAddressID = shippingID
	o.billingAddressID = billingID
	return nil
}

// AssignCarrier selects the logistics provider used for label creation.
// Set at ingestion before the orchestrator runs.
func (o *Order) AssignCarrier(carrierCode string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode")
	}
	o.carrierCode = carrierCode
	return nil
}

// AcceptForLabeling advances New → WaitingLabel at ingestion.
func (o *Order) AcceptForLabeling() error {
	newStatus, err := o.status.AcceptForLabeling()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AttachLabel records a successfully created shipping label and advances the
// label stage to LabelCreated. The label-stage retry counter is left
// untouched so the audit trail reflects how many attempts were needed.
func (o *Order) AttachLabel(trackingNumber, trackingURL string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	newStatus, err := o.status.MarkLabelCreated()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.trackingNumber = trackingNumber
	o.trackingURL = trackingURL
	return nil
}

// FailLabel records a failed label attempt: the order moves to LabelFailed
// and the label retry counter increments.
func (o *Order) FailLabel() error {
	newStatus, err := o.status.MarkLabelFailed()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.labelRetries++
	return nil
}

// MarkSynced records successful tracking sync and stamps syncedAt.
func (o *Order) MarkSynced(at time.Time) error {
	newStatus, err := o.status.MarkSynced()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.syncedAt = &at
	return nil
}

// FailSync records a failed tracking sync: the order moves to SyncFailed
// and the sync retry counter increments.
func (o *Order) FailSync() error {
	newStatus, err := o.status.MarkSyncFailed()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.syncRetries++
	return nil
}

// MarkUploaded records the printshop hand-off of the order's batch.
func (o *Order) MarkUploaded(at time.Time) error {
	newStatus, err := o.status.MarkUploaded()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.uploadedAt = &at
	return nil
}

// FailUpload records a failed printshop hand-off and increments the
// printshop retry counter.
func (o *Order) FailUpload() error {
	newStatus, err := o.status.MarkUploadFailed()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.printshopRetries++
	return nil
}

// Escalate moves the order to Exception after a stage exhausted its retries.
// Exception requires out-of-band human recovery.
func (o *Order) Escalate() error {
	newStatus, err := o.status.Escalate()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AssignBatch stamps the order with a batch identifier. Only Synced,
// unbatched orders may be assigned; the status does not change.
func (o *Order) AssignBatch(batchID string) error {
	if batchID == "" {
		return errs.NewValueIsRequiredError("batchID")
	}
	if o.status != Synced {
		return errs.NewValueIsInvalidError("status")
	}
	if o.batchID != nil {
		return ErrOrderAlreadyBatched
	}
	o.batchID = &batchID
	return nil
}

// Complete finishes the order as part of batch completion and stamps
// completedAt.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.completedAt = &at
	return nil
}

// Cancel marks the order cancelled. Cancellation is an external
// administrative action; the orchestrator never calls this.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	o.channel = channel
	return nil
}

func (o *Order) setAccountID(accountID string) error {
	if accountID == "" {
		return errs.NewValueIsRequiredError("accountID")
	}
	o.accountID = accountID
	return nil
}
