// Package batch contains the OrderBatch aggregate and the batch identifier
// allocation rules. A batch is a named group of synced orders earmarked for
// joint downstream packaging and completion.
package batch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// ErrBatchIsNotConstructed is returned when a Batch instance was not created
// through NewBatch or RestoreBatch.
var ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch")

// BatchIDPrefix builds the day- and channel-scoped prefix shared by all
// batch identifiers generated for one channel on one day:
// "BATCH_{CHANNEL}_{YYYYMMDD}_".
func BatchIDPrefix(channel string, day time.Time) string {
	return fmt.Sprintf("BATCH_%s_%s_", strings.ToUpper(channel), day.Format("20060102"))
}

// AllocateBatchID builds the next batch identifier for a channel and day,
// given how many batches already share that day's prefix. The sequence is
// scoped per channel and day, not globally unique across channels.
//
// Example: AllocateBatchID("woocommerce", day, 2) → "BATCH_WOOCOMMERCE_20250901_003".
func AllocateBatchID(channel string, day time.Time, existing int) string {
	return fmt.Sprintf("%s%03d", BatchIDPrefix(channel, day), existing+1)
}

// Batch is the OrderBatch aggregate: a group of synced orders stamped with a
// shared batch identifier. Created by the batch manager in status Pending and
// later marked completed once its member orders finish.
type Batch struct {
	id          kernel.UUID
	batchID     string
	channel     string
	orderCount  int
	status      Status
	operator    string

	// persistedStatus is the status the storage row carried when this
	// aggregate was loaded or last flushed. Repositories match on it when
	// updating, so a stale snapshot can never overwrite a concurrent
	// transition.
	persistedStatus Status
	createdAt   time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewBatch creates a pending batch. orderCount must be positive: empty
// batches are never created.
func NewBatch(id kernel.UUID, batchID, channel string, orderCount int, operator string) (*Batch, error) {
	b := &Batch{
		status:          Pending,
		persistedStatus: Pending,
		createdAt:       time.Now(),
		isConstructed:   true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setBatchID(batchID),
		b.setChannel(channel),
		b.setOrderCount(orderCount),
	); err != nil {
		return nil, err
	}
	b.operator = operator

	return b, nil
}

// RestoreBatch reconstructs a batch from persistence.
func RestoreBatch(
	id kernel.UUID,
	batchID, channel string,
	orderCount int,
	status Status,
	operator string,
	createdAt time.Time,
	completedAt *time.Time,
) (*Batch, error) {
	b := &Batch{
		operator:      operator,
		createdAt:     createdAt,
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setBatchID(batchID),
		b.setChannel(channel),
		b.setOrderCount(orderCount),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	b.status = status
	b.persistedStatus = status

	return b, nil
}

// Validate ensures the Batch was constructed through NewBatch or RestoreBatch.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID { return b.id }

// BatchID returns the human-readable batch identifier.
func (b *Batch) BatchID() string { return b.batchID }

// Channel returns the sales channel the batch was generated for.
func (b *Batch) Channel() string { return b.channel }

// OrderCount returns the number of orders stamped with this batch.
// The count is fixed at generation time; partial completion leaves it
// unchanged.
func (b *Batch) OrderCount() int { return b.orderCount }

// Status returns the batch lifecycle status.
func (b *Batch) Status() Status { return b.status }

// PersistedStatus returns the status the batch had at its last load or
// flush. Repositories use it as the optimistic predicate when updating.
func (b *Batch) PersistedStatus() Status { return b.persistedStatus }

// MarkPersisted records that the current state has been flushed to storage.
// Called by repositories after a successful write.
func (b *Batch) MarkPersisted() { b.persistedStatus = b.status }

// Operator returns who requested batch generation.
func (b *Batch) Operator() string { return b.operator }

// CreatedAt returns when the batch was generated.
func (b *Batch) CreatedAt() time.Time { return b.createdAt }

// CompletedAt returns when the batch was completed, nil before.
func (b *Batch) CompletedAt() *time.Time { return b.completedAt }

// MarkUploaded records the printshop hand-off.
func (b *Batch) MarkUploaded() error {
	newStatus, err := b.status.MarkUploaded()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// MarkUploadFailed records a failed printshop hand-off.
func (b *Batch) MarkUploadFailed() error {
	newStatus, err := b.status.MarkUploadFailed()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Complete marks the batch completed and stamps completedAt.
func (b *Batch) Complete(at time.Time) error {
	newStatus, err := b.status.Complete()
	if err != nil {
		return err
	}
	b.status = newStatus
	b.completedAt = &at
	return nil
}

func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Batch) setBatchID(batchID string) error {
	if batchID == "" {
		return errs.NewValueIsRequiredError("batchID")
	}
	b.batchID = batchID
	return nil
}

func (b *Batch) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	b.channel = channel
	return nil
}

func (b *Batch) setOrderCount(orderCount int) error {
	if orderCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderCount", fmt.Errorf("%d is not greater than 0", orderCount))
	}
	b.orderCount = orderCount
	return nil
}
