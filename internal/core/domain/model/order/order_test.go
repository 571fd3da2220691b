package order_test

import (
	"testing"
	"time"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "A-001", "woocommerce", "1001", []byte(`{"id":1}`))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid_order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.NewOrder(id, "A-001", "woocommerce", "1001", nil)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, 0, o.LabelRetryCount())
		assert.Equal(t, 0, o.SyncRetryCount())
		assert.Nil(t, o.BatchID())
		require.NoError(t, o.Validate())
	})

	t.Run("missing_order_number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", "woocommerce", "1001", nil)
		require.Error(t, err)
	})

	t.Run("missing_channel", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "A-001", "", "1001", nil)
		require.Error(t, err)
	})

	t.Run("missing_account_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "A-001", "woocommerce", "", nil)
		require.Error(t, err)
	})

	t.Run("zero_value_id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "A-001", "woocommerce", "1001", nil)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed_order_is_valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero_value_order_is_invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_PersistedStatus(t *testing.T) {
	t.Run("new_order_is_anchored_at_new", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, order.New, o.PersistedStatus())
	})

	t.Run("transitions_do_not_move_the_anchor", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())

		assert.Equal(t, order.WaitingLabel, o.Status())
		assert.Equal(t, order.New, o.PersistedStatus())
	})

	t.Run("mark_persisted_catches_up", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		o.MarkPersisted()

		assert.Equal(t, order.WaitingLabel, o.PersistedStatus())
	})

	t.Run("restored_order_is_anchored_at_stored_status", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          kernel.NewUUID(),
			OrderNumber: "A-001",
			Channel:     "woocommerce",
			AccountID:   "1001",
			Status:      order.Synced,
		})
		require.NoError(t, err)

		assert.Equal(t, order.Synced, o.PersistedStatus())
	})
}

func TestOrder_LabelStage(t *testing.T) {
	t.Run("attach_label_advances_status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())

		err := o.AttachLabel("TRK123", "https://track.example/TRK123")

		require.NoError(t, err)
		assert.Equal(t, order.LabelCreated, o.Status())
		assert.Equal(t, "TRK123", o.TrackingNumber())
		assert.Equal(t, "https://track.example/TRK123", o.TrackingURL())
		assert.Equal(t, 0, o.LabelRetryCount())
	})

	t.Run("attach_label_requires_tracking_number", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())

		require.Error(t, o.AttachLabel("", ""))
		assert.Equal(t, order.WaitingLabel, o.Status())
	})

	t.Run("fail_label_increments_counter", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())

		require.NoError(t, o.FailLabel())
		assert.Equal(t, order.LabelFailed, o.Status())
		assert.Equal(t, 1, o.LabelRetryCount())

		require.NoError(t, o.FailLabel())
		assert.Equal(t, 2, o.LabelRetryCount())
	})

	t.Run("retry_after_failure_succeeds", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		require.NoError(t, o.FailLabel())

		require.NoError(t, o.AttachLabel("TRK456", ""))
		assert.Equal(t, order.LabelCreated, o.Status())
		assert.Equal(t, 1, o.LabelRetryCount())
	})

	t.Run("label_stage_rejected_for_new_order", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.AttachLabel("TRK123", ""))
		require.Error(t, o.FailLabel())
	})
}

func TestOrder_SyncStage(t *testing.T) {
	labelCreated := func(t *testing.T) *order.Order {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		require.NoError(t, o.AttachLabel("TRK123", ""))
		return o
	}

	t.Run("mark_synced_stamps_timestamp", func(t *testing.T) {
		o := labelCreated(t)
		at := time.Now()

		require.NoError(t, o.MarkSynced(at))
		assert.Equal(t, order.Synced, o.Status())
		require.NotNil(t, o.SyncedAt())
		assert.True(t, o.SyncedAt().Equal(at))
	})

	t.Run("fail_sync_increments_counter", func(t *testing.T) {
		o := labelCreated(t)

		require.NoError(t, o.FailSync())
		assert.Equal(t, order.SyncFailed, o.Status())
		assert.Equal(t, 1, o.SyncRetryCount())
		assert.Equal(t, 0, o.LabelRetryCount())
	})

	t.Run("sync_rejected_before_label", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		require.Error(t, o.MarkSynced(time.Now()))
	})
}

func TestOrder_Escalate(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AcceptForLabeling())
	require.NoError(t, o.FailLabel())

	require.NoError(t, o.Escalate())
	assert.Equal(t, order.Exception, o.Status())

	// Exception is terminal for this core
	require.Error(t, o.AttachLabel("TRK123", ""))
	require.Error(t, o.Escalate())
}

func TestOrder_Batching(t *testing.T) {
	synced := func(t *testing.T) *order.Order {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		require.NoError(t, o.AttachLabel("TRK123", ""))
		require.NoError(t, o.MarkSynced(time.Now()))
		return o
	}

	t.Run("assign_batch_stamps_id_without_status_change", func(t *testing.T) {
		o := synced(t)

		require.NoError(t, o.AssignBatch("BATCH_WOOCOMMERCE_20250901_001"))
		require.NotNil(t, o.BatchID())
		assert.Equal(t, "BATCH_WOOCOMMERCE_20250901_001", *o.BatchID())
		assert.Equal(t, order.Synced, o.Status())
	})

	t.Run("assign_batch_rejected_twice", func(t *testing.T) {
		o := synced(t)
		require.NoError(t, o.AssignBatch("BATCH_WOOCOMMERCE_20250901_001"))

		err := o.AssignBatch("BATCH_WOOCOMMERCE_20250901_002")
		require.ErrorIs(t, err, order.ErrOrderAlreadyBatched)
	})

	t.Run("assign_batch_requires_synced_status", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AcceptForLabeling())
		require.Error(t, o.AssignBatch("BATCH_WOOCOMMERCE_20250901_001"))
	})

	t.Run("complete_stamps_timestamp", func(t *testing.T) {
		o := synced(t)
		require.NoError(t, o.AssignBatch("BATCH_WOOCOMMERCE_20250901_001"))
		at := time.Now()

		require.NoError(t, o.Complete(at))
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.True(t, o.CompletedAt().Equal(at))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()
		batchID := "BATCH_WOOCOMMERCE_20250901_001"
		syncedAt := time.Now()

		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:             id,
			OrderNumber:    "A-002",
			Channel:        "woocommerce",
			AccountID:      "1001",
			Status:         order.Synced,
			CarrierCode:    "gls",
			TrackingNumber: "TRK789",
			LabelRetries:   2,
			BatchID:        &batchID,
			SyncedAt:       &syncedAt,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Synced, o.Status())
		assert.Equal(t, "gls", o.CarrierCode())
		assert.Equal(t, 2, o.LabelRetryCount())
		require.NotNil(t, o.BatchID())
		assert.Equal(t, batchID, *o.BatchID())
		require.NoError(t, o.Validate())
	})

	t.Run("invalid_status_rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:          kernel.NewUUID(),
			OrderNumber: "A-002",
			Channel:     "woocommerce",
			AccountID:   "1001",
			Status:      order.Unknown,
		})
		require.Error(t, err)
	})
}
