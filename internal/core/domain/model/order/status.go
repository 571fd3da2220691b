package order

import (
	"fmt"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// MaxStageRetries is the retry cap per fulfillment stage. When a stage's
// retry counter has already reached this value, the orchestrator escalates
// the order to Exception instead of attempting another remote call.
const MaxStageRetries = 3

// Status represents the lifecycle state of an order being fulfilled.
// It implements a state machine with defined transitions so orders follow
// the fixed label → sync → batch workflow.
//
// State transitions driven by this core:
//
//	New ──> WaitingLabel ──> LabelCreated ──> Synced ──> Completed
//	             │   ▲            │   ▲          │
//	             ▼   │            ▼   │          ▼
//	         LabelFailed      SyncFailed    (batched, then
//	             │                │          completed or
//	             ▼                ▼          uploaded first)
//	         Exception        Exception
//
// Uploaded/UploadFailed belong to the downstream printshop hand-off.
// Completed, Cancelled and Exception are terminal for this core.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status set by the channel-pull step,
	// advanced to WaitingLabel at ingestion before orchestration starts.
	New

	// WaitingLabel marks an order awaiting shipping label creation.
	WaitingLabel

	// LabelCreated marks an order with a carrier label and tracking number,
	// awaiting tracking sync back to the sales channel.
	LabelCreated

	// LabelFailed marks a failed label attempt; the label stage is retried
	// on the next orchestrator invocation up to MaxStageRetries.
	LabelFailed

	// Synced marks an order whose tracking info reached the channel.
	// Synced orders are eligible for batching.
	Synced

	// SyncFailed marks a failed tracking sync; retried like LabelFailed.
	SyncFailed

	// Uploaded marks an order whose batch was handed to the printshop.
	Uploaded

	// UploadFailed marks a failed printshop hand-off.
	UploadFailed

	// Completed is the final state of a successfully fulfilled order.
	Completed

	// Exception marks an order that exhausted its retries and requires
	// out-of-band human recovery.
	Exception

	// Cancelled marks an order cancelled by an external administrative action.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "UNKNOWN",
		New:          "NEW",
		WaitingLabel: "WAITING_LABEL",
		LabelCreated: "LABEL_CREATED",
		LabelFailed:  "LABEL_FAILED",
		Synced:       "SYNCED",
		SyncFailed:   "SYNC_FAILED",
		Uploaded:     "UPLOADED",
		UploadFailed: "UPLOAD_FAILED",
		Completed:    "COMPLETED",
		Exception:    "EXCEPTION",
		Cancelled:    "CANCELLED",
	}
}

// StatusFromString parses the wire/storage form ("WAITING_LABEL", ...) back
// into a Status. Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical upper-snake name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ReadyForLabel reports whether the order sits in the label stage:
// either waiting for its first label attempt or retrying after a failure.
func (s Status) ReadyForLabel() bool {
	return s == WaitingLabel || s == LabelFailed
}

// ReadyForSync reports whether the order sits in the tracking-sync stage.
func (s Status) ReadyForSync() bool {
	return s == LabelCreated || s == SyncFailed
}

// IsTerminal reports whether no further transitions are driven by this core.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Exception
}

// CompletableInBatch reports whether batch completion may move the order to
// Completed. Orders in a failure, cancelled or exception status stay attached
// to their batch but are excluded from completion.
func (s Status) CompletableInBatch() bool {
	switch s {
	case LabelFailed, SyncFailed, UploadFailed, Completed, Exception, Cancelled, Unknown:
		return false
	default:
		return true
	}
}

// AcceptForLabeling transitions New → WaitingLabel. This is the trivial
// ingestion transition performed by the pull step, not the orchestrator.
func (s Status) AcceptForLabeling() (Status, error) {
	if s != New {
		return 0, s.invalidTransition("accept for labeling")
	}
	return WaitingLabel, nil
}

// MarkLabelCreated transitions the label stage to LabelCreated after a
// successful carrier call.
func (s Status) MarkLabelCreated() (Status, error) {
	if !s.ReadyForLabel() {
		return 0, s.invalidTransition("create label")
	}
	return LabelCreated, nil
}

// MarkLabelFailed transitions the label stage to LabelFailed after a
// failed carrier call.
func (s Status) MarkLabelFailed() (Status, error) {
	if !s.ReadyForLabel() {
		return 0, s.invalidTransition("fail label")
	}
	return LabelFailed, nil
}

// MarkSynced transitions the sync stage to Synced after tracking info
// reached the sales channel.
func (s Status) MarkSynced() (Status, error) {
	if !s.ReadyForSync() {
		return 0, s.invalidTransition("sync tracking")
	}
	return Synced, nil
}

// MarkSyncFailed transitions the sync stage to SyncFailed.
func (s Status) MarkSyncFailed() (Status, error) {
	if !s.ReadyForSync() {
		return 0, s.invalidTransition("fail sync")
	}
	return SyncFailed, nil
}

// MarkUploaded transitions Synced or UploadFailed to Uploaded once the
// order's batch was handed to the printshop.
func (s Status) MarkUploaded() (Status, error) {
	if s != Synced && s != UploadFailed {
		return 0, s.invalidTransition("upload")
	}
	return Uploaded, nil
}

// MarkUploadFailed transitions Synced or UploadFailed to UploadFailed.
func (s Status) MarkUploadFailed() (Status, error) {
	if s != Synced && s != UploadFailed {
		return 0, s.invalidTransition("fail upload")
	}
	return UploadFailed, nil
}

// Escalate transitions a retryable stage to Exception after the retry cap
// was exhausted.
func (s Status) Escalate() (Status, error) {
	if !s.ReadyForLabel() && !s.ReadyForSync() && s != Synced && s != UploadFailed && s != Uploaded {
		return 0, s.invalidTransition("escalate")
	}
	return Exception, nil
}

// Complete transitions a batch-completable status to Completed.
func (s Status) Complete() (Status, error) {
	if !s.CompletableInBatch() || s == New {
		return 0, s.invalidTransition("complete")
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, s.invalidTransition("cancel")
	}
	return Cancelled, nil
}

func (s Status) invalidTransition(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
