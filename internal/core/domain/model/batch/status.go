package batch

import (
	"fmt"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// Status represents the lifecycle state of an order batch.
//
// State transitions:
//
//	Pending ──> Uploaded ──> Completed
//	    │           ▲
//	    ▼           │
//	UploadFailed ───┘
//	 (retry)
//
// Completion is also allowed straight from Pending, since the printshop
// hand-off happens outside this core and some deployments skip it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly generated batch.
	Pending

	// Uploaded marks a batch handed to the downstream printshop.
	Uploaded

	// UploadFailed marks a failed printshop hand-off; retried externally.
	UploadFailed

	// Completed marks a batch whose member orders finished processing.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "unknown",
		Pending:      "pending",
		Uploaded:     "uploaded",
		UploadFailed: "upload_failed",
		Completed:    "completed",
	}
}

// StatusFromString parses the storage form back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid batch status", s))
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid batch status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the lowercase storage name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarkUploaded transitions Pending or UploadFailed to Uploaded.
func (s Status) MarkUploaded() (Status, error) {
	if s != Pending && s != UploadFailed {
		return 0, s.invalidTransition("upload")
	}
	return Uploaded, nil
}

// MarkUploadFailed transitions Pending or UploadFailed to UploadFailed.
func (s Status) MarkUploadFailed() (Status, error) {
	if s != Pending && s != UploadFailed {
		return 0, s.invalidTransition("fail upload")
	}
	return UploadFailed, nil
}

// Complete transitions any non-completed status to Completed.
func (s Status) Complete() (Status, error) {
	if s == Completed || s == Unknown {
		return 0, s.invalidTransition("complete")
	}
	return Completed, nil
}

func (s Status) invalidTransition(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid batch status to %s", s.String(), action),
	)
}
