package reservation

import (
	"errors"
	"fmt"

	"stayloft/models"
)

// ErrBadSignature is returned when a payment event fails verification
// against both the platform and the host signing secrets.
var ErrBadSignature = errors.New("payment event signature verification failed")

// ConflictError reports that a date range is not free.
type ConflictError struct {
	ListingID string
	Range     models.DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("range %s to %s is not available for listing %s", e.Range.Start, e.Range.End, e.ListingID)
}

// IsConflict reports whether err is a range-availability conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// NotFoundError reports a missing hold, listing, host, or session.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is an absence failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
