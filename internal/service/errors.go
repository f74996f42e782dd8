package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBidNotFound        = errors.New("bid not found")
	ErrItemNotFound       = errors.New("bid item not found")
	ErrBuyerNotFound      = errors.New("buyer not found")
	ErrBidderNotFound     = errors.New("bidder not found")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrSubmissionNotFound = errors.New("submission not found for this bid")

	ErrPreconditionFailed = errors.New("bid status doesn't allow this operation")
	ErrValidationFailed   = errors.New("invalid input value")

	ErrBuyerNotAssigned = errors.New("buyer is not assigned to this bid")
)

// PreconditionError reports a lifecycle operation invoked while the bid is in
// the wrong state. It unwraps to ErrPreconditionFailed so callers can keep
// using errors.Is.
type PreconditionError struct {
	Expected []string
	Actual   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bid status must be %s, but is %s", strings.Join(e.Expected, " or "), e.Actual)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}

// ValidationError reports a missing or malformed input field. Unwraps to
// ErrValidationFailed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("'%s': %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
