package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is reported by BidRepo.TransitionBid when the bid's
	// current status is outside the transition's expected set. The row stays
	// untouched and no history is written.
	ErrStatusConflict = errors.New("bid status doesn't match the expected one")
)
