package domain

import "errors"

// Sentinel errors shared across usecases. The HTTP layer maps these onto
// status codes in one place.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is not allowed to touch the record.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated means the operation needs a caller identity.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrAddressNotFound is the single negative geocoding outcome. Provider
	// failures, empty results and out-of-bounds geocodes all collapse into it.
	ErrAddressNotFound = errors.New("address not found in Indonesia")

	// ErrOriginOutOfBounds rejects a search whose origin lies outside the
	// supported country. Unlike ErrAddressNotFound this is caller-input
	// validation, not a geocoding failure.
	ErrOriginOutOfBounds = errors.New("search origin must be inside Indonesia")

	// ErrGameFull means a game already holds its maximum participant count.
	ErrGameFull = errors.New("game is full")

	// ErrComplaintLocked means a complaint already entered processing and can
	// no longer be deleted by its author.
	ErrComplaintLocked = errors.New("complaint is already being processed")
)

// InvalidError is a caller-input validation failure with a reason.
type InvalidError struct {
	Reason string
}

func (e *InvalidError) Error() string { return e.Reason }

// Invalid builds an InvalidError from a reason string.
func Invalid(reason string) error { return &InvalidError{Reason: reason} }

// IsInvalid reports whether err is an input validation failure.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}
