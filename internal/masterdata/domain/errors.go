package masterdata

import "errors"

var (
	// ErrNotFound reports a missing entity reference.
	ErrNotFound = errors.New("masterdata: not found")
	// ErrInvalid wraps write-time validation failures.
	ErrInvalid = errors.New("masterdata: invalid input")
)
