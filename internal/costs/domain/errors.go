package costs

import "errors"

var (
	// ErrNotFound reports a missing entity reference.
	ErrNotFound = errors.New("costs: not found")
	// ErrInvalid wraps write-time validation failures.
	ErrInvalid = errors.New("costs: invalid input")
)
