package billing

import "errors"

var (
	// ErrPeriodNotFound reports a missing billing period reference.
	ErrPeriodNotFound = errors.New("billing: billing period not found")
	// ErrTenantNotFound reports a missing tenant reference.
	ErrTenantNotFound = errors.New("billing: tenant not found")
	// ErrStatementNotFound reports a missing statement reference.
	ErrStatementNotFound = errors.New("billing: statement not found")
	// ErrInvalid wraps write-time validation failures.
	ErrInvalid = errors.New("billing: invalid input")
	// ErrOverlap reports a billing period colliding with an existing one
	// for the same property unit.
	ErrOverlap = errors.New("billing: overlapping billing periods found")
)
