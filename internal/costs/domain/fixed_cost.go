package costs

import (
	"fmt"
	"time"
)

// FixedCost is a flat amount incurred over a date range, split among the
// occupants of a unit at statement time.
type FixedCost struct {
	ID          int64     `json:"id"`
	CostTypeID  int64     `json:"cost_type_id"`
	Amount      float64   `json:"amount"`
	PeriodStart time.Time `json:"billing_period_start"`
	PeriodEnd   time.Time `json:"billing_period_end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks write-time invariants.
func (f FixedCost) Validate() error {
	if f.CostTypeID <= 0 {
		return fmt.Errorf("%w: fixed cost requires a cost type", ErrInvalid)
	}
	if f.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrInvalid)
	}
	if f.PeriodStart.IsZero() || f.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: fixed cost requires a billing period", ErrInvalid)
	}
	if f.PeriodEnd.Before(f.PeriodStart) {
		return fmt.Errorf("%w: billing period end date must be after start date", ErrInvalid)
	}
	return nil
}

// CoversWindow reports inclusive intersection with the statement window.
func (f FixedCost) CoversWindow(windowStart, windowEnd time.Time) bool {
	return !f.PeriodStart.After(windowEnd) && !f.PeriodEnd.Before(windowStart)
}

// FixedCostUpdate carries optional fields for partial updates.
type FixedCostUpdate struct {
	Amount      *float64   `json:"amount"`
	PeriodStart *time.Time `json:"billing_period_start"`
	PeriodEnd   *time.Time `json:"billing_period_end"`
}

// Apply merges the update into an existing fixed cost and validates the result.
func (p FixedCostUpdate) Apply(fc FixedCost) (FixedCost, error) {
	if p.Amount != nil {
		fc.Amount = *p.Amount
	}
	if p.PeriodStart != nil {
		fc.PeriodStart = *p.PeriodStart
	}
	if p.PeriodEnd != nil {
		fc.PeriodEnd = *p.PeriodEnd
	}
	if err := fc.Validate(); err != nil {
		return FixedCost{}, err
	}
	return fc, nil
}
