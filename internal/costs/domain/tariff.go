package costs

import (
	"fmt"
	"time"
)

// Tariff is a price per unit effective over a validity window.
// ValidTo == nil means open ended. Windows of sibling tariffs are not
// guaranteed disjoint by construction.
type Tariff struct {
	ID           int64      `json:"id"`
	CostTypeID   int64      `json:"cost_type_id"`
	PricePerUnit float64    `json:"price_per_unit"`
	ValidFrom    time.Time  `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Validate checks write-time invariants.
func (t Tariff) Validate() error {
	if t.CostTypeID <= 0 {
		return fmt.Errorf("%w: tariff requires a cost type", ErrInvalid)
	}
	if t.PricePerUnit <= 0 {
		return fmt.Errorf("%w: price per unit must be greater than 0", ErrInvalid)
	}
	if t.ValidFrom.IsZero() {
		return fmt.Errorf("%w: tariff requires a valid_from date", ErrInvalid)
	}
	if t.ValidTo != nil && t.ValidTo.Before(t.ValidFrom) {
		return fmt.Errorf("%w: valid_to must not precede valid_from", ErrInvalid)
	}
	return nil
}

// CoversWindow reports whether the validity interval intersects the window:
// valid_from <= window_end and (open ended or valid_to >= window_start).
func (t Tariff) CoversWindow(windowStart, windowEnd time.Time) bool {
	if t.ValidFrom.After(windowEnd) {
		return false
	}
	return t.ValidTo == nil || !t.ValidTo.Before(windowStart)
}

// TariffUpdate carries optional fields for partial updates.
type TariffUpdate struct {
	PricePerUnit *float64   `json:"price_per_unit"`
	ValidFrom    *time.Time `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to"`
}

// Apply merges the update into an existing tariff and validates the result.
func (p TariffUpdate) Apply(t Tariff) (Tariff, error) {
	if p.PricePerUnit != nil {
		t.PricePerUnit = *p.PricePerUnit
	}
	if p.ValidFrom != nil {
		t.ValidFrom = *p.ValidFrom
	}
	if p.ValidTo != nil {
		t.ValidTo = p.ValidTo
	}
	if err := t.Validate(); err != nil {
		return Tariff{}, err
	}
	return t, nil
}
