package billing

import (
	"fmt"
	"strings"
	"time"

	"nebenkosten/internal/interval"
)

// BillingPeriod is the date range over which costs are aggregated for the
// tenants of one property unit. Periods of the same unit never overlap.
type BillingPeriod struct {
	ID             int64     `json:"id"`
	PropertyUnitID int64     `json:"property_unit_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Window returns the period as a date range.
func (p BillingPeriod) Window() interval.Range {
	return interval.Range{Start: p.StartDate, End: p.EndDate}
}

// Validate checks write-time invariants.
func (p BillingPeriod) Validate() error {
	if p.PropertyUnitID <= 0 {
		return fmt.Errorf("%w: billing period requires a property unit", ErrInvalid)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: billing period name cannot be empty", ErrInvalid)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: billing period requires start and end dates", ErrInvalid)
	}
	if !p.StartDate.Before(p.EndDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalid)
	}
	return nil
}

// BillingPeriodUpdate carries optional fields for partial updates.
type BillingPeriodUpdate struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Apply merges the update into an existing period and validates the result.
func (p BillingPeriodUpdate) Apply(period BillingPeriod) (BillingPeriod, error) {
	if p.Name != nil {
		period.Name = *p.Name
	}
	if p.StartDate != nil {
		period.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		period.EndDate = *p.EndDate
	}
	if err := period.Validate(); err != nil {
		return BillingPeriod{}, err
	}
	return period, nil
}

// HasOverlap reports whether the candidate window collides with any of the
// given periods, skipping excludeID (the period being updated; 0 excludes
// nothing). The same strict half-open test guards both creation and update.
func HasOverlap(existing []BillingPeriod, candidate interval.Range, excludeID int64) bool {
	for _, period := range existing {
		if excludeID != 0 && period.ID == excludeID {
			continue
		}
		if interval.Overlaps(period.Window(), candidate) {
			return true
		}
	}
	return false
}
