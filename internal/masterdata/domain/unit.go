package masterdata

import (
	"fmt"
	"strings"
	"time"
)

// PropertyUnit is a rentable unit of the building.
type PropertyUnit struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LivingAreaM2 float64   `json:"living_area_m2"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks write-time invariants.
func (u PropertyUnit) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: property unit name cannot be empty", ErrInvalid)
	}
	if u.LivingAreaM2 <= 0 {
		return fmt.Errorf("%w: living area must be greater than 0", ErrInvalid)
	}
	return nil
}

// PropertyUnitUpdate carries optional fields for partial updates.
type PropertyUnitUpdate struct {
	Name         *string  `json:"name"`
	LivingAreaM2 *float64 `json:"living_area_m2"`
}

// Apply merges the update into an existing unit and validates the result.
func (p PropertyUnitUpdate) Apply(unit PropertyUnit) (PropertyUnit, error) {
	if p.Name != nil {
		unit.Name = *p.Name
	}
	if p.LivingAreaM2 != nil {
		unit.LivingAreaM2 = *p.LivingAreaM2
	}
	if err := unit.Validate(); err != nil {
		return PropertyUnit{}, err
	}
	return unit, nil
}
