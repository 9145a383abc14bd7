package masterdata

import (
	"fmt"
	"strings"
	"time"
)

// MeterAssignment scopes a meter to one unit or to the whole building.
type MeterAssignment string

const (
	// AssignmentUnit binds the meter to a single property unit.
	AssignmentUnit MeterAssignment = "unit"
	// AssignmentCommon marks a building-wide meter without a unit.
	AssignmentCommon MeterAssignment = "common"
)

// ParseAssignment normalizes assignment text.
func ParseAssignment(text string) (MeterAssignment, error) {
	switch MeterAssignment(strings.ToLower(strings.TrimSpace(text))) {
	case AssignmentUnit:
		return AssignmentUnit, nil
	case AssignmentCommon:
		return AssignmentCommon, nil
	}
	return "", fmt.Errorf("%w: assignment must be %q or %q", ErrInvalid, AssignmentUnit, AssignmentCommon)
}

// Meter measures consumption of one resource.
type Meter struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	MeterType      string          `json:"meter_type"`
	Unit           string          `json:"unit"`
	Assignment     MeterAssignment `json:"assignment_type"`
	PropertyUnitID *int64          `json:"property_unit_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Validate checks write-time invariants.
func (m Meter) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: meter name cannot be empty", ErrInvalid)
	}
	if strings.TrimSpace(m.Unit) == "" {
		return fmt.Errorf("%w: meter unit cannot be empty", ErrInvalid)
	}
	switch m.Assignment {
	case AssignmentUnit:
		if m.PropertyUnitID == nil || *m.PropertyUnitID <= 0 {
			return fmt.Errorf("%w: unit-assigned meter requires a property unit", ErrInvalid)
		}
	case AssignmentCommon:
		if m.PropertyUnitID != nil {
			return fmt.Errorf("%w: common meter must not reference a property unit", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: assignment must be %q or %q", ErrInvalid, AssignmentUnit, AssignmentCommon)
	}
	return nil
}

// MeterUpdate carries optional fields for partial updates.
type MeterUpdate struct {
	Name           *string          `json:"name"`
	MeterType      *string          `json:"meter_type"`
	Unit           *string          `json:"unit"`
	Assignment     *MeterAssignment `json:"assignment_type"`
	PropertyUnitID *int64           `json:"property_unit_id"`
}

// Apply merges the update into an existing meter and validates the result.
// Switching a meter to common drops its unit reference.
func (p MeterUpdate) Apply(meter Meter) (Meter, error) {
	if p.Name != nil {
		meter.Name = *p.Name
	}
	if p.MeterType != nil {
		meter.MeterType = *p.MeterType
	}
	if p.Unit != nil {
		meter.Unit = *p.Unit
	}
	if p.Assignment != nil {
		meter.Assignment = *p.Assignment
	}
	if p.PropertyUnitID != nil {
		meter.PropertyUnitID = p.PropertyUnitID
	}
	if meter.Assignment == AssignmentCommon && p.PropertyUnitID == nil {
		meter.PropertyUnitID = nil
	}
	if err := meter.Validate(); err != nil {
		return Meter{}, err
	}
	return meter, nil
}
