package costs

import (
	"fmt"
	"strings"
	"time"
)

// CostType is a category of shared expense, either consumption based
// (settled via tariffs and meter deltas) or fixed (flat amounts split among
// occupants).
type CostType struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        *string   `json:"description,omitempty"`
	IsConsumptionBased bool      `json:"is_consumption_based"`
	Unit               *string   `json:"unit,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks write-time invariants.
func (c CostType) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: cost type name cannot be empty", ErrInvalid)
	}
	if c.IsConsumptionBased && (c.Unit == nil || strings.TrimSpace(*c.Unit) == "") {
		return fmt.Errorf("%w: unit is required for consumption-based cost types", ErrInvalid)
	}
	return nil
}

// CostTypeUpdate carries optional fields for partial updates.
type CostTypeUpdate struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	IsConsumptionBased *bool   `json:"is_consumption_based"`
	Unit               *string `json:"unit"`
}

// Apply merges the update into an existing cost type and validates the result.
func (p CostTypeUpdate) Apply(ct CostType) (CostType, error) {
	if p.Name != nil {
		ct.Name = *p.Name
	}
	if p.Description != nil {
		ct.Description = p.Description
	}
	if p.IsConsumptionBased != nil {
		ct.IsConsumptionBased = *p.IsConsumptionBased
	}
	if p.Unit != nil {
		ct.Unit = p.Unit
	}
	if err := ct.Validate(); err != nil {
		return CostType{}, err
	}
	return ct, nil
}

// AllocationMethod is descriptive metadata associating a cost type with a
// named distribution strategy. The aggregation engine never consumes it.
type AllocationMethod struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
