package masterdata

import (
	"fmt"
	"strings"
	"time"
)

// Tenant occupies exactly one property unit.
type Tenant struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	NumberOfPersons int       `json:"number_of_persons"`
	PropertyUnitID  int64     `json:"property_unit_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks write-time invariants.
func (t Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: tenant name cannot be empty", ErrInvalid)
	}
	if t.NumberOfPersons <= 0 {
		return fmt.Errorf("%w: number of persons must be greater than 0", ErrInvalid)
	}
	if t.PropertyUnitID <= 0 {
		return fmt.Errorf("%w: tenant requires a property unit", ErrInvalid)
	}
	return nil
}

// TenantUpdate carries optional fields for partial updates.
type TenantUpdate struct {
	Name            *string `json:"name"`
	NumberOfPersons *int    `json:"number_of_persons"`
	PropertyUnitID  *int64  `json:"property_unit_id"`
}

// Apply merges the update into an existing tenant and validates the result.
func (p TenantUpdate) Apply(tenant Tenant) (Tenant, error) {
	if p.Name != nil {
		tenant.Name = *p.Name
	}
	if p.NumberOfPersons != nil {
		tenant.NumberOfPersons = *p.NumberOfPersons
	}
	if p.PropertyUnitID != nil {
		tenant.PropertyUnitID = *p.PropertyUnitID
	}
	if err := tenant.Validate(); err != nil {
		return Tenant{}, err
	}
	return tenant, nil
}
