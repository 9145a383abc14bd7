package application

import (
	"context"
	"errors"
	"fmt"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// TenantService provides tenant commands and queries.
type TenantService struct {
	tenants masterdata.TenantRepository
	units   masterdata.PropertyUnitRepository
}

// NewTenantService constructs a tenant service.
func NewTenantService(tenants masterdata.TenantRepository, units masterdata.PropertyUnitRepository) (*TenantService, error) {
	if tenants == nil {
		return nil, errors.New("tenant service: nil tenant repository")
	}
	if units == nil {
		return nil, errors.New("tenant service: nil unit repository")
	}
	return &TenantService{tenants: tenants, units: units}, nil
}

// Create validates the tenant and its unit reference and persists it.
func (s *TenantService) Create(ctx context.Context, tenant *masterdata.Tenant) error {
	if tenant == nil {
		return errors.New("tenant service: nil tenant")
	}
	if err := tenant.Validate(); err != nil {
		return err
	}
	if err := s.requireUnit(ctx, tenant.PropertyUnitID); err != nil {
		return err
	}
	return s.tenants.Create(ctx, tenant)
}

// Get returns one tenant.
func (s *TenantService) Get(ctx context.Context, id int64) (*masterdata.Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

// List returns all tenants.
func (s *TenantService) List(ctx context.Context) ([]masterdata.Tenant, error) {
	return s.tenants.List(ctx)
}

// Update applies a partial update to a tenant, re-checking the unit
// reference when it changes.
func (s *TenantService) Update(ctx context.Context, id int64, patch masterdata.TenantUpdate) (*masterdata.Tenant, error) {
	existing, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if patch.PropertyUnitID != nil {
		if err := s.requireUnit(ctx, updated.PropertyUnitID); err != nil {
			return nil, err
		}
	}
	if err := s.tenants.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a tenant.
func (s *TenantService) Delete(ctx context.Context, id int64) error {
	return s.tenants.Delete(ctx, id)
}

func (s *TenantService) requireUnit(ctx context.Context, unitID int64) error {
	_, err := s.units.GetByID(ctx, unitID)
	if errors.Is(err, masterdata.ErrNotFound) {
		return fmt.Errorf("%w: property unit %d does not exist", masterdata.ErrInvalid, unitID)
	}
	return err
}
