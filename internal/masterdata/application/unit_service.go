package application

import (
	"context"
	"errors"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// UnitService provides property unit commands and queries.
type UnitService struct {
	units masterdata.PropertyUnitRepository
}

// NewUnitService constructs a unit service.
func NewUnitService(units masterdata.PropertyUnitRepository) (*UnitService, error) {
	if units == nil {
		return nil, errors.New("unit service: nil repository")
	}
	return &UnitService{units: units}, nil
}

// Create validates and persists a new unit.
func (s *UnitService) Create(ctx context.Context, unit *masterdata.PropertyUnit) error {
	if unit == nil {
		return errors.New("unit service: nil unit")
	}
	if err := unit.Validate(); err != nil {
		return err
	}
	return s.units.Create(ctx, unit)
}

// Get returns one unit.
func (s *UnitService) Get(ctx context.Context, id int64) (*masterdata.PropertyUnit, error) {
	return s.units.GetByID(ctx, id)
}

// List returns all units.
func (s *UnitService) List(ctx context.Context) ([]masterdata.PropertyUnit, error) {
	return s.units.List(ctx)
}

// Update applies a partial update to a unit.
func (s *UnitService) Update(ctx context.Context, id int64, patch masterdata.PropertyUnitUpdate) (*masterdata.PropertyUnit, error) {
	existing, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if err := s.units.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a unit.
func (s *UnitService) Delete(ctx context.Context, id int64) error {
	return s.units.Delete(ctx, id)
}
