package application

import (
	"context"
	"errors"
	"fmt"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// MeterService provides meter commands and queries.
type MeterService struct {
	meters masterdata.MeterRepository
	units  masterdata.PropertyUnitRepository
}

// NewMeterService constructs a meter service.
func NewMeterService(meters masterdata.MeterRepository, units masterdata.PropertyUnitRepository) (*MeterService, error) {
	if meters == nil {
		return nil, errors.New("meter service: nil meter repository")
	}
	if units == nil {
		return nil, errors.New("meter service: nil unit repository")
	}
	return &MeterService{meters: meters, units: units}, nil
}

// Create validates the meter and its unit reference and persists it.
func (s *MeterService) Create(ctx context.Context, meter *masterdata.Meter) error {
	if meter == nil {
		return errors.New("meter service: nil meter")
	}
	if err := meter.Validate(); err != nil {
		return err
	}
	if meter.PropertyUnitID != nil {
		if err := s.requireUnit(ctx, *meter.PropertyUnitID); err != nil {
			return err
		}
	}
	return s.meters.Create(ctx, meter)
}

// Get returns one meter.
func (s *MeterService) Get(ctx context.Context, id int64) (*masterdata.Meter, error) {
	return s.meters.GetByID(ctx, id)
}

// List returns all meters.
func (s *MeterService) List(ctx context.Context) ([]masterdata.Meter, error) {
	return s.meters.List(ctx)
}

// Update applies a partial update to a meter.
func (s *MeterService) Update(ctx context.Context, id int64, patch masterdata.MeterUpdate) (*masterdata.Meter, error) {
	existing, err := s.meters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if patch.PropertyUnitID != nil && updated.PropertyUnitID != nil {
		if err := s.requireUnit(ctx, *updated.PropertyUnitID); err != nil {
			return nil, err
		}
	}
	if err := s.meters.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a meter.
func (s *MeterService) Delete(ctx context.Context, id int64) error {
	return s.meters.Delete(ctx, id)
}

func (s *MeterService) requireUnit(ctx context.Context, unitID int64) error {
	_, err := s.units.GetByID(ctx, unitID)
	if errors.Is(err, masterdata.ErrNotFound) {
		return fmt.Errorf("%w: property unit %d does not exist", masterdata.ErrInvalid, unitID)
	}
	return err
}
