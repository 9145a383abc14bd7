package application

import (
	"context"
	"errors"
	"fmt"

	billing "nebenkosten/internal/billing/domain"
	masterdata "nebenkosten/internal/masterdata/domain"
	"nebenkosten/internal/observability/metrics"
)

// PeriodService provides billing period commands and queries. Every write
// passes the overlap guard: periods of the same property unit never
// intersect, with touching boundaries allowed.
type PeriodService struct {
	periods billing.PeriodRepository
	units   masterdata.PropertyUnitRepository
}

// NewPeriodService constructs a period service.
func NewPeriodService(periods billing.PeriodRepository, units masterdata.PropertyUnitRepository) (*PeriodService, error) {
	if periods == nil {
		return nil, errors.New("period service: nil period repository")
	}
	if units == nil {
		return nil, errors.New("period service: nil unit repository")
	}
	return &PeriodService{periods: periods, units: units}, nil
}

// Create validates a new period, runs the overlap guard and persists it.
func (s *PeriodService) Create(ctx context.Context, period *billing.BillingPeriod) error {
	if period == nil {
		return errors.New("period service: nil period")
	}
	if err := period.Validate(); err != nil {
		return err
	}
	if _, err := s.units.GetByID(ctx, period.PropertyUnitID); err != nil {
		if errors.Is(err, masterdata.ErrNotFound) {
			return fmt.Errorf("%w: property unit %d does not exist", billing.ErrInvalid, period.PropertyUnitID)
		}
		return err
	}
	if err := s.guardOverlap(ctx, *period, 0); err != nil {
		return err
	}
	return s.periods.Create(ctx, period)
}

// Get returns one period.
func (s *PeriodService) Get(ctx context.Context, id int64) (*billing.BillingPeriod, error) {
	return s.periods.GetByID(ctx, id)
}

// List returns all periods, or one unit's periods when unitID > 0.
func (s *PeriodService) List(ctx context.Context, unitID int64) ([]billing.BillingPeriod, error) {
	if unitID > 0 {
		return s.periods.ListByPropertyUnit(ctx, unitID)
	}
	return s.periods.List(ctx)
}

// Update applies a partial update, re-running the overlap guard with the
// period itself excluded. The same strict test protects creation and update.
func (s *PeriodService) Update(ctx context.Context, id int64, patch billing.BillingPeriodUpdate) (*billing.BillingPeriod, error) {
	existing, err := s.periods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if err := s.guardOverlap(ctx, updated, id); err != nil {
		return nil, err
	}
	if err := s.periods.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a period.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	return s.periods.Delete(ctx, id)
}

func (s *PeriodService) guardOverlap(ctx context.Context, period billing.BillingPeriod, excludeID int64) error {
	existing, err := s.periods.ListByPropertyUnit(ctx, period.PropertyUnitID)
	if err != nil {
		metrics.IncPeriodValidation("error")
		return err
	}
	if billing.HasOverlap(existing, period.Window(), excludeID) {
		metrics.IncPeriodValidation("rejected")
		return billing.ErrOverlap
	}
	metrics.IncPeriodValidation("accepted")
	return nil
}
