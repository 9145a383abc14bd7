package application

import (
	"context"
	"errors"
	"fmt"

	costs "nebenkosten/internal/costs/domain"
)

// TariffService provides tariff commands and queries.
type TariffService struct {
	tariffs   costs.TariffRepository
	costTypes costs.CostTypeRepository
}

// NewTariffService constructs a tariff service.
func NewTariffService(tariffs costs.TariffRepository, costTypes costs.CostTypeRepository) (*TariffService, error) {
	if tariffs == nil {
		return nil, errors.New("tariff service: nil tariff repository")
	}
	if costTypes == nil {
		return nil, errors.New("tariff service: nil cost type repository")
	}
	return &TariffService{tariffs: tariffs, costTypes: costTypes}, nil
}

// Create validates the tariff and its cost type reference and persists it.
// Tariffs only make sense on consumption-based cost types.
func (s *TariffService) Create(ctx context.Context, tariff *costs.Tariff) error {
	if tariff == nil {
		return errors.New("tariff service: nil tariff")
	}
	if err := tariff.Validate(); err != nil {
		return err
	}
	costType, err := s.costTypes.GetByID(ctx, tariff.CostTypeID)
	if err != nil {
		if errors.Is(err, costs.ErrNotFound) {
			return fmt.Errorf("%w: cost type %d does not exist", costs.ErrInvalid, tariff.CostTypeID)
		}
		return err
	}
	if !costType.IsConsumptionBased {
		return fmt.Errorf("%w: cost type %q is not consumption based", costs.ErrInvalid, costType.Name)
	}
	return s.tariffs.Create(ctx, tariff)
}

// Get returns one tariff.
func (s *TariffService) Get(ctx context.Context, id int64) (*costs.Tariff, error) {
	return s.tariffs.GetByID(ctx, id)
}

// List returns all tariffs, or one cost type's tariffs when costTypeID > 0.
func (s *TariffService) List(ctx context.Context, costTypeID int64) ([]costs.Tariff, error) {
	if costTypeID > 0 {
		return s.tariffs.ListByCostType(ctx, costTypeID)
	}
	return s.tariffs.List(ctx)
}

// Update applies a partial update to a tariff.
func (s *TariffService) Update(ctx context.Context, id int64, patch costs.TariffUpdate) (*costs.Tariff, error) {
	existing, err := s.tariffs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if err := s.tariffs.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a tariff.
func (s *TariffService) Delete(ctx context.Context, id int64) error {
	return s.tariffs.Delete(ctx, id)
}
