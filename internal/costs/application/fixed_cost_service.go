package application

import (
	"context"
	"errors"
	"fmt"

	costs "nebenkosten/internal/costs/domain"
)

// FixedCostService provides fixed cost commands and queries.
type FixedCostService struct {
	fixedCosts costs.FixedCostRepository
	costTypes  costs.CostTypeRepository
}

// NewFixedCostService constructs a fixed cost service.
func NewFixedCostService(fixedCosts costs.FixedCostRepository, costTypes costs.CostTypeRepository) (*FixedCostService, error) {
	if fixedCosts == nil {
		return nil, errors.New("fixed cost service: nil fixed cost repository")
	}
	if costTypes == nil {
		return nil, errors.New("fixed cost service: nil cost type repository")
	}
	return &FixedCostService{fixedCosts: fixedCosts, costTypes: costTypes}, nil
}

// Create validates the fixed cost and its cost type reference and persists it.
func (s *FixedCostService) Create(ctx context.Context, fc *costs.FixedCost) error {
	if fc == nil {
		return errors.New("fixed cost service: nil fixed cost")
	}
	if err := fc.Validate(); err != nil {
		return err
	}
	if _, err := s.costTypes.GetByID(ctx, fc.CostTypeID); err != nil {
		if errors.Is(err, costs.ErrNotFound) {
			return fmt.Errorf("%w: cost type %d does not exist", costs.ErrInvalid, fc.CostTypeID)
		}
		return err
	}
	return s.fixedCosts.Create(ctx, fc)
}

// Get returns one fixed cost.
func (s *FixedCostService) Get(ctx context.Context, id int64) (*costs.FixedCost, error) {
	return s.fixedCosts.GetByID(ctx, id)
}

// List returns all fixed costs, or one cost type's when costTypeID > 0.
func (s *FixedCostService) List(ctx context.Context, costTypeID int64) ([]costs.FixedCost, error) {
	if costTypeID > 0 {
		return s.fixedCosts.ListByCostType(ctx, costTypeID)
	}
	return s.fixedCosts.List(ctx)
}

// Update applies a partial update to a fixed cost.
func (s *FixedCostService) Update(ctx context.Context, id int64, patch costs.FixedCostUpdate) (*costs.FixedCost, error) {
	existing, err := s.fixedCosts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if err := s.fixedCosts.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a fixed cost.
func (s *FixedCostService) Delete(ctx context.Context, id int64) error {
	return s.fixedCosts.Delete(ctx, id)
}
