package application

import (
	"context"
	"errors"

	costs "nebenkosten/internal/costs/domain"
)

// CostTypeService provides cost type commands and queries.
type CostTypeService struct {
	costTypes costs.CostTypeRepository
}

// NewCostTypeService constructs a cost type service.
func NewCostTypeService(costTypes costs.CostTypeRepository) (*CostTypeService, error) {
	if costTypes == nil {
		return nil, errors.New("cost type service: nil repository")
	}
	return &CostTypeService{costTypes: costTypes}, nil
}

// Create validates and persists a new cost type.
func (s *CostTypeService) Create(ctx context.Context, ct *costs.CostType) error {
	if ct == nil {
		return errors.New("cost type service: nil cost type")
	}
	if err := ct.Validate(); err != nil {
		return err
	}
	return s.costTypes.Create(ctx, ct)
}

// Get returns one cost type.
func (s *CostTypeService) Get(ctx context.Context, id int64) (*costs.CostType, error) {
	return s.costTypes.GetByID(ctx, id)
}

// List returns all cost types.
func (s *CostTypeService) List(ctx context.Context) ([]costs.CostType, error) {
	return s.costTypes.List(ctx)
}

// Update applies a partial update to a cost type.
func (s *CostTypeService) Update(ctx context.Context, id int64, patch costs.CostTypeUpdate) (*costs.CostType, error) {
	existing, err := s.costTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := patch.Apply(*existing)
	if err != nil {
		return nil, err
	}
	if err := s.costTypes.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a cost type.
func (s *CostTypeService) Delete(ctx context.Context, id int64) error {
	return s.costTypes.Delete(ctx, id)
}
