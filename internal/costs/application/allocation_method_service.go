package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	costs "nebenkosten/internal/costs/domain"
)

// AllocationMethodService manages the descriptive allocation method catalog
// and its cost type associations. The aggregation engine never reads either.
type AllocationMethodService struct {
	methods   costs.AllocationMethodRepository
	costTypes costs.CostTypeRepository
}

// NewAllocationMethodService constructs an allocation method service.
func NewAllocationMethodService(methods costs.AllocationMethodRepository, costTypes costs.CostTypeRepository) (*AllocationMethodService, error) {
	if methods == nil {
		return nil, errors.New("allocation method service: nil repository")
	}
	if costTypes == nil {
		return nil, errors.New("allocation method service: nil cost type repository")
	}
	return &AllocationMethodService{methods: methods, costTypes: costTypes}, nil
}

// Create persists a new allocation method.
func (s *AllocationMethodService) Create(ctx context.Context, method *costs.AllocationMethod) error {
	if method == nil {
		return errors.New("allocation method service: nil method")
	}
	if strings.TrimSpace(method.Name) == "" {
		return fmt.Errorf("%w: allocation method name cannot be empty", costs.ErrInvalid)
	}
	return s.methods.Create(ctx, method)
}

// Get returns one allocation method.
func (s *AllocationMethodService) Get(ctx context.Context, id int64) (*costs.AllocationMethod, error) {
	return s.methods.GetByID(ctx, id)
}

// List returns all allocation methods.
func (s *AllocationMethodService) List(ctx context.Context) ([]costs.AllocationMethod, error) {
	return s.methods.List(ctx)
}

// ListByCostType returns the methods assigned to one cost type.
func (s *AllocationMethodService) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.AllocationMethod, error) {
	if err := s.requireCostType(ctx, costTypeID); err != nil {
		return nil, err
	}
	return s.methods.ListByCostType(ctx, costTypeID)
}

// Assign links a method to a cost type. Both sides must exist.
func (s *AllocationMethodService) Assign(ctx context.Context, costTypeID, methodID int64) error {
	if err := s.requireCostType(ctx, costTypeID); err != nil {
		return err
	}
	if _, err := s.methods.GetByID(ctx, methodID); err != nil {
		return err
	}
	return s.methods.Assign(ctx, costTypeID, methodID)
}

// Remove unlinks a method from a cost type.
func (s *AllocationMethodService) Remove(ctx context.Context, costTypeID, methodID int64) error {
	if err := s.requireCostType(ctx, costTypeID); err != nil {
		return err
	}
	return s.methods.Remove(ctx, costTypeID, methodID)
}

// Delete removes an allocation method.
func (s *AllocationMethodService) Delete(ctx context.Context, id int64) error {
	return s.methods.Delete(ctx, id)
}

func (s *AllocationMethodService) requireCostType(ctx context.Context, costTypeID int64) error {
	if _, err := s.costTypes.GetByID(ctx, costTypeID); err != nil {
		return err
	}
	return nil
}
