package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	costs "nebenkosten/internal/costs/domain"
)

// CostTypeRepository is an in-memory repository for cost types.
type CostTypeRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]costs.CostType
}

// NewCostTypeRepository constructs a repository.
func NewCostTypeRepository() *CostTypeRepository {
	return &CostTypeRepository{data: make(map[int64]costs.CostType)}
}

// Create stores a new cost type.
func (r *CostTypeRepository) Create(ctx context.Context, ct *costs.CostType) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ct.ID = r.nextID
	now := time.Now().UTC()
	ct.CreatedAt = now
	ct.UpdatedAt = now
	r.data[ct.ID] = *ct
	return nil
}

// GetByID fetches a cost type.
func (r *CostTypeRepository) GetByID(ctx context.Context, id int64) (*costs.CostType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.data[id]
	if !ok {
		return nil, costs.ErrNotFound
	}
	return &ct, nil
}

// List returns all cost types ordered by id.
func (r *CostTypeRepository) List(ctx context.Context) ([]costs.CostType, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]costs.CostType, 0, len(r.data))
	for _, ct := range r.data {
		result = append(result, ct)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces a stored cost type.
func (r *CostTypeRepository) Update(ctx context.Context, ct *costs.CostType) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[ct.ID]; !ok {
		return costs.ErrNotFound
	}
	ct.UpdatedAt = time.Now().UTC()
	r.data[ct.ID] = *ct
	return nil
}

// Delete removes a cost type.
func (r *CostTypeRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return costs.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// AllocationMethodRepository is an in-memory repository for the allocation
// method catalog and its cost type associations.
type AllocationMethodRepository struct {
	mu          sync.RWMutex
	nextID      int64
	data        map[int64]costs.AllocationMethod
	assignments map[int64]map[int64]bool
}

// NewAllocationMethodRepository constructs a repository.
func NewAllocationMethodRepository() *AllocationMethodRepository {
	return &AllocationMethodRepository{
		data:        make(map[int64]costs.AllocationMethod),
		assignments: make(map[int64]map[int64]bool),
	}
}

// Create stores a new allocation method.
func (r *AllocationMethodRepository) Create(ctx context.Context, method *costs.AllocationMethod) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	method.ID = r.nextID
	r.data[method.ID] = *method
	return nil
}

// GetByID fetches an allocation method.
func (r *AllocationMethodRepository) GetByID(ctx context.Context, id int64) (*costs.AllocationMethod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	method, ok := r.data[id]
	if !ok {
		return nil, costs.ErrNotFound
	}
	return &method, nil
}

// List returns all allocation methods ordered by id.
func (r *AllocationMethodRepository) List(ctx context.Context) ([]costs.AllocationMethod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]costs.AllocationMethod, 0, len(r.data))
	for _, method := range r.data {
		result = append(result, method)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListByCostType returns the methods assigned to one cost type.
func (r *AllocationMethodRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.AllocationMethod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []costs.AllocationMethod
	for methodID := range r.assignments[costTypeID] {
		if method, ok := r.data[methodID]; ok {
			result = append(result, method)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Assign links a method to a cost type.
func (r *AllocationMethodRepository) Assign(ctx context.Context, costTypeID, methodID int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.assignments[costTypeID] == nil {
		r.assignments[costTypeID] = make(map[int64]bool)
	}
	r.assignments[costTypeID][methodID] = true
	return nil
}

// Remove unlinks a method from a cost type.
func (r *AllocationMethodRepository) Remove(ctx context.Context, costTypeID, methodID int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.assignments[costTypeID][methodID] {
		return costs.ErrNotFound
	}
	delete(r.assignments[costTypeID], methodID)
	return nil
}

// Delete removes an allocation method and its assignments.
func (r *AllocationMethodRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return costs.ErrNotFound
	}
	delete(r.data, id)
	for _, methods := range r.assignments {
		delete(methods, id)
	}
	return nil
}

// TariffRepository is an in-memory repository for tariffs.
type TariffRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]costs.Tariff
}

// NewTariffRepository constructs a repository.
func NewTariffRepository() *TariffRepository {
	return &TariffRepository{data: make(map[int64]costs.Tariff)}
}

// Create stores a new tariff.
func (r *TariffRepository) Create(ctx context.Context, tariff *costs.Tariff) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tariff.ID = r.nextID
	now := time.Now().UTC()
	tariff.CreatedAt = now
	tariff.UpdatedAt = now
	r.data[tariff.ID] = *tariff
	return nil
}

// GetByID fetches a tariff.
func (r *TariffRepository) GetByID(ctx context.Context, id int64) (*costs.Tariff, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	tariff, ok := r.data[id]
	if !ok {
		return nil, costs.ErrNotFound
	}
	return &tariff, nil
}

// List returns all tariffs, newest validity first.
func (r *TariffRepository) List(ctx context.Context) ([]costs.Tariff, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]costs.Tariff, 0, len(r.data))
	for _, tariff := range r.data {
		result = append(result, tariff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ValidFrom.After(result[j].ValidFrom) })
	return result, nil
}

// ListByCostType returns one cost type's tariffs, newest validity first.
func (r *TariffRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.Tariff, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []costs.Tariff
	for _, tariff := range r.data {
		if tariff.CostTypeID == costTypeID {
			result = append(result, tariff)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ValidFrom.After(result[j].ValidFrom) })
	return result, nil
}

// Update replaces a stored tariff.
func (r *TariffRepository) Update(ctx context.Context, tariff *costs.Tariff) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[tariff.ID]; !ok {
		return costs.ErrNotFound
	}
	tariff.UpdatedAt = time.Now().UTC()
	r.data[tariff.ID] = *tariff
	return nil
}

// Delete removes a tariff.
func (r *TariffRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return costs.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// FixedCostRepository is an in-memory repository for fixed costs.
type FixedCostRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]costs.FixedCost
}

// NewFixedCostRepository constructs a repository.
func NewFixedCostRepository() *FixedCostRepository {
	return &FixedCostRepository{data: make(map[int64]costs.FixedCost)}
}

// Create stores a new fixed cost.
func (r *FixedCostRepository) Create(ctx context.Context, fc *costs.FixedCost) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	fc.ID = r.nextID
	now := time.Now().UTC()
	fc.CreatedAt = now
	fc.UpdatedAt = now
	r.data[fc.ID] = *fc
	return nil
}

// GetByID fetches a fixed cost.
func (r *FixedCostRepository) GetByID(ctx context.Context, id int64) (*costs.FixedCost, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	fc, ok := r.data[id]
	if !ok {
		return nil, costs.ErrNotFound
	}
	return &fc, nil
}

// List returns all fixed costs, most recent period first.
func (r *FixedCostRepository) List(ctx context.Context) ([]costs.FixedCost, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]costs.FixedCost, 0, len(r.data))
	for _, fc := range r.data {
		result = append(result, fc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeriodEnd.After(result[j].PeriodEnd) })
	return result, nil
}

// ListByCostType returns one cost type's fixed costs, most recent first.
func (r *FixedCostRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.FixedCost, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []costs.FixedCost
	for _, fc := range r.data {
		if fc.CostTypeID == costTypeID {
			result = append(result, fc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PeriodEnd.After(result[j].PeriodEnd) })
	return result, nil
}

// Update replaces a stored fixed cost.
func (r *FixedCostRepository) Update(ctx context.Context, fc *costs.FixedCost) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[fc.ID]; !ok {
		return costs.ErrNotFound
	}
	fc.UpdatedAt = time.Now().UTC()
	r.data[fc.ID] = *fc
	return nil
}

// Delete removes a fixed cost.
func (r *FixedCostRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return costs.ErrNotFound
	}
	delete(r.data, id)
	return nil
}
