package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	billing "nebenkosten/internal/billing/domain"
)

// PeriodRepository is an in-memory repository for billing periods.
type PeriodRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]billing.BillingPeriod
}

// NewPeriodRepository constructs a repository.
func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{data: make(map[int64]billing.BillingPeriod)}
}

// Create stores a new period.
func (r *PeriodRepository) Create(ctx context.Context, period *billing.BillingPeriod) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	period.ID = r.nextID
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now
	r.data[period.ID] = *period
	return nil
}

// GetByID fetches a period.
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*billing.BillingPeriod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	period, ok := r.data[id]
	if !ok {
		return nil, billing.ErrPeriodNotFound
	}
	return &period, nil
}

// List returns all periods ordered by start date descending.
func (r *PeriodRepository) List(ctx context.Context) ([]billing.BillingPeriod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]billing.BillingPeriod, 0, len(r.data))
	for _, period := range r.data {
		result = append(result, period)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

// ListByPropertyUnit returns one unit's periods ordered by start date.
func (r *PeriodRepository) ListByPropertyUnit(ctx context.Context, unitID int64) ([]billing.BillingPeriod, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []billing.BillingPeriod
	for _, period := range r.data {
		if period.PropertyUnitID == unitID {
			result = append(result, period)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

// Update replaces a stored period.
func (r *PeriodRepository) Update(ctx context.Context, period *billing.BillingPeriod) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[period.ID]; !ok {
		return billing.ErrPeriodNotFound
	}
	period.UpdatedAt = time.Now().UTC()
	r.data[period.ID] = *period
	return nil
}

// Delete removes a period.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return billing.ErrPeriodNotFound
	}
	delete(r.data, id)
	return nil
}

// StatementRepository is an in-memory repository for billing statements.
type StatementRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]billing.BillingStatement
}

// NewStatementRepository constructs a repository.
func NewStatementRepository() *StatementRepository {
	return &StatementRepository{data: make(map[int64]billing.BillingStatement)}
}

// Insert stores a new statement.
func (r *StatementRepository) Insert(ctx context.Context, statement *billing.BillingStatement) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	statement.ID = r.nextID
	r.data[statement.ID] = *statement
	return nil
}

// GetByID fetches a statement.
func (r *StatementRepository) GetByID(ctx context.Context, id int64) (*billing.BillingStatement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	statement, ok := r.data[id]
	if !ok {
		return nil, billing.ErrStatementNotFound
	}
	return &statement, nil
}

// List returns all statements, newest first.
func (r *StatementRepository) List(ctx context.Context) ([]billing.BillingStatement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]billing.BillingStatement, 0, len(r.data))
	for _, statement := range r.data {
		statement.Document = ""
		result = append(result, statement)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// ListByTenant returns one tenant's statements, newest first.
func (r *StatementRepository) ListByTenant(ctx context.Context, tenantID int64) ([]billing.BillingStatement, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []billing.BillingStatement
	for _, statement := range r.data {
		if statement.TenantID == tenantID {
			statement.Document = ""
			result = append(result, statement)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// Delete removes a statement.
func (r *StatementRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return billing.ErrStatementNotFound
	}
	delete(r.data, id)
	return nil
}
