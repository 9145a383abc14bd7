package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// PropertyUnitRepository is an in-memory repository for property units.
type PropertyUnitRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]masterdata.PropertyUnit
}

// NewPropertyUnitRepository constructs a repository.
func NewPropertyUnitRepository() *PropertyUnitRepository {
	return &PropertyUnitRepository{data: make(map[int64]masterdata.PropertyUnit)}
}

// Create stores a new unit.
func (r *PropertyUnitRepository) Create(ctx context.Context, unit *masterdata.PropertyUnit) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	unit.ID = r.nextID
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	r.data[unit.ID] = *unit
	return nil
}

// GetByID fetches a unit.
func (r *PropertyUnitRepository) GetByID(ctx context.Context, id int64) (*masterdata.PropertyUnit, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.data[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return &unit, nil
}

// List returns all units ordered by id.
func (r *PropertyUnitRepository) List(ctx context.Context) ([]masterdata.PropertyUnit, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]masterdata.PropertyUnit, 0, len(r.data))
	for _, unit := range r.data {
		result = append(result, unit)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces a stored unit.
func (r *PropertyUnitRepository) Update(ctx context.Context, unit *masterdata.PropertyUnit) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[unit.ID]; !ok {
		return masterdata.ErrNotFound
	}
	unit.UpdatedAt = time.Now().UTC()
	r.data[unit.ID] = *unit
	return nil
}

// Delete removes a unit.
func (r *PropertyUnitRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return masterdata.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// TenantRepository is an in-memory repository for tenants.
type TenantRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]masterdata.Tenant
}

// NewTenantRepository constructs a repository.
func NewTenantRepository() *TenantRepository {
	return &TenantRepository{data: make(map[int64]masterdata.Tenant)}
}

// Create stores a new tenant.
func (r *TenantRepository) Create(ctx context.Context, tenant *masterdata.Tenant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tenant.ID = r.nextID
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	r.data[tenant.ID] = *tenant
	return nil
}

// GetByID fetches a tenant.
func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*masterdata.Tenant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	tenant, ok := r.data[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return &tenant, nil
}

// List returns all tenants ordered by id.
func (r *TenantRepository) List(ctx context.Context) ([]masterdata.Tenant, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]masterdata.Tenant, 0, len(r.data))
	for _, tenant := range r.data {
		result = append(result, tenant)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CountByPropertyUnit counts tenants on a unit.
func (r *TenantRepository) CountByPropertyUnit(ctx context.Context, unitID int64) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, tenant := range r.data {
		if tenant.PropertyUnitID == unitID {
			count++
		}
	}
	return count, nil
}

// Update replaces a stored tenant.
func (r *TenantRepository) Update(ctx context.Context, tenant *masterdata.Tenant) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[tenant.ID]; !ok {
		return masterdata.ErrNotFound
	}
	tenant.UpdatedAt = time.Now().UTC()
	r.data[tenant.ID] = *tenant
	return nil
}

// Delete removes a tenant.
func (r *TenantRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return masterdata.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// MeterRepository is an in-memory repository for meters.
type MeterRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]masterdata.Meter
}

// NewMeterRepository constructs a repository.
func NewMeterRepository() *MeterRepository {
	return &MeterRepository{data: make(map[int64]masterdata.Meter)}
}

// Create stores a new meter.
func (r *MeterRepository) Create(ctx context.Context, meter *masterdata.Meter) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	meter.ID = r.nextID
	now := time.Now().UTC()
	meter.CreatedAt = now
	meter.UpdatedAt = now
	r.data[meter.ID] = *meter
	return nil
}

// GetByID fetches a meter.
func (r *MeterRepository) GetByID(ctx context.Context, id int64) (*masterdata.Meter, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	meter, ok := r.data[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return &meter, nil
}

// List returns all meters ordered by id.
func (r *MeterRepository) List(ctx context.Context) ([]masterdata.Meter, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]masterdata.Meter, 0, len(r.data))
	for _, meter := range r.data {
		result = append(result, meter)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListByPropertyUnit returns the unit-bound meters of one unit.
func (r *MeterRepository) ListByPropertyUnit(ctx context.Context, unitID int64) ([]masterdata.Meter, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []masterdata.Meter
	for _, meter := range r.data {
		if meter.Assignment == masterdata.AssignmentUnit &&
			meter.PropertyUnitID != nil && *meter.PropertyUnitID == unitID {
			result = append(result, meter)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces a stored meter.
func (r *MeterRepository) Update(ctx context.Context, meter *masterdata.Meter) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[meter.ID]; !ok {
		return masterdata.ErrNotFound
	}
	meter.UpdatedAt = time.Now().UTC()
	r.data[meter.ID] = *meter
	return nil
}

// Delete removes a meter.
func (r *MeterRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return masterdata.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// ReadingRepository is an in-memory repository for meter readings.
type ReadingRepository struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]masterdata.MeterReading
}

// NewReadingRepository constructs a repository.
func NewReadingRepository() *ReadingRepository {
	return &ReadingRepository{data: make(map[int64]masterdata.MeterReading)}
}

// Create stores a new reading.
func (r *ReadingRepository) Create(ctx context.Context, reading *masterdata.MeterReading) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reading.ID = r.nextID
	now := time.Now().UTC()
	reading.CreatedAt = now
	reading.UpdatedAt = now
	r.data[reading.ID] = *reading
	return nil
}

// GetByID fetches a reading.
func (r *ReadingRepository) GetByID(ctx context.Context, id int64) (*masterdata.MeterReading, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	reading, ok := r.data[id]
	if !ok {
		return nil, masterdata.ErrNotFound
	}
	return &reading, nil
}

// ListByMeter returns a meter's readings in ascending date order.
func (r *ReadingRepository) ListByMeter(ctx context.Context, meterID int64) ([]masterdata.MeterReading, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []masterdata.MeterReading
	for _, reading := range r.data {
		if reading.MeterID == meterID {
			result = append(result, reading)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ReadingDate.Equal(result[j].ReadingDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].ReadingDate.Before(result[j].ReadingDate)
	})
	return result, nil
}

// Previous returns the latest reading strictly before date.
func (r *ReadingRepository) Previous(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*masterdata.MeterReading, error) {
	readings, _ := r.ListByMeter(ctx, meterID)
	var previous *masterdata.MeterReading
	for i := range readings {
		reading := readings[i]
		if reading.ID == excludeID || !reading.ReadingDate.Before(date) {
			continue
		}
		previous = &reading
	}
	return previous, nil
}

// Next returns the earliest reading strictly after date.
func (r *ReadingRepository) Next(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*masterdata.MeterReading, error) {
	readings, _ := r.ListByMeter(ctx, meterID)
	for i := range readings {
		reading := readings[i]
		if reading.ID == excludeID {
			continue
		}
		if reading.ReadingDate.After(date) {
			return &reading, nil
		}
	}
	return nil, nil
}

// Update replaces a stored reading.
func (r *ReadingRepository) Update(ctx context.Context, reading *masterdata.MeterReading) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[reading.ID]; !ok {
		return masterdata.ErrNotFound
	}
	reading.UpdatedAt = time.Now().UTC()
	r.data[reading.ID] = *reading
	return nil
}

// Delete removes a reading.
func (r *ReadingRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return masterdata.ErrNotFound
	}
	delete(r.data, id)
	return nil
}
