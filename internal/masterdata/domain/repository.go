package masterdata

import (
	"context"
	"time"
)

// PropertyUnitRepository persists property units.
type PropertyUnitRepository interface {
	Create(ctx context.Context, unit *PropertyUnit) error
	GetByID(ctx context.Context, id int64) (*PropertyUnit, error)
	List(ctx context.Context) ([]PropertyUnit, error)
	Update(ctx context.Context, unit *PropertyUnit) error
	Delete(ctx context.Context, id int64) error
}

// TenantRepository persists tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id int64) (*Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
	CountByPropertyUnit(ctx context.Context, unitID int64) (int, error)
	Update(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id int64) error
}

// MeterRepository persists meters.
type MeterRepository interface {
	Create(ctx context.Context, meter *Meter) error
	GetByID(ctx context.Context, id int64) (*Meter, error)
	List(ctx context.Context) ([]Meter, error)
	ListByPropertyUnit(ctx context.Context, unitID int64) ([]Meter, error)
	Update(ctx context.Context, meter *Meter) error
	Delete(ctx context.Context, id int64) error
}

// ReadingRepository persists meter readings. Previous and Next return nil
// when no neighbor exists; excludeID skips the reading being updated.
type ReadingRepository interface {
	Create(ctx context.Context, reading *MeterReading) error
	GetByID(ctx context.Context, id int64) (*MeterReading, error)
	ListByMeter(ctx context.Context, meterID int64) ([]MeterReading, error)
	Previous(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*MeterReading, error)
	Next(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*MeterReading, error)
	Update(ctx context.Context, reading *MeterReading) error
	Delete(ctx context.Context, id int64) error
}
