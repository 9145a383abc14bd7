package billing

import (
	costs "nebenkosten/internal/costs/domain"
	masterdata "nebenkosten/internal/masterdata/domain"
)

// Snapshot is the read-only view of everything the aggregation engine needs
// for one (billing period, tenant) pair. It is fetched up front so the
// engine itself runs as pure functions over in-memory data.
type Snapshot struct {
	// Unit is the tenant's own property unit.
	Unit masterdata.PropertyUnit
	// Tenant is the statement recipient.
	Tenant masterdata.Tenant
	// UnitTenantCount is the number of tenants currently occupying the
	// unit, evaluated at computation time.
	UnitTenantCount int
	// Meters holds only the meters bound to the unit. Common meters and
	// meters of other units are excluded.
	Meters []masterdata.Meter
	// ReadingsByMeter holds each meter's readings ordered by reading date
	// ascending.
	ReadingsByMeter map[int64][]masterdata.MeterReading
	// CostTypes holds every cost type.
	CostTypes []costs.CostType
	// TariffsByCostType holds tariffs grouped by cost type.
	TariffsByCostType map[int64][]costs.Tariff
	// FixedCostsByCostType holds fixed costs grouped by cost type.
	FixedCostsByCostType map[int64][]costs.FixedCost
}
