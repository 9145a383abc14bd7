package postgres

import (
	"context"
	"errors"

	billing "nebenkosten/internal/billing/domain"
	costs "nebenkosten/internal/costs/domain"
	costspg "nebenkosten/internal/costs/infrastructure/postgres"
	masterdata "nebenkosten/internal/masterdata/domain"
	masterdatapg "nebenkosten/internal/masterdata/infrastructure/postgres"
)

// SnapshotReader assembles the aggregation input for one tenant from the
// Postgres repositories. All reads happen up front so the engine works on a
// consistent in-memory view.
type SnapshotReader struct {
	units      *masterdatapg.PropertyUnitRepository
	tenants    *masterdatapg.TenantRepository
	meters     *masterdatapg.MeterRepository
	readings   *masterdatapg.ReadingRepository
	costTypes  *costspg.CostTypeRepository
	tariffs    *costspg.TariffRepository
	fixedCosts *costspg.FixedCostRepository
}

// NewSnapshotReader constructs a snapshot reader over the given repositories.
func NewSnapshotReader(
	units *masterdatapg.PropertyUnitRepository,
	tenants *masterdatapg.TenantRepository,
	meters *masterdatapg.MeterRepository,
	readings *masterdatapg.ReadingRepository,
	costTypes *costspg.CostTypeRepository,
	tariffs *costspg.TariffRepository,
	fixedCosts *costspg.FixedCostRepository,
) (*SnapshotReader, error) {
	if units == nil || tenants == nil || meters == nil || readings == nil {
		return nil, errors.New("snapshot reader: nil masterdata repository")
	}
	if costTypes == nil || tariffs == nil || fixedCosts == nil {
		return nil, errors.New("snapshot reader: nil costs repository")
	}
	return &SnapshotReader{
		units:      units,
		tenants:    tenants,
		meters:     meters,
		readings:   readings,
		costTypes:  costTypes,
		tariffs:    tariffs,
		fixedCosts: fixedCosts,
	}, nil
}

// Load fetches everything the engine needs for one tenant.
func (r *SnapshotReader) Load(ctx context.Context, tenantID int64) (*billing.Snapshot, error) {
	tenant, err := r.tenants.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, masterdata.ErrNotFound) {
			return nil, billing.ErrTenantNotFound
		}
		return nil, err
	}

	unit, err := r.units.GetByID(ctx, tenant.PropertyUnitID)
	if err != nil {
		return nil, err
	}

	count, err := r.tenants.CountByPropertyUnit(ctx, unit.ID)
	if err != nil {
		return nil, err
	}

	meters, err := r.meters.ListByPropertyUnit(ctx, unit.ID)
	if err != nil {
		return nil, err
	}

	readingsByMeter := make(map[int64][]masterdata.MeterReading, len(meters))
	for _, meter := range meters {
		readings, err := r.readings.ListByMeter(ctx, meter.ID)
		if err != nil {
			return nil, err
		}
		readingsByMeter[meter.ID] = readings
	}

	costTypes, err := r.costTypes.List(ctx)
	if err != nil {
		return nil, err
	}

	tariffsByCostType := make(map[int64][]costs.Tariff)
	fixedCostsByCostType := make(map[int64][]costs.FixedCost)
	for _, costType := range costTypes {
		if costType.IsConsumptionBased {
			tariffs, err := r.tariffs.ListByCostType(ctx, costType.ID)
			if err != nil {
				return nil, err
			}
			tariffsByCostType[costType.ID] = tariffs
			continue
		}
		fixed, err := r.fixedCosts.ListByCostType(ctx, costType.ID)
		if err != nil {
			return nil, err
		}
		fixedCostsByCostType[costType.ID] = fixed
	}

	return &billing.Snapshot{
		Unit:                 *unit,
		Tenant:               *tenant,
		UnitTenantCount:      count,
		Meters:               meters,
		ReadingsByMeter:      readingsByMeter,
		CostTypes:            costTypes,
		TariffsByCostType:    tariffsByCostType,
		FixedCostsByCostType: fixedCostsByCostType,
	}, nil
}
