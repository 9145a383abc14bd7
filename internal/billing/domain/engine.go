package billing

import (
	costs "nebenkosten/internal/costs/domain"
	"nebenkosten/internal/interval"
	masterdata "nebenkosten/internal/masterdata/domain"
)

// ResolveTariff picks the single applicable tariff for a window, or reports
// that none matched. When several validity windows intersect the statement
// window the tariff with the latest valid_from wins; ties fall back to the
// highest id, so resolution never depends on retrieval order.
func ResolveTariff(tariffs []costs.Tariff, window interval.Range) (costs.Tariff, bool) {
	var best costs.Tariff
	found := false
	for _, tariff := range tariffs {
		if !tariff.CoversWindow(window.Start, window.End) {
			continue
		}
		if !found {
			best = tariff
			found = true
			continue
		}
		if tariff.ValidFrom.After(best.ValidFrom) ||
			(tariff.ValidFrom.Equal(best.ValidFrom) && tariff.ID > best.ID) {
			best = tariff
		}
	}
	return best, found
}

// ResolveConsumption finds the bracketing readings for a window and returns
// the delta. The start reading is the earliest one at or after 00:00:00 of
// the window start day; the end reading is the latest one at or before
// 23:59:59 of the window end day. A missing boundary reading yields (0,
// false) and the meter is skipped. Negative deltas pass through unclamped:
// a replaced meter shows up as negative consumption until the data is
// corrected upstream.
func ResolveConsumption(readings []masterdata.MeterReading, window interval.Range) (float64, bool) {
	startBoundary := interval.DayStart(window.Start)
	endBoundary := interval.DayEnd(window.End)

	var start, end *masterdata.MeterReading
	for i := range readings {
		r := &readings[i]
		if start == nil && !r.ReadingDate.Before(startBoundary) {
			start = r
		}
		if !r.ReadingDate.After(endBoundary) {
			end = r
		}
	}
	if start == nil || end == nil {
		return 0, false
	}
	return end.Value - start.Value, true
}

// AllocateFixedCost returns one tenant's share of a fixed cost for the
// window: the amount divided evenly across the unit's current tenant count.
// Costs outside the window and units without tenants contribute zero.
func AllocateFixedCost(fc costs.FixedCost, window interval.Range, tenantCount int) float64 {
	if tenantCount <= 0 {
		return 0
	}
	if !fc.CoversWindow(window.Start, window.End) {
		return 0
	}
	return fc.Amount / float64(tenantCount)
}

// ComputeTotal aggregates every cost type's contribution for the tenant over
// the billing window. The computation is pure: the same snapshot and window
// always produce the same total.
func ComputeTotal(snapshot Snapshot, window interval.Range) float64 {
	total := 0.0
	for _, costType := range snapshot.CostTypes {
		if costType.IsConsumptionBased {
			tariff, ok := ResolveTariff(snapshot.TariffsByCostType[costType.ID], window)
			if !ok {
				continue
			}
			for _, meter := range snapshot.Meters {
				consumption, ok := ResolveConsumption(snapshot.ReadingsByMeter[meter.ID], window)
				if !ok {
					continue
				}
				total += consumption * tariff.PricePerUnit
			}
			continue
		}
		for _, fixedCost := range snapshot.FixedCostsByCostType[costType.ID] {
			total += AllocateFixedCost(fixedCost, window, snapshot.UnitTenantCount)
		}
	}
	return total
}

// RoundAmount rounds a monetary value to 2 decimals for display and
// persistence. Internal arithmetic stays in float64.
func RoundAmount(amount float64) float64 {
	scaled := amount * 100
	if scaled >= 0 {
		return float64(int64(scaled+0.5)) / 100
	}
	return float64(int64(scaled-0.5)) / 100
}
