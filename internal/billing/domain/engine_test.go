package billing

import (
	"math"
	"testing"
	"time"

	costs "nebenkosten/internal/costs/domain"
	"nebenkosten/internal/interval"
	masterdata "nebenkosten/internal/masterdata/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveTariffNoMatch(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	tariffs := []costs.Tariff{
		{ID: 1, CostTypeID: 1, PricePerUnit: 0.25, ValidFrom: date(2025, 1, 1)},
	}
	if _, ok := ResolveTariff(tariffs, window); ok {
		t.Fatal("expected no tariff to match a window before valid_from")
	}
	if _, ok := ResolveTariff(nil, window); ok {
		t.Fatal("expected no tariff from empty slice")
	}
}

func TestResolveTariffClosedValidity(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	expired := costs.Tariff{ID: 1, CostTypeID: 1, PricePerUnit: 0.20, ValidFrom: date(2023, 1, 1), ValidTo: datePtr(2023, 12, 31)}
	if _, ok := ResolveTariff([]costs.Tariff{expired}, window); ok {
		t.Fatal("expected tariff expired before the window to be skipped")
	}

	// valid_to on the window start day still counts.
	touching := costs.Tariff{ID: 2, CostTypeID: 1, PricePerUnit: 0.20, ValidFrom: date(2023, 1, 1), ValidTo: datePtr(2024, 1, 1)}
	got, ok := ResolveTariff([]costs.Tariff{touching}, window)
	if !ok || got.ID != 2 {
		t.Fatalf("expected touching tariff to match, got ok=%v id=%d", ok, got.ID)
	}
}

func TestResolveTariffLatestValidFromWins(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	tariffs := []costs.Tariff{
		{ID: 1, CostTypeID: 1, PricePerUnit: 0.20, ValidFrom: date(2023, 1, 1)},
		{ID: 2, CostTypeID: 1, PricePerUnit: 0.30, ValidFrom: date(2024, 6, 1)},
		{ID: 3, CostTypeID: 1, PricePerUnit: 0.25, ValidFrom: date(2024, 3, 1)},
	}
	got, ok := ResolveTariff(tariffs, window)
	if !ok {
		t.Fatal("expected a tariff")
	}
	if got.ID != 2 {
		t.Fatalf("expected tariff 2 with the latest valid_from, got %d", got.ID)
	}
}

func TestResolveTariffTieBreaksOnID(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	tariffs := []costs.Tariff{
		{ID: 7, CostTypeID: 1, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)},
		{ID: 4, CostTypeID: 1, PricePerUnit: 0.20, ValidFrom: date(2024, 1, 1)},
	}
	got, ok := ResolveTariff(tariffs, window)
	if !ok || got.ID != 7 {
		t.Fatalf("expected tariff 7 on equal valid_from, got ok=%v id=%d", ok, got.ID)
	}

	// Same winner regardless of slice order.
	tariffs[0], tariffs[1] = tariffs[1], tariffs[0]
	got, ok = ResolveTariff(tariffs, window)
	if !ok || got.ID != 7 {
		t.Fatalf("expected tariff 7 after reordering, got ok=%v id=%d", ok, got.ID)
	}
}

func TestResolveConsumption(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	readings := []masterdata.MeterReading{
		{ID: 1, MeterID: 1, ReadingDate: date(2024, 1, 1), Value: 100},
		{ID: 2, MeterID: 1, ReadingDate: date(2024, 6, 15), Value: 130},
		{ID: 3, MeterID: 1, ReadingDate: date(2024, 12, 31), Value: 150},
	}
	got, ok := ResolveConsumption(readings, window)
	if !ok {
		t.Fatal("expected bracketing readings to be found")
	}
	if !approxEqual(got, 50) {
		t.Fatalf("expected consumption 50, got %v", got)
	}
}

func TestResolveConsumptionMissingBoundary(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	// All readings before the window start: no start boundary.
	early := []masterdata.MeterReading{
		{ID: 1, MeterID: 1, ReadingDate: date(2023, 12, 1), Value: 90},
	}
	if _, ok := ResolveConsumption(early, window); ok {
		t.Fatal("expected no consumption without a start reading")
	}

	// All readings after the window end: no end boundary.
	late := []masterdata.MeterReading{
		{ID: 1, MeterID: 1, ReadingDate: date(2025, 1, 2), Value: 200},
	}
	if _, ok := ResolveConsumption(late, window); ok {
		t.Fatal("expected no consumption without an end reading")
	}

	if _, ok := ResolveConsumption(nil, window); ok {
		t.Fatal("expected no consumption from empty readings")
	}
}

func TestResolveConsumptionNegativeDeltaPassesThrough(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	readings := []masterdata.MeterReading{
		{ID: 1, MeterID: 1, ReadingDate: date(2024, 1, 1), Value: 500},
		{ID: 2, MeterID: 1, ReadingDate: date(2024, 12, 1), Value: 20},
	}
	got, ok := ResolveConsumption(readings, window)
	if !ok {
		t.Fatal("expected bracketing readings to be found")
	}
	if !approxEqual(got, -480) {
		t.Fatalf("expected negative delta -480, got %v", got)
	}
}

func TestAllocateFixedCost(t *testing.T) {
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}
	fc := costs.FixedCost{ID: 1, CostTypeID: 2, Amount: 60, PeriodStart: date(2024, 1, 1), PeriodEnd: date(2024, 12, 31)}

	if got := AllocateFixedCost(fc, window, 2); !approxEqual(got, 30) {
		t.Fatalf("expected 30 for two tenants, got %v", got)
	}
	if got := AllocateFixedCost(fc, window, 0); got != 0 {
		t.Fatalf("expected 0 for an empty unit, got %v", got)
	}

	outside := costs.FixedCost{ID: 2, CostTypeID: 2, Amount: 60, PeriodStart: date(2023, 1, 1), PeriodEnd: date(2023, 12, 31)}
	if got := AllocateFixedCost(outside, window, 2); got != 0 {
		t.Fatalf("expected 0 for a cost outside the window, got %v", got)
	}

	// Inclusive matching: a cost ending on the window start day counts.
	touching := costs.FixedCost{ID: 3, CostTypeID: 2, Amount: 60, PeriodStart: date(2023, 6, 1), PeriodEnd: date(2024, 1, 1)}
	if got := AllocateFixedCost(touching, window, 2); !approxEqual(got, 30) {
		t.Fatalf("expected 30 for a touching cost, got %v", got)
	}
}

func testSnapshot() Snapshot {
	kwh := "kWh"
	return Snapshot{
		Unit:            masterdata.PropertyUnit{ID: 1, Name: "EG links", LivingAreaM2: 72.5},
		Tenant:          masterdata.Tenant{ID: 1, Name: "Familie Weber", NumberOfPersons: 2, PropertyUnitID: 1},
		UnitTenantCount: 2,
		Meters: []masterdata.Meter{
			{ID: 1, Name: "Strom EG", MeterType: "electricity", Unit: "kWh"},
		},
		ReadingsByMeter: map[int64][]masterdata.MeterReading{
			1: {
				{ID: 1, MeterID: 1, ReadingDate: date(2024, 1, 1), Value: 100},
				{ID: 2, MeterID: 1, ReadingDate: date(2024, 12, 31), Value: 150},
			},
		},
		CostTypes: []costs.CostType{
			{ID: 1, Name: "Strom", IsConsumptionBased: true, Unit: &kwh},
			{ID: 2, Name: "Grundsteuer", IsConsumptionBased: false},
		},
		TariffsByCostType: map[int64][]costs.Tariff{
			1: {{ID: 1, CostTypeID: 1, PricePerUnit: 0.30, ValidFrom: date(2023, 1, 1)}},
		},
		FixedCostsByCostType: map[int64][]costs.FixedCost{
			2: {{ID: 1, CostTypeID: 2, Amount: 60, PeriodStart: date(2024, 1, 1), PeriodEnd: date(2024, 12, 31)}},
		},
	}
}

func TestComputeTotal(t *testing.T) {
	snapshot := testSnapshot()
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	// 50 kWh at 0.30 plus 60 split between 2 tenants.
	got := ComputeTotal(snapshot, window)
	if !approxEqual(got, 45) {
		t.Fatalf("expected total 45, got %v", got)
	}
}

func TestComputeTotalSkipsCostTypeWithoutTariff(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.TariffsByCostType = nil
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	got := ComputeTotal(snapshot, window)
	if !approxEqual(got, 30) {
		t.Fatalf("expected only the fixed cost share 30, got %v", got)
	}
}

func TestComputeTotalSkipsMeterWithoutBoundaryReadings(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.ReadingsByMeter = map[int64][]masterdata.MeterReading{
		1: {{ID: 1, MeterID: 1, ReadingDate: date(2024, 6, 1), Value: 120}},
	}
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	got := ComputeTotal(snapshot, window)
	if !approxEqual(got, 30) {
		t.Fatalf("expected only the fixed cost share 30, got %v", got)
	}
}

func TestComputeTotalIsDeterministic(t *testing.T) {
	snapshot := testSnapshot()
	window := interval.Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	first := ComputeTotal(snapshot, window)
	for i := 0; i < 10; i++ {
		if got := ComputeTotal(snapshot, window); got != first {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}

func TestRoundAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{45, 45},
		{19.99, 19.99},
		{0.125, 0.13},
		{-0.125, -0.13},
		{3.14159, 3.14},
	}
	for _, tc := range cases {
		if got := RoundAmount(tc.in); got != tc.want {
			t.Errorf("RoundAmount(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
