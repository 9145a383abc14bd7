package application

import (
	"context"
	"errors"
	"testing"
	"time"

	costs "nebenkosten/internal/costs/domain"
	"nebenkosten/internal/costs/infrastructure/memory"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTariffFixture(t *testing.T) (*TariffService, *memory.CostTypeRepository) {
	t.Helper()
	tariffs := memory.NewTariffRepository()
	costTypes := memory.NewCostTypeRepository()
	service, err := NewTariffService(tariffs, costTypes)
	if err != nil {
		t.Fatalf("new tariff service: %v", err)
	}
	return service, costTypes
}

func createCostType(t *testing.T, costTypes *memory.CostTypeRepository, name string, consumptionBased bool) int64 {
	t.Helper()
	ct := &costs.CostType{Name: name, IsConsumptionBased: consumptionBased}
	if consumptionBased {
		unit := "kWh"
		ct.Unit = &unit
	}
	if err := costTypes.Create(context.Background(), ct); err != nil {
		t.Fatalf("create cost type: %v", err)
	}
	return ct.ID
}

func TestTariffServiceCreate(t *testing.T) {
	service, costTypes := newTariffFixture(t)
	costTypeID := createCostType(t, costTypes, "Strom", true)

	tariff := &costs.Tariff{CostTypeID: costTypeID, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)}
	if err := service.Create(context.Background(), tariff); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tariff.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestTariffServiceCreateUnknownCostType(t *testing.T) {
	service, _ := newTariffFixture(t)
	tariff := &costs.Tariff{CostTypeID: 99, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)}
	if err := service.Create(context.Background(), tariff); !errors.Is(err, costs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a missing cost type, got %v", err)
	}
}

func TestTariffServiceCreateRejectsFixedCostType(t *testing.T) {
	service, costTypes := newTariffFixture(t)
	costTypeID := createCostType(t, costTypes, "Grundsteuer", false)

	tariff := &costs.Tariff{CostTypeID: costTypeID, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)}
	if err := service.Create(context.Background(), tariff); !errors.Is(err, costs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a fixed cost type, got %v", err)
	}
}

func TestTariffServiceCreateRejectsInvalidPrice(t *testing.T) {
	service, costTypes := newTariffFixture(t)
	costTypeID := createCostType(t, costTypes, "Strom", true)

	tariff := &costs.Tariff{CostTypeID: costTypeID, PricePerUnit: 0, ValidFrom: date(2024, 1, 1)}
	if err := service.Create(context.Background(), tariff); !errors.Is(err, costs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero price, got %v", err)
	}
}

func TestTariffServiceListByCostType(t *testing.T) {
	service, costTypes := newTariffFixture(t)
	strom := createCostType(t, costTypes, "Strom", true)
	wasser := createCostType(t, costTypes, "Wasser", true)
	ctx := context.Background()

	for _, tariff := range []*costs.Tariff{
		{CostTypeID: strom, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)},
		{CostTypeID: strom, PricePerUnit: 0.35, ValidFrom: date(2024, 7, 1)},
		{CostTypeID: wasser, PricePerUnit: 2.10, ValidFrom: date(2024, 1, 1)},
	} {
		if err := service.Create(ctx, tariff); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := service.List(ctx, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tariffs, got %d", len(all))
	}

	filtered, err := service.List(ctx, strom)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 tariffs for cost type %d, got %d", strom, len(filtered))
	}
	// Newest validity first.
	if !filtered[0].ValidFrom.After(filtered[1].ValidFrom) {
		t.Fatalf("expected descending valid_from, got %v then %v", filtered[0].ValidFrom, filtered[1].ValidFrom)
	}
}

func TestTariffServiceUpdateRejectsInvertedValidity(t *testing.T) {
	service, costTypes := newTariffFixture(t)
	costTypeID := createCostType(t, costTypes, "Strom", true)
	ctx := context.Background()

	tariff := &costs.Tariff{CostTypeID: costTypeID, PricePerUnit: 0.30, ValidFrom: date(2024, 1, 1)}
	if err := service.Create(ctx, tariff); err != nil {
		t.Fatalf("create: %v", err)
	}

	badTo := date(2023, 1, 1)
	if _, err := service.Update(ctx, tariff.ID, costs.TariffUpdate{ValidTo: &badTo}); !errors.Is(err, costs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for valid_to before valid_from, got %v", err)
	}
}
