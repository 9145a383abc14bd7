package application

import (
	"context"
	"errors"
	"testing"
	"time"

	billing "nebenkosten/internal/billing/domain"
	billingmemory "nebenkosten/internal/billing/infrastructure/memory"
	masterdata "nebenkosten/internal/masterdata/domain"
	masterdatamemory "nebenkosten/internal/masterdata/infrastructure/memory"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newPeriodFixture(t *testing.T) (*PeriodService, *masterdatamemory.PropertyUnitRepository) {
	t.Helper()
	periods := billingmemory.NewPeriodRepository()
	units := masterdatamemory.NewPropertyUnitRepository()
	service, err := NewPeriodService(periods, units)
	if err != nil {
		t.Fatalf("new period service: %v", err)
	}
	return service, units
}

func createUnit(t *testing.T, units *masterdatamemory.PropertyUnitRepository) int64 {
	t.Helper()
	unit := &masterdata.PropertyUnit{Name: "EG links", LivingAreaM2: 72.5}
	if err := units.Create(context.Background(), unit); err != nil {
		t.Fatalf("create unit: %v", err)
	}
	return unit.ID
}

func TestPeriodServiceCreate(t *testing.T) {
	service, units := newPeriodFixture(t)
	unitID := createUnit(t, units)
	ctx := context.Background()

	period := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	if err := service.Create(ctx, period); err != nil {
		t.Fatalf("create: %v", err)
	}
	if period.ID == 0 {
		t.Fatal("expected an assigned id")
	}
}

func TestPeriodServiceCreateUnknownUnit(t *testing.T) {
	service, _ := newPeriodFixture(t)

	period := &billing.BillingPeriod{
		PropertyUnitID: 99,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	err := service.Create(context.Background(), period)
	if !errors.Is(err, billing.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for a missing unit, got %v", err)
	}
}

func TestPeriodServiceCreateRejectsOverlap(t *testing.T) {
	service, units := newPeriodFixture(t)
	unitID := createUnit(t, units)
	ctx := context.Background()

	first := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Januar",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 2, 1),
	}
	if err := service.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	overlapping := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Mitte Januar",
		StartDate:      date(2024, 1, 15),
		EndDate:        date(2024, 2, 15),
	}
	if err := service.Create(ctx, overlapping); !errors.Is(err, billing.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	// Touching at the boundary is fine.
	adjacent := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Februar",
		StartDate:      date(2024, 2, 1),
		EndDate:        date(2024, 3, 1),
	}
	if err := service.Create(ctx, adjacent); err != nil {
		t.Fatalf("create adjacent: %v", err)
	}
}

func TestPeriodServiceCreateAllowsOverlapAcrossUnits(t *testing.T) {
	service, units := newPeriodFixture(t)
	firstUnit := createUnit(t, units)
	secondUnit := createUnit(t, units)
	ctx := context.Background()

	window := billing.BillingPeriod{
		Name:      "Abrechnung 2024",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 12, 31),
	}

	a := window
	a.PropertyUnitID = firstUnit
	if err := service.Create(ctx, &a); err != nil {
		t.Fatalf("create for first unit: %v", err)
	}
	b := window
	b.PropertyUnitID = secondUnit
	if err := service.Create(ctx, &b); err != nil {
		t.Fatalf("expected identical window on another unit to pass, got %v", err)
	}
}

func TestPeriodServiceUpdateOverlapGuard(t *testing.T) {
	service, units := newPeriodFixture(t)
	unitID := createUnit(t, units)
	ctx := context.Background()

	first := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Q1",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 4, 1),
	}
	second := &billing.BillingPeriod{
		PropertyUnitID: unitID,
		Name:           "Q2",
		StartDate:      date(2024, 4, 1),
		EndDate:        date(2024, 7, 1),
	}
	if err := service.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := service.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	// Shrinking a period inside its own old window passes the guard.
	end := date(2024, 3, 1)
	updated, err := service.Update(ctx, first.ID, billing.BillingPeriodUpdate{EndDate: &end})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.EndDate.Equal(end) {
		t.Fatalf("expected end date %v, got %v", end, updated.EndDate)
	}

	// Extending into the sibling is rejected.
	badEnd := date(2024, 5, 1)
	if _, err := service.Update(ctx, first.ID, billing.BillingPeriodUpdate{EndDate: &badEnd}); !errors.Is(err, billing.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestPeriodServiceUpdateNotFound(t *testing.T) {
	service, _ := newPeriodFixture(t)
	name := "Neu"
	if _, err := service.Update(context.Background(), 42, billing.BillingPeriodUpdate{Name: &name}); !errors.Is(err, billing.ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
}
