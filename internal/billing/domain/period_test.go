package billing

import (
	"errors"
	"testing"
	"time"

	"nebenkosten/internal/interval"
)

func TestBillingPeriodValidate(t *testing.T) {
	valid := BillingPeriod{
		PropertyUnitID: 1,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(p *BillingPeriod)
	}{
		{"missing unit", func(p *BillingPeriod) { p.PropertyUnitID = 0 }},
		{"empty name", func(p *BillingPeriod) { p.Name = "  " }},
		{"zero start", func(p *BillingPeriod) { p.StartDate = time.Time{} }},
		{"end before start", func(p *BillingPeriod) { p.EndDate = date(2023, 12, 31) }},
		{"end equals start", func(p *BillingPeriod) { p.EndDate = p.StartDate }},
	}
	for _, tc := range cases {
		period := valid
		tc.mutate(&period)
		err := period.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestHasOverlap(t *testing.T) {
	existing := []BillingPeriod{
		{ID: 1, PropertyUnitID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 2, 1)},
	}

	overlapping := interval.Range{Start: date(2024, 1, 15), End: date(2024, 2, 15)}
	if !HasOverlap(existing, overlapping, 0) {
		t.Fatal("expected overlap for an intersecting candidate")
	}

	// Touching at the boundary is allowed.
	adjacent := interval.Range{Start: date(2024, 2, 1), End: date(2024, 3, 1)}
	if HasOverlap(existing, adjacent, 0) {
		t.Fatal("expected no overlap for an adjacent candidate")
	}

	before := interval.Range{Start: date(2023, 1, 1), End: date(2023, 12, 31)}
	if HasOverlap(existing, before, 0) {
		t.Fatal("expected no overlap for a disjoint candidate")
	}
}

func TestHasOverlapExcludesUpdatedPeriod(t *testing.T) {
	existing := []BillingPeriod{
		{ID: 1, PropertyUnitID: 1, StartDate: date(2024, 1, 1), EndDate: date(2024, 2, 1)},
		{ID: 2, PropertyUnitID: 1, StartDate: date(2024, 3, 1), EndDate: date(2024, 4, 1)},
	}

	// Shifting period 1 within its own old window only collides with itself.
	candidate := interval.Range{Start: date(2024, 1, 10), End: date(2024, 2, 10)}
	if HasOverlap(existing, candidate, 1) {
		t.Fatal("expected the updated period to be excluded from the check")
	}
	if !HasOverlap(existing, candidate, 0) {
		t.Fatal("expected overlap without exclusion")
	}

	// But colliding with a sibling still fails.
	colliding := interval.Range{Start: date(2024, 2, 15), End: date(2024, 3, 15)}
	if !HasOverlap(existing, colliding, 1) {
		t.Fatal("expected overlap with the sibling period")
	}
}

func TestBillingPeriodUpdateApply(t *testing.T) {
	period := BillingPeriod{
		ID:             1,
		PropertyUnitID: 1,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}

	name := "Abrechnung 2024 korrigiert"
	end := date(2024, 6, 30)
	updated, err := BillingPeriodUpdate{Name: &name, EndDate: &end}.Apply(period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != name || !updated.EndDate.Equal(end) {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.StartDate.Equal(period.StartDate) {
		t.Fatal("untouched field changed")
	}

	badEnd := date(2023, 1, 1)
	if _, err := (BillingPeriodUpdate{EndDate: &badEnd}).Apply(period); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for inverted dates, got %v", err)
	}
}
