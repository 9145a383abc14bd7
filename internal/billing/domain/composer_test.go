package billing

import (
	"strings"
	"testing"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

func TestComposeStatement(t *testing.T) {
	period := BillingPeriod{
		ID:             3,
		PropertyUnitID: 1,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	tenant := masterdata.Tenant{ID: 5, Name: "Familie Weber", NumberOfPersons: 2, PropertyUnitID: 1}
	unit := masterdata.PropertyUnit{ID: 1, Name: "EG links", LivingAreaM2: 72.5}
	meta := DocumentMeta{Title: "Nebenkostenabrechnung", LandlordName: "Hausverwaltung Krause", Currency: "EUR"}
	now := time.Date(2025, 1, 10, 14, 30, 45, 987654321, time.UTC)

	statement, err := ComposeStatement(period, tenant, unit, 45.004, meta, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if statement.BillingPeriodID != 3 || statement.TenantID != 5 {
		t.Fatalf("wrong references: %+v", statement)
	}
	if statement.TotalAmount != 45.0 {
		t.Fatalf("expected rounded total 45.00, got %v", statement.TotalAmount)
	}
	want := time.Date(2025, 1, 10, 14, 30, 45, 0, time.UTC)
	if !statement.GeneratedAt.Equal(want) {
		t.Fatalf("expected second-precision UTC timestamp %v, got %v", want, statement.GeneratedAt)
	}

	for _, fragment := range []string{
		"Familie Weber",
		"Hausverwaltung Krause",
		"Personen:</strong> 2",
		"72.5",
		"2024-01-01",
		"2024-12-31",
		"Gesamtbetrag: 45.00 EUR",
	} {
		if !strings.Contains(statement.Document, fragment) {
			t.Errorf("document missing %q", fragment)
		}
	}
}

func TestComposeStatementDefaults(t *testing.T) {
	period := BillingPeriod{
		ID:             1,
		PropertyUnitID: 1,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	tenant := masterdata.Tenant{ID: 1, Name: "Mustermann", NumberOfPersons: 1, PropertyUnitID: 1}
	unit := masterdata.PropertyUnit{ID: 1, Name: "OG rechts", LivingAreaM2: 50}

	statement, err := ComposeStatement(period, tenant, unit, 12.3, DocumentMeta{}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(statement.Document, "Nebenkostenabrechnung") {
		t.Error("expected default title in document")
	}
	if !strings.Contains(statement.Document, "12.30 EUR") {
		t.Error("expected default currency in document")
	}
}
