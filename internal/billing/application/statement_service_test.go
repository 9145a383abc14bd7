package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	billing "nebenkosten/internal/billing/domain"
	billingmemory "nebenkosten/internal/billing/infrastructure/memory"
	costs "nebenkosten/internal/costs/domain"
	masterdata "nebenkosten/internal/masterdata/domain"
	masterdatamemory "nebenkosten/internal/masterdata/infrastructure/memory"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type stubSnapshotReader struct {
	snapshot *billing.Snapshot
	err      error
}

func (r *stubSnapshotReader) Load(ctx context.Context, tenantID int64) (*billing.Snapshot, error) {
	_ = ctx
	_ = tenantID
	if r.err != nil {
		return nil, r.err
	}
	return r.snapshot, nil
}

type statementFixture struct {
	service    *StatementService
	periods    *billingmemory.PeriodRepository
	statements *billingmemory.StatementRepository
	tenants    *masterdatamemory.TenantRepository
	snapshots  *stubSnapshotReader
	clock      fixedClock
}

func newStatementFixture(t *testing.T) *statementFixture {
	t.Helper()

	kwh := "kWh"
	snapshot := &billing.Snapshot{
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

	fixture := &statementFixture{
		periods:    billingmemory.NewPeriodRepository(),
		statements: billingmemory.NewStatementRepository(),
		tenants:    masterdatamemory.NewTenantRepository(),
		snapshots:  &stubSnapshotReader{snapshot: snapshot},
		clock:      fixedClock{now: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)},
	}

	meta := billing.DocumentMeta{Title: "Nebenkostenabrechnung", Currency: "EUR"}
	service, err := NewStatementService(fixture.periods, fixture.snapshots, fixture.statements, fixture.tenants, meta, fixture.clock)
	if err != nil {
		t.Fatalf("new statement service: %v", err)
	}
	fixture.service = service
	return fixture
}

func (f *statementFixture) createPeriod(t *testing.T) *billing.BillingPeriod {
	t.Helper()
	period := &billing.BillingPeriod{
		PropertyUnitID: 1,
		Name:           "Abrechnung 2024",
		StartDate:      date(2024, 1, 1),
		EndDate:        date(2024, 12, 31),
	}
	if err := f.periods.Create(context.Background(), period); err != nil {
		t.Fatalf("create period: %v", err)
	}
	return period
}

func TestStatementServiceGenerate(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	statement, err := fixture.service.Generate(ctx, period.ID, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if statement.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if statement.BillingPeriodID != period.ID || statement.TenantID != 1 {
		t.Fatalf("wrong references: %+v", statement)
	}
	// 50 kWh at 0.30 plus 60 split between 2 tenants.
	if statement.TotalAmount != 45.0 {
		t.Fatalf("expected total 45.00, got %v", statement.TotalAmount)
	}
	if !statement.GeneratedAt.Equal(fixture.clock.now) {
		t.Fatalf("expected clock time %v, got %v", fixture.clock.now, statement.GeneratedAt)
	}
	if !strings.Contains(statement.Document, "Familie Weber") {
		t.Fatal("expected the rendered document to name the tenant")
	}
}

func TestStatementServiceGenerateIsRepeatable(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	first, err := fixture.service.Generate(ctx, period.ID, 1)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := fixture.service.Generate(ctx, period.ID, 1)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected a fresh statement row per generation")
	}
	if first.TotalAmount != second.TotalAmount {
		t.Fatalf("expected identical totals, got %v and %v", first.TotalAmount, second.TotalAmount)
	}
}

func TestStatementServiceGenerateUnknownPeriod(t *testing.T) {
	fixture := newStatementFixture(t)
	if _, err := fixture.service.Generate(context.Background(), 42, 1); !errors.Is(err, billing.ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
}

func TestStatementServiceGenerateUnknownTenant(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	fixture.snapshots.err = billing.ErrTenantNotFound

	if _, err := fixture.service.Generate(context.Background(), period.ID, 99); !errors.Is(err, billing.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestStatementServiceListOmitsDocuments(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	if _, err := fixture.service.Generate(ctx, period.ID, 1); err != nil {
		t.Fatalf("generate: %v", err)
	}

	listed, err := fixture.service.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(listed))
	}
	if listed[0].Document != "" {
		t.Fatal("expected listings to omit the document")
	}

	byTenant, err := fixture.service.List(ctx, 1)
	if err != nil {
		t.Fatalf("list by tenant: %v", err)
	}
	if len(byTenant) != 1 {
		t.Fatalf("expected 1 statement for tenant 1, got %d", len(byTenant))
	}
	other, err := fixture.service.List(ctx, 2)
	if err != nil {
		t.Fatalf("list by other tenant: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no statements for tenant 2, got %d", len(other))
	}
}

func TestStatementServiceDocument(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	statement, err := fixture.service.Generate(ctx, period.ID, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	document, err := fixture.service.Document(ctx, statement.ID)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !strings.Contains(document, "<html>") {
		t.Fatal("expected HTML document")
	}

	if _, err := fixture.service.Document(ctx, 999); !errors.Is(err, billing.ErrStatementNotFound) {
		t.Fatalf("expected ErrStatementNotFound, got %v", err)
	}
}

func TestStatementServiceDetails(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	tenant := &masterdata.Tenant{Name: "Familie Weber", NumberOfPersons: 2, PropertyUnitID: 1}
	if err := fixture.tenants.Create(ctx, tenant); err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	statement, err := fixture.service.Generate(ctx, period.ID, tenant.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	details, err := fixture.service.Details(ctx, statement.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Statement.ID != statement.ID {
		t.Fatalf("wrong statement: %+v", details.Statement)
	}
	if details.Period.ID != period.ID {
		t.Fatalf("wrong period: %+v", details.Period)
	}
	if details.Tenant.Name != "Familie Weber" {
		t.Fatalf("wrong tenant: %+v", details.Tenant)
	}
	if details.Meta.Currency != "EUR" {
		t.Fatalf("wrong meta: %+v", details.Meta)
	}
}

func TestStatementServiceDelete(t *testing.T) {
	fixture := newStatementFixture(t)
	period := fixture.createPeriod(t)
	ctx := context.Background()

	statement, err := fixture.service.Generate(ctx, period.ID, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := fixture.service.Delete(ctx, statement.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fixture.service.Get(ctx, statement.ID); !errors.Is(err, billing.ErrStatementNotFound) {
		t.Fatalf("expected ErrStatementNotFound after delete, got %v", err)
	}
}
