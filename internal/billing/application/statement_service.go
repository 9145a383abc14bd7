package application

import (
	"context"
	"errors"
	"time"

	billing "nebenkosten/internal/billing/domain"
	masterdata "nebenkosten/internal/masterdata/domain"
	"nebenkosten/internal/observability/metrics"
)

// Clock supplies the generation timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// StatementService generates and serves billing statements. Generation is
// at-least-once: a retried request after a lost response simply produces a
// second identical statement row.
type StatementService struct {
	periods    billing.PeriodRepository
	snapshots  billing.SnapshotReader
	statements billing.StatementRepository
	tenants    masterdata.TenantRepository
	meta       billing.DocumentMeta
	clock      Clock
}

// NewStatementService constructs a statement service.
func NewStatementService(
	periods billing.PeriodRepository,
	snapshots billing.SnapshotReader,
	statements billing.StatementRepository,
	tenants masterdata.TenantRepository,
	meta billing.DocumentMeta,
	clock Clock,
) (*StatementService, error) {
	if periods == nil {
		return nil, errors.New("statement service: nil period repository")
	}
	if snapshots == nil {
		return nil, errors.New("statement service: nil snapshot reader")
	}
	if statements == nil {
		return nil, errors.New("statement service: nil statement repository")
	}
	if tenants == nil {
		return nil, errors.New("statement service: nil tenant repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &StatementService{
		periods:    periods,
		snapshots:  snapshots,
		statements: statements,
		tenants:    tenants,
		meta:       meta,
		clock:      clock,
	}, nil
}

// Generate computes one tenant's total for a billing period, renders the
// statement document and persists a new statement row.
func (s *StatementService) Generate(ctx context.Context, periodID, tenantID int64) (*billing.BillingStatement, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementGenerate(result, time.Since(start))
	}()

	period, err := s.periods.GetByID(ctx, periodID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	snapshot, err := s.snapshots.Load(ctx, tenantID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	total := billing.ComputeTotal(*snapshot, period.Window())
	statement, err := billing.ComposeStatement(*period, snapshot.Tenant, snapshot.Unit, total, s.meta, s.clock.Now())
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	if err := s.statements.Insert(ctx, &statement); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return &statement, nil
}

// Get returns one statement including its document.
func (s *StatementService) Get(ctx context.Context, id int64) (*billing.BillingStatement, error) {
	return s.statements.GetByID(ctx, id)
}

// List returns all statements, or one tenant's when tenantID > 0. Documents
// are omitted from listings.
func (s *StatementService) List(ctx context.Context, tenantID int64) ([]billing.BillingStatement, error) {
	if tenantID > 0 {
		return s.statements.ListByTenant(ctx, tenantID)
	}
	return s.statements.List(ctx)
}

// Document returns a statement's rendered HTML.
func (s *StatementService) Document(ctx context.Context, id int64) (string, error) {
	statement, err := s.statements.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return statement.Document, nil
}

// StatementDetails bundles a statement with its period and tenant for the
// export renderers.
type StatementDetails struct {
	Statement billing.BillingStatement
	Period    billing.BillingPeriod
	Tenant    masterdata.Tenant
	Meta      billing.DocumentMeta
}

// Details loads a statement together with its period and tenant.
func (s *StatementService) Details(ctx context.Context, id int64) (*StatementDetails, error) {
	statement, err := s.statements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	period, err := s.periods.GetByID(ctx, statement.BillingPeriodID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenants.GetByID(ctx, statement.TenantID)
	if err != nil {
		if errors.Is(err, masterdata.ErrNotFound) {
			return nil, billing.ErrTenantNotFound
		}
		return nil, err
	}
	return &StatementDetails{
		Statement: *statement,
		Period:    *period,
		Tenant:    *tenant,
		Meta:      s.meta,
	}, nil
}

// Delete removes a statement.
func (s *StatementService) Delete(ctx context.Context, id int64) error {
	return s.statements.Delete(ctx, id)
}
