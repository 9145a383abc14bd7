package billing

import "context"

// PeriodRepository persists billing periods.
type PeriodRepository interface {
	Create(ctx context.Context, period *BillingPeriod) error
	GetByID(ctx context.Context, id int64) (*BillingPeriod, error)
	List(ctx context.Context) ([]BillingPeriod, error)
	ListByPropertyUnit(ctx context.Context, unitID int64) ([]BillingPeriod, error)
	Update(ctx context.Context, period *BillingPeriod) error
	Delete(ctx context.Context, id int64) error
}

// StatementRepository persists billing statements. Statements never change
// after insertion.
type StatementRepository interface {
	Insert(ctx context.Context, statement *BillingStatement) error
	GetByID(ctx context.Context, id int64) (*BillingStatement, error)
	List(ctx context.Context) ([]BillingStatement, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]BillingStatement, error)
	Delete(ctx context.Context, id int64) error
}

// SnapshotReader loads the aggregation input for one tenant.
type SnapshotReader interface {
	Load(ctx context.Context, tenantID int64) (*Snapshot, error)
}
