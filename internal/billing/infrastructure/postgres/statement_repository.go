package postgres

import (
	"context"
	"database/sql"
	"errors"

	billing "nebenkosten/internal/billing/domain"
)

// StatementRepository is a Postgres repository for billing statements.
// Statements are append-only; there is no update path.
type StatementRepository struct {
	db *sql.DB
}

// NewStatementRepository constructs a repository.
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// Insert persists a freshly composed statement and fills its id.
func (r *StatementRepository) Insert(ctx context.Context, statement *billing.BillingStatement) error {
	if r == nil || r.db == nil {
		return errors.New("statement repo: nil db")
	}
	if statement == nil {
		return errors.New("statement repo: nil statement")
	}
	return r.db.QueryRowContext(ctx, `
INSERT INTO billing_statements (billing_period_id, tenant_id, total_amount, generated_at, html_content)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		statement.BillingPeriodID, statement.TenantID, statement.TotalAmount,
		statement.GeneratedAt.UTC(), statement.Document,
	).Scan(&statement.ID)
}

// GetByID fetches a statement including its rendered document.
func (r *StatementRepository) GetByID(ctx context.Context, id int64) (*billing.BillingStatement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, billing_period_id, tenant_id, total_amount, generated_at, html_content
FROM billing_statements
WHERE id = $1`, id)

	var statement billing.BillingStatement
	if err := row.Scan(
		&statement.ID,
		&statement.BillingPeriodID,
		&statement.TenantID,
		&statement.TotalAmount,
		&statement.GeneratedAt,
		&statement.Document,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrStatementNotFound
		}
		return nil, err
	}
	statement.GeneratedAt = statement.GeneratedAt.UTC()
	return &statement, nil
}

// List returns all statements without documents, newest first.
func (r *StatementRepository) List(ctx context.Context) ([]billing.BillingStatement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	return r.queryStatements(ctx, `
SELECT id, billing_period_id, tenant_id, total_amount, generated_at
FROM billing_statements
ORDER BY generated_at DESC, id DESC`)
}

// ListByTenant returns one tenant's statements without documents, newest
// first.
func (r *StatementRepository) ListByTenant(ctx context.Context, tenantID int64) ([]billing.BillingStatement, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("statement repo: nil db")
	}
	return r.queryStatements(ctx, `
SELECT id, billing_period_id, tenant_id, total_amount, generated_at
FROM billing_statements
WHERE tenant_id = $1
ORDER BY generated_at DESC, id DESC`, tenantID)
}

// Delete removes a statement by id.
func (r *StatementRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("statement repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM billing_statements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return billing.ErrStatementNotFound
	}
	return nil
}

func (r *StatementRepository) queryStatements(ctx context.Context, query string, args ...any) ([]billing.BillingStatement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []billing.BillingStatement
	for rows.Next() {
		var statement billing.BillingStatement
		if err := rows.Scan(
			&statement.ID,
			&statement.BillingPeriodID,
			&statement.TenantID,
			&statement.TotalAmount,
			&statement.GeneratedAt,
		); err != nil {
			return nil, err
		}
		statement.GeneratedAt = statement.GeneratedAt.UTC()
		result = append(result, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
