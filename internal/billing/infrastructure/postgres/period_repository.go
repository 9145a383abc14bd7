package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	billing "nebenkosten/internal/billing/domain"
)

// PeriodRepository is a Postgres repository for billing periods.
type PeriodRepository struct {
	db *sql.DB
}

// NewPeriodRepository constructs a repository.
func NewPeriodRepository(db *sql.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// Create inserts a new billing period and fills its id and timestamps.
func (r *PeriodRepository) Create(ctx context.Context, period *billing.BillingPeriod) error {
	if r == nil || r.db == nil {
		return errors.New("period repo: nil db")
	}
	if period == nil {
		return errors.New("period repo: nil period")
	}
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO billing_periods (property_unit_id, start_date, end_date, name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		period.PropertyUnitID, period.StartDate.UTC(), period.EndDate.UTC(),
		period.Name, period.CreatedAt, period.UpdatedAt,
	).Scan(&period.ID)
}

// GetByID fetches a billing period by id.
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*billing.BillingPeriod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("period repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, property_unit_id, start_date, end_date, name, created_at, updated_at
FROM billing_periods
WHERE id = $1`, id)
	return scanPeriod(row)
}

// List returns all billing periods, newest start first.
func (r *PeriodRepository) List(ctx context.Context) ([]billing.BillingPeriod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("period repo: nil db")
	}
	return r.queryPeriods(ctx, `
SELECT id, property_unit_id, start_date, end_date, name, created_at, updated_at
FROM billing_periods
ORDER BY start_date DESC, id DESC`)
}

// ListByPropertyUnit returns the periods of one property unit. The overlap
// guard runs against this set.
func (r *PeriodRepository) ListByPropertyUnit(ctx context.Context, unitID int64) ([]billing.BillingPeriod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("period repo: nil db")
	}
	return r.queryPeriods(ctx, `
SELECT id, property_unit_id, start_date, end_date, name, created_at, updated_at
FROM billing_periods
WHERE property_unit_id = $1
ORDER BY start_date ASC, id ASC`, unitID)
}

// Update persists a modified billing period.
func (r *PeriodRepository) Update(ctx context.Context, period *billing.BillingPeriod) error {
	if r == nil || r.db == nil {
		return errors.New("period repo: nil db")
	}
	if period == nil {
		return errors.New("period repo: nil period")
	}
	period.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE billing_periods
SET property_unit_id = $1, start_date = $2, end_date = $3, name = $4, updated_at = $5
WHERE id = $6`,
		period.PropertyUnitID, period.StartDate.UTC(), period.EndDate.UTC(),
		period.Name, period.UpdatedAt, period.ID)
	if err != nil {
		return err
	}
	return requirePeriodAffected(res)
}

// Delete removes a billing period by id.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("period repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM billing_periods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requirePeriodAffected(res)
}

func (r *PeriodRepository) queryPeriods(ctx context.Context, query string, args ...any) ([]billing.BillingPeriod, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []billing.BillingPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPeriod(row rowScanner) (*billing.BillingPeriod, error) {
	var period billing.BillingPeriod
	if err := row.Scan(
		&period.ID,
		&period.PropertyUnitID,
		&period.StartDate,
		&period.EndDate,
		&period.Name,
		&period.CreatedAt,
		&period.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrPeriodNotFound
		}
		return nil, err
	}
	period.StartDate = period.StartDate.UTC()
	period.EndDate = period.EndDate.UTC()
	period.CreatedAt = period.CreatedAt.UTC()
	period.UpdatedAt = period.UpdatedAt.UTC()
	return &period, nil
}

func requirePeriodAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return billing.ErrPeriodNotFound
	}
	return nil
}
