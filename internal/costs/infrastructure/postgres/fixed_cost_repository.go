package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	costs "nebenkosten/internal/costs/domain"
)

// FixedCostRepository is a Postgres repository for fixed costs.
type FixedCostRepository struct {
	db *sql.DB
}

// NewFixedCostRepository constructs a repository.
func NewFixedCostRepository(db *sql.DB) *FixedCostRepository {
	return &FixedCostRepository{db: db}
}

// Create inserts a new fixed cost and fills its id and timestamps.
func (r *FixedCostRepository) Create(ctx context.Context, fc *costs.FixedCost) error {
	if r == nil || r.db == nil {
		return errors.New("fixed cost repo: nil db")
	}
	if fc == nil {
		return errors.New("fixed cost repo: nil fixed cost")
	}
	now := time.Now().UTC()
	fc.CreatedAt = now
	fc.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO fixed_costs (cost_type_id, amount, billing_period_start, billing_period_end, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		fc.CostTypeID, fc.Amount, fc.PeriodStart.UTC(), fc.PeriodEnd.UTC(),
		fc.CreatedAt, fc.UpdatedAt,
	).Scan(&fc.ID)
}

// GetByID fetches a fixed cost by id.
func (r *FixedCostRepository) GetByID(ctx context.Context, id int64) (*costs.FixedCost, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fixed cost repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, cost_type_id, amount, billing_period_start, billing_period_end, created_at, updated_at
FROM fixed_costs
WHERE id = $1`, id)
	return scanFixedCost(row)
}

// List returns all fixed costs, most recent period first.
func (r *FixedCostRepository) List(ctx context.Context) ([]costs.FixedCost, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fixed cost repo: nil db")
	}
	return r.queryFixedCosts(ctx, `
SELECT id, cost_type_id, amount, billing_period_start, billing_period_end, created_at, updated_at
FROM fixed_costs
ORDER BY billing_period_end DESC, id DESC`)
}

// ListByCostType returns the fixed costs of one cost type, most recent first.
func (r *FixedCostRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.FixedCost, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("fixed cost repo: nil db")
	}
	return r.queryFixedCosts(ctx, `
SELECT id, cost_type_id, amount, billing_period_start, billing_period_end, created_at, updated_at
FROM fixed_costs
WHERE cost_type_id = $1
ORDER BY billing_period_end DESC, id DESC`, costTypeID)
}

// Update persists a modified fixed cost.
func (r *FixedCostRepository) Update(ctx context.Context, fc *costs.FixedCost) error {
	if r == nil || r.db == nil {
		return errors.New("fixed cost repo: nil db")
	}
	if fc == nil {
		return errors.New("fixed cost repo: nil fixed cost")
	}
	fc.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE fixed_costs
SET amount = $1, billing_period_start = $2, billing_period_end = $3, updated_at = $4
WHERE id = $5`,
		fc.Amount, fc.PeriodStart.UTC(), fc.PeriodEnd.UTC(), fc.UpdatedAt, fc.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a fixed cost by id.
func (r *FixedCostRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("fixed cost repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM fixed_costs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *FixedCostRepository) queryFixedCosts(ctx context.Context, query string, args ...any) ([]costs.FixedCost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []costs.FixedCost
	for rows.Next() {
		fc, err := scanFixedCost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanFixedCost(row rowScanner) (*costs.FixedCost, error) {
	var fc costs.FixedCost
	if err := row.Scan(
		&fc.ID,
		&fc.CostTypeID,
		&fc.Amount,
		&fc.PeriodStart,
		&fc.PeriodEnd,
		&fc.CreatedAt,
		&fc.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, costs.ErrNotFound
		}
		return nil, err
	}
	fc.PeriodStart = fc.PeriodStart.UTC()
	fc.PeriodEnd = fc.PeriodEnd.UTC()
	fc.CreatedAt = fc.CreatedAt.UTC()
	fc.UpdatedAt = fc.UpdatedAt.UTC()
	return &fc, nil
}
