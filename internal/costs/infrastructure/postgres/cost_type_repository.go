package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	costs "nebenkosten/internal/costs/domain"
)

// CostTypeRepository is a Postgres repository for cost types.
type CostTypeRepository struct {
	db *sql.DB
}

// NewCostTypeRepository constructs a repository.
func NewCostTypeRepository(db *sql.DB) *CostTypeRepository {
	return &CostTypeRepository{db: db}
}

// Create inserts a new cost type and fills its id and timestamps.
func (r *CostTypeRepository) Create(ctx context.Context, ct *costs.CostType) error {
	if r == nil || r.db == nil {
		return errors.New("cost type repo: nil db")
	}
	if ct == nil {
		return errors.New("cost type repo: nil cost type")
	}
	now := time.Now().UTC()
	ct.CreatedAt = now
	ct.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO cost_types (name, description, is_consumption_based, unit, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		ct.Name, nullableText(ct.Description), ct.IsConsumptionBased,
		nullableText(ct.Unit), ct.CreatedAt, ct.UpdatedAt,
	).Scan(&ct.ID)
}

// GetByID fetches a cost type by id.
func (r *CostTypeRepository) GetByID(ctx context.Context, id int64) (*costs.CostType, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("cost type repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, is_consumption_based, unit, created_at, updated_at
FROM cost_types
WHERE id = $1`, id)
	return scanCostType(row)
}

// List returns all cost types ordered by id.
func (r *CostTypeRepository) List(ctx context.Context) ([]costs.CostType, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("cost type repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, is_consumption_based, unit, created_at, updated_at
FROM cost_types
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []costs.CostType
	for rows.Next() {
		ct, err := scanCostType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update persists a modified cost type.
func (r *CostTypeRepository) Update(ctx context.Context, ct *costs.CostType) error {
	if r == nil || r.db == nil {
		return errors.New("cost type repo: nil db")
	}
	if ct == nil {
		return errors.New("cost type repo: nil cost type")
	}
	ct.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE cost_types
SET name = $1, description = $2, is_consumption_based = $3, unit = $4, updated_at = $5
WHERE id = $6`,
		ct.Name, nullableText(ct.Description), ct.IsConsumptionBased,
		nullableText(ct.Unit), ct.UpdatedAt, ct.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a cost type by id.
func (r *CostTypeRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("cost type repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cost_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCostType(row rowScanner) (*costs.CostType, error) {
	var ct costs.CostType
	var description sql.NullString
	var unit sql.NullString
	if err := row.Scan(
		&ct.ID,
		&ct.Name,
		&description,
		&ct.IsConsumptionBased,
		&unit,
		&ct.CreatedAt,
		&ct.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, costs.ErrNotFound
		}
		return nil, err
	}
	if description.Valid {
		ct.Description = &description.String
	}
	if unit.Valid {
		ct.Unit = &unit.String
	}
	ct.CreatedAt = ct.CreatedAt.UTC()
	ct.UpdatedAt = ct.UpdatedAt.UTC()
	return &ct, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return costs.ErrNotFound
	}
	return nil
}

func nullableText(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
