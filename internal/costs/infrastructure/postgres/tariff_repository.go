package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	costs "nebenkosten/internal/costs/domain"
)

// TariffRepository is a Postgres repository for tariffs.
type TariffRepository struct {
	db *sql.DB
}

// NewTariffRepository constructs a repository.
func NewTariffRepository(db *sql.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

// Create inserts a new tariff and fills its id and timestamps.
func (r *TariffRepository) Create(ctx context.Context, tariff *costs.Tariff) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	if tariff == nil {
		return errors.New("tariff repo: nil tariff")
	}
	now := time.Now().UTC()
	tariff.CreatedAt = now
	tariff.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO tariffs (cost_type_id, price_per_unit, valid_from, valid_to, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		tariff.CostTypeID, tariff.PricePerUnit, tariff.ValidFrom.UTC(),
		nullableDate(tariff.ValidTo), tariff.CreatedAt, tariff.UpdatedAt,
	).Scan(&tariff.ID)
}

// GetByID fetches a tariff by id.
func (r *TariffRepository) GetByID(ctx context.Context, id int64) (*costs.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, cost_type_id, price_per_unit, valid_from, valid_to, created_at, updated_at
FROM tariffs
WHERE id = $1`, id)
	return scanTariff(row)
}

// List returns all tariffs, newest validity first.
func (r *TariffRepository) List(ctx context.Context) ([]costs.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff repo: nil db")
	}
	return r.queryTariffs(ctx, `
SELECT id, cost_type_id, price_per_unit, valid_from, valid_to, created_at, updated_at
FROM tariffs
ORDER BY valid_from DESC, id DESC`)
}

// ListByCostType returns the tariffs of one cost type, newest validity first.
func (r *TariffRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff repo: nil db")
	}
	return r.queryTariffs(ctx, `
SELECT id, cost_type_id, price_per_unit, valid_from, valid_to, created_at, updated_at
FROM tariffs
WHERE cost_type_id = $1
ORDER BY valid_from DESC, id DESC`, costTypeID)
}

// Update persists a modified tariff.
func (r *TariffRepository) Update(ctx context.Context, tariff *costs.Tariff) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	if tariff == nil {
		return errors.New("tariff repo: nil tariff")
	}
	tariff.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE tariffs
SET price_per_unit = $1, valid_from = $2, valid_to = $3, updated_at = $4
WHERE id = $5`,
		tariff.PricePerUnit, tariff.ValidFrom.UTC(), nullableDate(tariff.ValidTo),
		tariff.UpdatedAt, tariff.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a tariff by id.
func (r *TariffRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tariffs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *TariffRepository) queryTariffs(ctx context.Context, query string, args ...any) ([]costs.Tariff, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []costs.Tariff
	for rows.Next() {
		tariff, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tariff)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTariff(row rowScanner) (*costs.Tariff, error) {
	var tariff costs.Tariff
	var validTo sql.NullTime
	if err := row.Scan(
		&tariff.ID,
		&tariff.CostTypeID,
		&tariff.PricePerUnit,
		&tariff.ValidFrom,
		&validTo,
		&tariff.CreatedAt,
		&tariff.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, costs.ErrNotFound
		}
		return nil, err
	}
	if validTo.Valid {
		t := validTo.Time.UTC()
		tariff.ValidTo = &t
	}
	tariff.ValidFrom = tariff.ValidFrom.UTC()
	tariff.CreatedAt = tariff.CreatedAt.UTC()
	tariff.UpdatedAt = tariff.UpdatedAt.UTC()
	return &tariff, nil
}

func nullableDate(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}
