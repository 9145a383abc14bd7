package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// PropertyUnitRepository is a Postgres repository for property units.
type PropertyUnitRepository struct {
	db *sql.DB
}

// NewPropertyUnitRepository constructs a repository.
func NewPropertyUnitRepository(db *sql.DB) *PropertyUnitRepository {
	return &PropertyUnitRepository{db: db}
}

// Create inserts a new unit and fills its id and timestamps.
func (r *PropertyUnitRepository) Create(ctx context.Context, unit *masterdata.PropertyUnit) error {
	if r == nil || r.db == nil {
		return errors.New("unit repo: nil db")
	}
	if unit == nil {
		return errors.New("unit repo: nil unit")
	}
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO property_units (name, living_area_m2, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`,
		unit.Name, unit.LivingAreaM2, unit.CreatedAt, unit.UpdatedAt,
	).Scan(&unit.ID)
}

// GetByID fetches a unit by id.
func (r *PropertyUnitRepository) GetByID(ctx context.Context, id int64) (*masterdata.PropertyUnit, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("unit repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, living_area_m2, created_at, updated_at
FROM property_units
WHERE id = $1`, id)

	var unit masterdata.PropertyUnit
	if err := row.Scan(&unit.ID, &unit.Name, &unit.LivingAreaM2, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, masterdata.ErrNotFound
		}
		return nil, err
	}
	unit.CreatedAt = unit.CreatedAt.UTC()
	unit.UpdatedAt = unit.UpdatedAt.UTC()
	return &unit, nil
}

// List returns all units ordered by id.
func (r *PropertyUnitRepository) List(ctx context.Context) ([]masterdata.PropertyUnit, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("unit repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, living_area_m2, created_at, updated_at
FROM property_units
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []masterdata.PropertyUnit
	for rows.Next() {
		var unit masterdata.PropertyUnit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.LivingAreaM2, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		unit.CreatedAt = unit.CreatedAt.UTC()
		unit.UpdatedAt = unit.UpdatedAt.UTC()
		result = append(result, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update persists a modified unit.
func (r *PropertyUnitRepository) Update(ctx context.Context, unit *masterdata.PropertyUnit) error {
	if r == nil || r.db == nil {
		return errors.New("unit repo: nil db")
	}
	if unit == nil {
		return errors.New("unit repo: nil unit")
	}
	unit.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE property_units
SET name = $1, living_area_m2 = $2, updated_at = $3
WHERE id = $4`, unit.Name, unit.LivingAreaM2, unit.UpdatedAt, unit.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a unit by id.
func (r *PropertyUnitRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("unit repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM property_units WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return masterdata.ErrNotFound
	}
	return nil
}
