package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// MeterRepository is a Postgres repository for meters.
type MeterRepository struct {
	db *sql.DB
}

// NewMeterRepository constructs a repository.
func NewMeterRepository(db *sql.DB) *MeterRepository {
	return &MeterRepository{db: db}
}

// Create inserts a new meter and fills its id and timestamps.
func (r *MeterRepository) Create(ctx context.Context, meter *masterdata.Meter) error {
	if r == nil || r.db == nil {
		return errors.New("meter repo: nil db")
	}
	if meter == nil {
		return errors.New("meter repo: nil meter")
	}
	now := time.Now().UTC()
	meter.CreatedAt = now
	meter.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO meters (name, meter_type, unit, assignment_type, property_unit_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`,
		meter.Name, meter.MeterType, meter.Unit, string(meter.Assignment),
		nullableID(meter.PropertyUnitID), meter.CreatedAt, meter.UpdatedAt,
	).Scan(&meter.ID)
}

// GetByID fetches a meter by id.
func (r *MeterRepository) GetByID(ctx context.Context, id int64) (*masterdata.Meter, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("meter repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, meter_type, unit, assignment_type, property_unit_id, created_at, updated_at
FROM meters
WHERE id = $1`, id)
	return scanMeter(row)
}

// List returns all meters ordered by id.
func (r *MeterRepository) List(ctx context.Context) ([]masterdata.Meter, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("meter repo: nil db")
	}
	return r.queryMeters(ctx, `
SELECT id, name, meter_type, unit, assignment_type, property_unit_id, created_at, updated_at
FROM meters
ORDER BY id`)
}

// ListByPropertyUnit returns the meters bound to one property unit. Common
// meters are not included; they have no unit reference.
func (r *MeterRepository) ListByPropertyUnit(ctx context.Context, unitID int64) ([]masterdata.Meter, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("meter repo: nil db")
	}
	return r.queryMeters(ctx, `
SELECT id, name, meter_type, unit, assignment_type, property_unit_id, created_at, updated_at
FROM meters
WHERE property_unit_id = $1 AND assignment_type = $2
ORDER BY id`, unitID, string(masterdata.AssignmentUnit))
}

// Update persists a modified meter.
func (r *MeterRepository) Update(ctx context.Context, meter *masterdata.Meter) error {
	if r == nil || r.db == nil {
		return errors.New("meter repo: nil db")
	}
	if meter == nil {
		return errors.New("meter repo: nil meter")
	}
	meter.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE meters
SET name = $1, meter_type = $2, unit = $3, assignment_type = $4, property_unit_id = $5, updated_at = $6
WHERE id = $7`,
		meter.Name, meter.MeterType, meter.Unit, string(meter.Assignment),
		nullableID(meter.PropertyUnitID), meter.UpdatedAt, meter.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a meter by id.
func (r *MeterRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("meter repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM meters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *MeterRepository) queryMeters(ctx context.Context, query string, args ...any) ([]masterdata.Meter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []masterdata.Meter
	for rows.Next() {
		meter, err := scanMeter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *meter)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMeter(row rowScanner) (*masterdata.Meter, error) {
	var meter masterdata.Meter
	var assignment string
	var unitID sql.NullInt64
	if err := row.Scan(
		&meter.ID,
		&meter.Name,
		&meter.MeterType,
		&meter.Unit,
		&assignment,
		&unitID,
		&meter.CreatedAt,
		&meter.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, masterdata.ErrNotFound
		}
		return nil, err
	}
	meter.Assignment = masterdata.MeterAssignment(assignment)
	if unitID.Valid {
		meter.PropertyUnitID = &unitID.Int64
	}
	meter.CreatedAt = meter.CreatedAt.UTC()
	meter.UpdatedAt = meter.UpdatedAt.UTC()
	return &meter, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
