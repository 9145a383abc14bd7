package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// ReadingRepository is a Postgres repository for meter readings.
type ReadingRepository struct {
	db *sql.DB
}

// NewReadingRepository constructs a repository.
func NewReadingRepository(db *sql.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Create inserts a new reading and fills its id and timestamps.
func (r *ReadingRepository) Create(ctx context.Context, reading *masterdata.MeterReading) error {
	if r == nil || r.db == nil {
		return errors.New("reading repo: nil db")
	}
	if reading == nil {
		return errors.New("reading repo: nil reading")
	}
	now := time.Now().UTC()
	reading.CreatedAt = now
	reading.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO meter_readings (meter_id, reading_date, value, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		reading.MeterID, reading.ReadingDate.UTC(), reading.Value,
		nullableText(reading.Notes), reading.CreatedAt, reading.UpdatedAt,
	).Scan(&reading.ID)
}

// GetByID fetches a reading by id.
func (r *ReadingRepository) GetByID(ctx context.Context, id int64) (*masterdata.MeterReading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, meter_id, reading_date, value, notes, created_at, updated_at
FROM meter_readings
WHERE id = $1`, id)
	return scanReading(row)
}

// ListByMeter returns all readings of a meter in ascending date order.
func (r *ReadingRepository) ListByMeter(ctx context.Context, meterID int64) ([]masterdata.MeterReading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, meter_id, reading_date, value, notes, created_at, updated_at
FROM meter_readings
WHERE meter_id = $1
ORDER BY reading_date ASC, id ASC`, meterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []masterdata.MeterReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Previous returns the latest reading strictly before date on the same meter,
// or nil when there is none. excludeID skips the reading being updated.
func (r *ReadingRepository) Previous(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*masterdata.MeterReading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, meter_id, reading_date, value, notes, created_at, updated_at
FROM meter_readings
WHERE meter_id = $1 AND reading_date < $2 AND id <> $3
ORDER BY reading_date DESC, id DESC
LIMIT 1`, meterID, date.UTC(), excludeID)

	reading, err := scanReading(row)
	if errors.Is(err, masterdata.ErrNotFound) {
		return nil, nil
	}
	return reading, err
}

// Next returns the earliest reading strictly after date on the same meter,
// or nil when there is none. excludeID skips the reading being updated.
func (r *ReadingRepository) Next(ctx context.Context, meterID int64, date time.Time, excludeID int64) (*masterdata.MeterReading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reading repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, meter_id, reading_date, value, notes, created_at, updated_at
FROM meter_readings
WHERE meter_id = $1 AND reading_date > $2 AND id <> $3
ORDER BY reading_date ASC, id ASC
LIMIT 1`, meterID, date.UTC(), excludeID)

	reading, err := scanReading(row)
	if errors.Is(err, masterdata.ErrNotFound) {
		return nil, nil
	}
	return reading, err
}

// Update persists a modified reading.
func (r *ReadingRepository) Update(ctx context.Context, reading *masterdata.MeterReading) error {
	if r == nil || r.db == nil {
		return errors.New("reading repo: nil db")
	}
	if reading == nil {
		return errors.New("reading repo: nil reading")
	}
	reading.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE meter_readings
SET meter_id = $1, reading_date = $2, value = $3, notes = $4, updated_at = $5
WHERE id = $6`,
		reading.MeterID, reading.ReadingDate.UTC(), reading.Value,
		nullableText(reading.Notes), reading.UpdatedAt, reading.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a reading by id.
func (r *ReadingRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("reading repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM meter_readings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanReading(row rowScanner) (*masterdata.MeterReading, error) {
	var reading masterdata.MeterReading
	var notes sql.NullString
	if err := row.Scan(
		&reading.ID,
		&reading.MeterID,
		&reading.ReadingDate,
		&reading.Value,
		&notes,
		&reading.CreatedAt,
		&reading.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, masterdata.ErrNotFound
		}
		return nil, err
	}
	if notes.Valid {
		reading.Notes = &notes.String
	}
	reading.ReadingDate = reading.ReadingDate.UTC()
	reading.CreatedAt = reading.CreatedAt.UTC()
	reading.UpdatedAt = reading.UpdatedAt.UTC()
	return &reading, nil
}

func nullableText(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
