package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// TenantRepository is a Postgres repository for tenants.
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository constructs a repository.
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a new tenant and fills its id and timestamps.
func (r *TenantRepository) Create(ctx context.Context, tenant *masterdata.Tenant) error {
	if r == nil || r.db == nil {
		return errors.New("tenant repo: nil db")
	}
	if tenant == nil {
		return errors.New("tenant repo: nil tenant")
	}
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	return r.db.QueryRowContext(ctx, `
INSERT INTO tenants (name, number_of_persons, property_unit_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		tenant.Name, tenant.NumberOfPersons, tenant.PropertyUnitID, tenant.CreatedAt, tenant.UpdatedAt,
	).Scan(&tenant.ID)
}

// GetByID fetches a tenant by id.
func (r *TenantRepository) GetByID(ctx context.Context, id int64) (*masterdata.Tenant, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tenant repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, number_of_persons, property_unit_id, created_at, updated_at
FROM tenants
WHERE id = $1`, id)
	return scanTenant(row)
}

// List returns all tenants ordered by id.
func (r *TenantRepository) List(ctx context.Context) ([]masterdata.Tenant, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tenant repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, number_of_persons, property_unit_id, created_at, updated_at
FROM tenants
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []masterdata.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByPropertyUnit counts tenants currently assigned to a unit.
func (r *TenantRepository) CountByPropertyUnit(ctx context.Context, unitID int64) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("tenant repo: nil db")
	}
	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM tenants WHERE property_unit_id = $1`, unitID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists a modified tenant.
func (r *TenantRepository) Update(ctx context.Context, tenant *masterdata.Tenant) error {
	if r == nil || r.db == nil {
		return errors.New("tenant repo: nil db")
	}
	if tenant == nil {
		return errors.New("tenant repo: nil tenant")
	}
	tenant.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE tenants
SET name = $1, number_of_persons = $2, property_unit_id = $3, updated_at = $4
WHERE id = $5`, tenant.Name, tenant.NumberOfPersons, tenant.PropertyUnitID, tenant.UpdatedAt, tenant.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a tenant by id.
func (r *TenantRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("tenant repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*masterdata.Tenant, error) {
	var tenant masterdata.Tenant
	if err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.NumberOfPersons,
		&tenant.PropertyUnitID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, masterdata.ErrNotFound
		}
		return nil, err
	}
	tenant.CreatedAt = tenant.CreatedAt.UTC()
	tenant.UpdatedAt = tenant.UpdatedAt.UTC()
	return &tenant, nil
}
