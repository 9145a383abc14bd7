package postgres

import (
	"context"
	"database/sql"
	"errors"

	costs "nebenkosten/internal/costs/domain"
)

// AllocationMethodRepository is a Postgres repository for the descriptive
// allocation method catalog.
type AllocationMethodRepository struct {
	db *sql.DB
}

// NewAllocationMethodRepository constructs a repository.
func NewAllocationMethodRepository(db *sql.DB) *AllocationMethodRepository {
	return &AllocationMethodRepository{db: db}
}

// Create inserts a new allocation method and fills its id.
func (r *AllocationMethodRepository) Create(ctx context.Context, method *costs.AllocationMethod) error {
	if r == nil || r.db == nil {
		return errors.New("allocation method repo: nil db")
	}
	if method == nil {
		return errors.New("allocation method repo: nil method")
	}
	return r.db.QueryRowContext(ctx, `
INSERT INTO allocation_methods (name, description)
VALUES ($1, $2)
RETURNING id`,
		method.Name, nullableText(method.Description),
	).Scan(&method.ID)
}

// GetByID fetches an allocation method by id.
func (r *AllocationMethodRepository) GetByID(ctx context.Context, id int64) (*costs.AllocationMethod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("allocation method repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description
FROM allocation_methods
WHERE id = $1`, id)

	var method costs.AllocationMethod
	var description sql.NullString
	if err := row.Scan(&method.ID, &method.Name, &description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, costs.ErrNotFound
		}
		return nil, err
	}
	if description.Valid {
		method.Description = &description.String
	}
	return &method, nil
}

// List returns all allocation methods ordered by id.
func (r *AllocationMethodRepository) List(ctx context.Context) ([]costs.AllocationMethod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("allocation method repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description
FROM allocation_methods
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []costs.AllocationMethod
	for rows.Next() {
		var method costs.AllocationMethod
		var description sql.NullString
		if err := rows.Scan(&method.ID, &method.Name, &description); err != nil {
			return nil, err
		}
		if description.Valid {
			method.Description = &description.String
		}
		result = append(result, method)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByCostType returns the methods assigned to one cost type.
func (r *AllocationMethodRepository) ListByCostType(ctx context.Context, costTypeID int64) ([]costs.AllocationMethod, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("allocation method repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT am.id, am.name, am.description
FROM allocation_methods am
JOIN cost_type_allocation_methods ctam ON ctam.allocation_method_id = am.id
WHERE ctam.cost_type_id = $1
ORDER BY am.id`, costTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []costs.AllocationMethod
	for rows.Next() {
		var method costs.AllocationMethod
		var description sql.NullString
		if err := rows.Scan(&method.ID, &method.Name, &description); err != nil {
			return nil, err
		}
		if description.Valid {
			method.Description = &description.String
		}
		result = append(result, method)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Assign links a method to a cost type. Re-assigning is a no-op.
func (r *AllocationMethodRepository) Assign(ctx context.Context, costTypeID, methodID int64) error {
	if r == nil || r.db == nil {
		return errors.New("allocation method repo: nil db")
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cost_type_allocation_methods (cost_type_id, allocation_method_id)
VALUES ($1, $2)
ON CONFLICT (cost_type_id, allocation_method_id) DO NOTHING`,
		costTypeID, methodID)
	return err
}

// Remove unlinks a method from a cost type.
func (r *AllocationMethodRepository) Remove(ctx context.Context, costTypeID, methodID int64) error {
	if r == nil || r.db == nil {
		return errors.New("allocation method repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `
DELETE FROM cost_type_allocation_methods
WHERE cost_type_id = $1 AND allocation_method_id = $2`,
		costTypeID, methodID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes an allocation method by id.
func (r *AllocationMethodRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("allocation method repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM allocation_methods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
