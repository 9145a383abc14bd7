package costs

import "context"

// CostTypeRepository persists cost types.
type CostTypeRepository interface {
	Create(ctx context.Context, ct *CostType) error
	GetByID(ctx context.Context, id int64) (*CostType, error)
	List(ctx context.Context) ([]CostType, error)
	Update(ctx context.Context, ct *CostType) error
	Delete(ctx context.Context, id int64) error
}

// AllocationMethodRepository persists the allocation method catalog and its
// cost type associations.
type AllocationMethodRepository interface {
	Create(ctx context.Context, method *AllocationMethod) error
	GetByID(ctx context.Context, id int64) (*AllocationMethod, error)
	List(ctx context.Context) ([]AllocationMethod, error)
	ListByCostType(ctx context.Context, costTypeID int64) ([]AllocationMethod, error)
	Assign(ctx context.Context, costTypeID, methodID int64) error
	Remove(ctx context.Context, costTypeID, methodID int64) error
	Delete(ctx context.Context, id int64) error
}

// TariffRepository persists tariffs.
type TariffRepository interface {
	Create(ctx context.Context, tariff *Tariff) error
	GetByID(ctx context.Context, id int64) (*Tariff, error)
	List(ctx context.Context) ([]Tariff, error)
	ListByCostType(ctx context.Context, costTypeID int64) ([]Tariff, error)
	Update(ctx context.Context, tariff *Tariff) error
	Delete(ctx context.Context, id int64) error
}

// FixedCostRepository persists fixed costs.
type FixedCostRepository interface {
	Create(ctx context.Context, fc *FixedCost) error
	GetByID(ctx context.Context, id int64) (*FixedCost, error)
	List(ctx context.Context) ([]FixedCost, error)
	ListByCostType(ctx context.Context, costTypeID int64) ([]FixedCost, error)
	Update(ctx context.Context, fc *FixedCost) error
	Delete(ctx context.Context, id int64) error
}
