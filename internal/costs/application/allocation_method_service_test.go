package application

import (
	"context"
	"errors"
	"testing"

	costs "nebenkosten/internal/costs/domain"
	"nebenkosten/internal/costs/infrastructure/memory"
)

func newAllocationMethodFixture(t *testing.T) (*AllocationMethodService, *memory.CostTypeRepository) {
	t.Helper()
	methods := memory.NewAllocationMethodRepository()
	costTypes := memory.NewCostTypeRepository()
	service, err := NewAllocationMethodService(methods, costTypes)
	if err != nil {
		t.Fatalf("new allocation method service: %v", err)
	}
	return service, costTypes
}

func TestAllocationMethodServiceCreateRejectsEmptyName(t *testing.T) {
	service, _ := newAllocationMethodFixture(t)
	method := &costs.AllocationMethod{Name: "  "}
	if err := service.Create(context.Background(), method); !errors.Is(err, costs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for an empty name, got %v", err)
	}
}

func TestAllocationMethodServiceAssignAndRemove(t *testing.T) {
	service, costTypes := newAllocationMethodFixture(t)
	costTypeID := createCostType(t, costTypes, "Grundsteuer", false)
	ctx := context.Background()

	method := &costs.AllocationMethod{Name: "Pro Person"}
	if err := service.Create(ctx, method); err != nil {
		t.Fatalf("create method: %v", err)
	}

	if err := service.Assign(ctx, costTypeID, method.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Assigning twice is a no-op.
	if err := service.Assign(ctx, costTypeID, method.ID); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	assigned, err := service.ListByCostType(ctx, costTypeID)
	if err != nil {
		t.Fatalf("list by cost type: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != method.ID {
		t.Fatalf("expected the assigned method, got %+v", assigned)
	}

	if err := service.Remove(ctx, costTypeID, method.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	assigned, err = service.ListByCostType(ctx, costTypeID)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(assigned) != 0 {
		t.Fatalf("expected no assignments, got %+v", assigned)
	}
}

func TestAllocationMethodServiceAssignUnknownCostType(t *testing.T) {
	service, _ := newAllocationMethodFixture(t)
	ctx := context.Background()

	method := &costs.AllocationMethod{Name: "Pro Person"}
	if err := service.Create(ctx, method); err != nil {
		t.Fatalf("create method: %v", err)
	}
	if err := service.Assign(ctx, 99, method.ID); !errors.Is(err, costs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing cost type, got %v", err)
	}
}

func TestAllocationMethodServiceAssignUnknownMethod(t *testing.T) {
	service, costTypes := newAllocationMethodFixture(t)
	costTypeID := createCostType(t, costTypes, "Grundsteuer", false)

	if err := service.Assign(context.Background(), costTypeID, 99); !errors.Is(err, costs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing method, got %v", err)
	}
}
