package mock

import (
	"context"
	"testing"

	"barkeep/internal/db"
	"barkeep/internal/ingredients"
	"barkeep/internal/recipes"
	"barkeep/internal/schema"
	"barkeep/internal/store"
)

func TestNewSeedsExpectedRecords(t *testing.T) {
	ctx := context.Background()
	database, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	adapter := store.NewAdapter(db.NewBackend(database))
	ing := ingredients.NewRepository(adapter)

	vodkas, err := ing.ByCategory(ctx, "Vodka", ingredients.CategoryFilter{})
	if err != nil {
		t.Fatalf("query vodkas: %v", err)
	}
	if len(vodkas) != 3 {
		t.Fatalf("seeded vodkas = %d, want 3", len(vodkas))
	}

	_, suppliers, err := adapter.ReadAll(ctx, schema.SuppliersSheet)
	if err != nil || len(suppliers) == 0 {
		t.Fatalf("suppliers = (%d, %v), want seeded rows", len(suppliers), err)
	}
	_, stock, err := adapter.ReadAll(ctx, schema.InventorySheet)
	if err != nil || len(stock) == 0 {
		t.Fatalf("inventory = (%d, %v), want seeded rows", len(stock), err)
	}

	rcp := recipes.NewRepository(adapter, ing)
	mule, err := rcp.Get(ctx, "RCP_1")
	if err != nil || mule == nil {
		t.Fatalf("Get(RCP_1) = (%v, %v)", mule, err)
	}
	// 2 oz x 0.8 + 4 oz x 0.3 + 1 x 0.25
	if mule.TotalCost < 3.049 || mule.TotalCost > 3.051 {
		t.Fatalf("Moscow Mule TotalCost = %v, want 3.05", mule.TotalCost)
	}
	lines, err := rcp.Ingredients(ctx, mule.ID)
	if err != nil || len(lines) != 3 {
		t.Fatalf("Moscow Mule ingredients = (%d, %v), want 3", len(lines), err)
	}
}

func TestNewResetsBetweenCalls(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx); err != nil {
		t.Fatalf("first New: %v", err)
	}
	database, err := New(ctx)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}

	_, rows, err := store.NewAdapter(db.NewBackend(database)).ReadAll(ctx, schema.IngredientsSheet)
	if err != nil {
		t.Fatalf("read ingredients: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("ingredient rows = %d, want 6", len(rows))
	}
}
