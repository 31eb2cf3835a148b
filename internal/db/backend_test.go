package db

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barkeep/internal/errs"
	"barkeep/internal/ids"
	"barkeep/internal/ingredients"
	"barkeep/internal/recipes"
	"barkeep/internal/schema"
	"barkeep/internal/store"
	"barkeep/models"
)

func newSQLiteBackend(t *testing.T) *Backend {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := AutoMigrate(database); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}
	return NewBackend(database)
}

func TestBackendMissingSheet(t *testing.T) {
	t.Parallel()

	backend := newSQLiteBackend(t)
	_, err := backend.Sheet(context.Background(), "Recipes")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("Sheet error = %v, want ErrNotFound", err)
	}
}

func TestBackendRowsAndCells(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := newSQLiteBackend(t)

	table, err := backend.CreateSheet(ctx, "Inventory", []string{"Inventory_ID", "Current_Stock", "Status"})
	if err != nil {
		t.Fatalf("CreateSheet error = %v", err)
	}
	if err := table.AppendRow(ctx, store.Row{"INV_1", 12.5, "ok"}); err != nil {
		t.Fatalf("AppendRow error = %v", err)
	}
	if err := table.AppendRow(ctx, store.Row{"INV_2", 3, "low"}); err != nil {
		t.Fatalf("AppendRow error = %v", err)
	}
	if err := table.SetCellValue(ctx, 2, 2, "reorder"); err != nil {
		t.Fatalf("SetCellValue error = %v", err)
	}
	if err := table.SetCellValue(ctx, 1, 4, true); err != nil {
		t.Fatalf("SetCellValue growing row error = %v", err)
	}

	reopened, err := backend.Sheet(ctx, "Inventory")
	if err != nil {
		t.Fatalf("Sheet error = %v", err)
	}
	rows, err := reopened.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ReadAll returned %d rows, want 3", len(rows))
	}
	if got := store.CellString(rows[0][1]); got != "Current_Stock" {
		t.Fatalf("header = %q, want Current_Stock", got)
	}
	if got := schema.ParseFloat(rows[1][1]); got != 12.5 {
		t.Fatalf("stock = %v, want 12.5", got)
	}
	if got := store.CellString(rows[2][2]); got != "reorder" {
		t.Fatalf("status = %q, want reorder", got)
	}
	if len(rows[1]) != 5 || rows[1][4] != true {
		t.Fatalf("grown row = %v, want 5 cells ending in true", rows[1])
	}
}

func TestBackendCreateSheetResetsRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := newSQLiteBackend(t)

	table, err := backend.CreateSheet(ctx, "Suppliers", []string{"Supplier_ID"})
	if err != nil {
		t.Fatalf("CreateSheet error = %v", err)
	}
	if err := table.AppendRow(ctx, store.Row{"SUP_1"}); err != nil {
		t.Fatalf("AppendRow error = %v", err)
	}

	table, err = backend.CreateSheet(ctx, "Suppliers", []string{"Supplier_ID", "Company_Name"})
	if err != nil {
		t.Fatalf("CreateSheet again error = %v", err)
	}
	rows, err := table.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Fatalf("rows after reset = %v, want only the new header row", rows)
	}
	if err := table.AppendRow(ctx, store.Row{"SUP_9", "Coastal"}); err != nil {
		t.Fatalf("AppendRow after reset error = %v", err)
	}
}

func TestBackendServesRepositories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := newSQLiteBackend(t)
	if err := schema.Initialize(ctx, backend, false); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}

	now := time.Date(2026, 9, 30, 9, 0, 0, 0, time.UTC)
	seq := &ids.Sequence{}
	adapter := store.NewAdapter(backend)
	ing := ingredients.NewRepository(adapter, ingredients.WithIDGenerator(seq), ingredients.WithNowFunc(func() time.Time { return now }))
	rec := recipes.NewRepository(adapter, ing, recipes.WithIDGenerator(seq), recipes.WithNowFunc(func() time.Time { return now }))

	shelf := 730
	vodka, err := ing.Add(ctx, models.Ingredient{Name: "House Vodka", Category: "Vodka", ABV: 40, CostPerUnit: 1.5, ShelfLifeDays: &shelf})
	if err != nil {
		t.Fatalf("Add error = %v", err)
	}
	if err := ing.Update(ctx, vodka, map[string]any{"countryOfOrigin": "Poland"}); err != nil {
		t.Fatalf("Update error = %v", err)
	}

	got, err := ing.Get(ctx, vodka)
	if err != nil || got == nil {
		t.Fatalf("Get = (%v, %v)", got, err)
	}
	if got.ABV != 40 || got.CountryOfOrigin != "Poland" || got.ShelfLifeDays == nil || *got.ShelfLifeDays != shelf {
		t.Fatalf("ingredient = %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}

	id, err := rec.Create(ctx, models.NewRecipe{
		Name:        "Moscow Mule",
		Category:    "Cocktail",
		DietaryTags: []string{"vegan"},
		Ingredients: []models.RecipeIngredientLine{{IngredientID: vodka, Quantity: 2, Unit: "oz"}},
	})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	scaled, err := rec.Scale(ctx, id, 2)
	if err != nil {
		t.Fatalf("Scale error = %v", err)
	}
	if scaled.TotalCost != 6 || scaled.Ingredients[0].Quantity != 4 {
		t.Fatalf("scaled = %+v", scaled)
	}
	stored, _ := rec.Get(ctx, id)
	if stored.TotalCost != 3 || !stored.Active || !slices.Equal(stored.DietaryTags, []string{"vegan"}) {
		t.Fatalf("stored recipe = %+v", stored)
	}
}

func TestConcurrentAppendsKeepEveryRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := newSQLiteBackend(t)
	if err := schema.Initialize(ctx, backend, false); err != nil {
		t.Fatalf("Initialize error = %v", err)
	}
	repo := ingredients.NewRepository(store.NewAdapter(backend))

	const writers = 8
	var wg sync.WaitGroup
	errCh := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Add(ctx, models.Ingredient{Name: "Lime", Category: "Fresh Ingredients"}); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent Add error = %v", err)
	}

	all, err := repo.ByCategory(ctx, "Fresh Ingredients", ingredients.CategoryFilter{})
	if err != nil {
		t.Fatalf("ByCategory error = %v", err)
	}
	if len(all) != writers {
		t.Fatalf("ByCategory returned %d rows, want %d", len(all), writers)
	}
}
