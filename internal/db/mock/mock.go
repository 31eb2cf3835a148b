package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"barkeep/internal/db"
	"barkeep/internal/ids"
	"barkeep/internal/ingredients"
	applog "barkeep/internal/log"
	"barkeep/internal/recipes"
	"barkeep/internal/schema"
	"barkeep/internal/store"
	"barkeep/models"
)

// New returns an in-memory sqlite database holding the five sheets, seeded
// with a small bar catalog. Every call resets the sheets.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:barkeep-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// shared-cache sqlite locks tables across connections
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	backend := db.NewBackend(database)
	if err := schema.Initialize(ctx, backend, true); err != nil {
		return nil, err
	}

	if err := seed(ctx, store.NewAdapter(backend)); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, adapter *store.Adapter) error {
	applog.Debug(ctx, "seeding mock database")

	gen := &ids.Sequence{}
	now := time.Now().UTC()

	suppliers := []schema.Record{
		{
			"supplierId":       gen.Generate(ids.SupplierPrefix),
			"companyName":      "Harbor Spirits Wholesale",
			"contactPerson":    "Jordan Reyes",
			"email":            "orders@harborspirits.example",
			"city":             "Portland",
			"state":            "OR",
			"paymentTerms":     "Net 30",
			"deliverySchedule": "Tuesdays",
			"minimumOrder":     250.0,
			"preferredStatus":  "Preferred",
			"rating":           4.6,
			"createdDate":      now,
		},
		{
			"supplierId":       gen.Generate(ids.SupplierPrefix),
			"companyName":      "Greenline Produce",
			"contactPerson":    "Sam Okafor",
			"city":             "Portland",
			"state":            "OR",
			"paymentTerms":     "COD",
			"deliverySchedule": "Daily",
			"preferredStatus":  "Standard",
			"createdDate":      now,
		},
	}
	for _, rec := range suppliers {
		if err := adapter.AppendRow(ctx, schema.SuppliersSheet, schema.Suppliers.BuildRow(rec)); err != nil {
			return err
		}
	}
	spirits := suppliers[0].String("supplierId")
	produce := suppliers[1].String("supplierId")

	ing := ingredients.NewRepository(adapter, ingredients.WithIDGenerator(gen))
	catalog := []models.Ingredient{
		{Name: "Grey Goose", Category: "Vodka", Brand: "Grey Goose", CountryOfOrigin: "France", ABV: 40, TasteProfile: "Premium, smooth", SizeVolume: "750ml", CostPerUnit: 1.2, SupplierID: spirits},
		{Name: "Tito's Handmade", Category: "Vodka", Brand: "Tito's", CountryOfOrigin: "USA", ABV: 40, SizeVolume: "1L", CostPerUnit: 0.8, SupplierID: spirits},
		{Name: "Absolut Citron", Category: "Vodka", Subcategory: "Flavored", Brand: "Absolut", CountryOfOrigin: "Sweden", ABV: 40, CostPerUnit: 0.7, SupplierID: spirits},
		{Name: "Hendrick's", Category: "Gin", Brand: "Hendrick's", CountryOfOrigin: "Scotland", ABV: 41.4, TasteProfile: "Cucumber, rose", CostPerUnit: 1.5, SupplierID: spirits},
		{Name: "Ginger Beer", Category: "Mixers & Modifiers", Brand: "Fever-Tree", ABV: 0, CostPerUnit: 0.3, SupplierID: spirits},
		{Name: "Lime", Category: "Fresh Ingredients", StorageRequirements: "Refrigerate", CostPerUnit: 0.25, SupplierID: produce},
	}
	byName := make(map[string]string, len(catalog))
	for _, item := range catalog {
		id, err := ing.Add(ctx, item)
		if err != nil {
			return err
		}
		byName[item.Name] = id
	}

	stock := []schema.Record{
		{"ingredientId": byName["Tito's Handmade"], "supplierId": spirits, "currentStock": 48.0, "unit": "oz", "reorderPoint": 24.0, "reorderQuantity": 96.0, "costPerUnit": 0.8, "location": "Back bar", "status": "In Stock"},
		{"ingredientId": byName["Lime"], "supplierId": produce, "currentStock": 6.0, "unit": "piece", "reorderPoint": 12.0, "reorderQuantity": 40.0, "costPerUnit": 0.25, "location": "Walk-in", "status": "Low Stock"},
	}
	for _, rec := range stock {
		rec["inventoryId"] = gen.Generate(ids.InventoryPrefix)
		rec["lastUpdated"] = now
		if err := adapter.AppendRow(ctx, schema.InventorySheet, schema.Inventory.BuildRow(rec)); err != nil {
			return err
		}
	}

	rcp := recipes.NewRepository(adapter, ing, recipes.WithIDGenerator(gen))
	drinks := []models.NewRecipe{
		{
			Name:         "Moscow Mule",
			Category:     "Cocktail",
			Description:  "Vodka and ginger beer over ice with lime.",
			Alcoholic:    true,
			DietaryTags:  []string{"gluten-free", "vegan"},
			Instructions: "Build over ice in a copper mug. Garnish with a lime wedge.",
			Ingredients: []models.RecipeIngredientLine{
				{IngredientID: byName["Tito's Handmade"], Quantity: 2, Unit: "oz", Critical: true},
				{IngredientID: byName["Ginger Beer"], Quantity: 4, Unit: "oz"},
				{IngredientID: byName["Lime"], Quantity: 1, Unit: "wedge", Garnish: true},
			},
		},
		{
			Name:            "Gin Buck",
			Category:        "Cocktail",
			Difficulty:      "Intermediate",
			PrepTimeMinutes: 3,
			Alcoholic:       true,
			Ingredients: []models.RecipeIngredientLine{
				{IngredientID: byName["Hendrick's"], Quantity: 2, Unit: "oz", Critical: true},
				{IngredientID: byName["Ginger Beer"], Quantity: 3, Unit: "oz", SubstitutionAllowed: true},
				{IngredientID: byName["Lime"], Quantity: 0.5, Unit: "piece", PreparationMethod: "Squeezed"},
			},
		},
	}
	for _, drink := range drinks {
		if _, err := rcp.Create(ctx, drink); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "ingredients", len(catalog), "recipes", len(drinks))
	return nil
}
