package schema

import (
	"slices"
	"testing"
)

func TestDeclaredFieldsMatchHeaderConversion(t *testing.T) {
	t.Parallel()

	for _, table := range All() {
		for _, col := range table.Columns {
			if got := HeaderToField(col.Header); got != col.Field {
				t.Fatalf("%s: HeaderToField(%q) = %q, declared field %q", table.Name, col.Header, got, col.Field)
			}
		}
	}
}

func TestColumnCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		table Table
		want  int
	}{
		{Ingredients, 20},
		{Recipes, 15},
		{RecipeIngredients, 11},
		{Suppliers, 16},
		{Inventory, 13},
	}

	for _, tt := range tests {
		if got := len(tt.table.Columns); got != tt.want {
			t.Fatalf("%s has %d columns, want %d", tt.table.Name, got, tt.want)
		}
	}
}

func TestIngredientReverseLookup(t *testing.T) {
	t.Parallel()

	updatable := map[string]string{
		"name":                "Name",
		"category":            "Category",
		"subcategory":         "Subcategory",
		"brand":               "Brand",
		"countryOfOrigin":     "Country_of_Origin",
		"spiritsType":         "Spirits_Type",
		"spiritsStyle":        "Spirits_Style",
		"abv":                 "ABV",
		"tasteProfile":        "Taste_Profile",
		"bodyStyle":           "Body_Style",
		"sku":                 "SKU",
		"sizeVolume":          "Size_Volume",
		"description":         "Description",
		"storageRequirements": "Storage_Requirements",
		"shelfLifeDays":       "Shelf_Life_Days",
		"costPerUnit":         "Cost_Per_Unit",
		"supplierId":          "Supplier_ID",
	}
	for field, header := range updatable {
		if got := Ingredients.HeaderForField(field); got != header {
			t.Fatalf("HeaderForField(%q) = %q, want %q", field, got, header)
		}
	}

	for _, field := range []string{"ingredientId", "createdDate", "updatedDate", "colour"} {
		if got := Ingredients.HeaderForField(field); got != field {
			t.Fatalf("HeaderForField(%q) = %q, want pass-through", field, got)
		}
	}
}

func TestBuildRowAppliesDefaults(t *testing.T) {
	t.Parallel()

	row := Recipes.BuildRow(Record{"recipeId": "RCP_1", "recipeName": "Mule", "category": "Cocktail"})
	if len(row) != 15 {
		t.Fatalf("len(row) = %d, want 15", len(row))
	}

	want := map[string]any{
		"Recipe_ID":         "RCP_1",
		"Difficulty_Level":  "Beginner",
		"Serving_Size":      1.0,
		"Prep_Time_Minutes": 0,
		"Alcoholic":         false,
		"Version":           "1.0",
		"Active":            true,
	}
	headers := Recipes.Headers()
	for header, value := range want {
		idx := slices.Index(headers, header)
		if row[idx] != value {
			t.Fatalf("row[%s] = %#v, want %#v", header, row[idx], value)
		}
	}

	ingredientRow := Ingredients.BuildRow(Record{"name": "Vodka"})
	if got := ingredientRow[slices.Index(Ingredients.Headers(), "Shelf_Life_Days")]; got != "" {
		t.Fatalf("Shelf_Life_Days default = %#v, want empty string", got)
	}
}
