// Package schema declares the five sheet layouts and maps rows to keyed records.
package schema

import (
	"barkeep/internal/store"
)

// Kind is the value type stored in a column.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBool
	KindTime
	KindList
)

// Column describes one sheet column.
type Column struct {
	Header string
	Field  string
	Kind   Kind
	// Default is written when a record has no value for Field.
	Default any
	// Updatable columns are reachable through HeaderForField.
	Updatable bool
}

// Table is the ordered column layout of a sheet.
type Table struct {
	Name    string
	Columns []Column
}

// Sheet names.
const (
	IngredientsSheet       = "Enhanced_Ingredients"
	RecipesSheet           = "Recipes"
	RecipeIngredientsSheet = "Recipe_Ingredients"
	SuppliersSheet         = "Suppliers"
	InventorySheet         = "Inventory"
)

// Ingredients is the Enhanced_Ingredients layout.
var Ingredients = Table{
	Name: IngredientsSheet,
	Columns: []Column{
		{Header: "Ingredient_ID", Field: "ingredientId", Kind: KindString, Default: ""},
		{Header: "Name", Field: "name", Kind: KindString, Default: "", Updatable: true},
		{Header: "Category", Field: "category", Kind: KindString, Default: "", Updatable: true},
		{Header: "Subcategory", Field: "subcategory", Kind: KindString, Default: "", Updatable: true},
		{Header: "Brand", Field: "brand", Kind: KindString, Default: "", Updatable: true},
		{Header: "Country_of_Origin", Field: "countryOfOrigin", Kind: KindString, Default: "", Updatable: true},
		{Header: "Spirits_Type", Field: "spiritsType", Kind: KindString, Default: "", Updatable: true},
		{Header: "Spirits_Style", Field: "spiritsStyle", Kind: KindString, Default: "", Updatable: true},
		{Header: "ABV", Field: "abv", Kind: KindNumber, Default: 0.0, Updatable: true},
		{Header: "Taste_Profile", Field: "tasteProfile", Kind: KindString, Default: "", Updatable: true},
		{Header: "Body_Style", Field: "bodyStyle", Kind: KindString, Default: "", Updatable: true},
		{Header: "SKU", Field: "sku", Kind: KindString, Default: "", Updatable: true},
		{Header: "Size_Volume", Field: "sizeVolume", Kind: KindString, Default: "", Updatable: true},
		{Header: "Description", Field: "description", Kind: KindString, Default: "", Updatable: true},
		{Header: "Storage_Requirements", Field: "storageRequirements", Kind: KindString, Default: "", Updatable: true},
		// an unset shelf life is stored as an empty cell, not 0
		{Header: "Shelf_Life_Days", Field: "shelfLifeDays", Kind: KindInteger, Default: "", Updatable: true},
		{Header: "Cost_Per_Unit", Field: "costPerUnit", Kind: KindNumber, Default: 0.0, Updatable: true},
		{Header: "Supplier_ID", Field: "supplierId", Kind: KindString, Default: "", Updatable: true},
		{Header: "Created_Date", Field: "createdDate", Kind: KindTime, Default: ""},
		{Header: "Updated_Date", Field: "updatedDate", Kind: KindTime, Default: ""},
	},
}

// Recipes is the Recipes layout. Cost_Per_Serving holds the recipe total.
var Recipes = Table{
	Name: RecipesSheet,
	Columns: []Column{
		{Header: "Recipe_ID", Field: "recipeId", Kind: KindString, Default: ""},
		{Header: "Recipe_Name", Field: "recipeName", Kind: KindString, Default: ""},
		{Header: "Description", Field: "description", Kind: KindString, Default: ""},
		{Header: "Category", Field: "category", Kind: KindString, Default: ""},
		{Header: "Difficulty_Level", Field: "difficultyLevel", Kind: KindString, Default: "Beginner"},
		{Header: "Serving_Size", Field: "servingSize", Kind: KindNumber, Default: 1.0},
		{Header: "Prep_Time_Minutes", Field: "prepTimeMinutes", Kind: KindInteger, Default: 0},
		{Header: "Cost_Per_Serving", Field: "costPerServing", Kind: KindNumber, Default: 0.0},
		{Header: "Alcoholic", Field: "alcoholic", Kind: KindBool, Default: false},
		{Header: "Dietary_Tags", Field: "dietaryTags", Kind: KindList, Default: ""},
		{Header: "Instructions", Field: "instructions", Kind: KindString, Default: ""},
		{Header: "Created_Date", Field: "createdDate", Kind: KindTime, Default: ""},
		{Header: "Updated_Date", Field: "updatedDate", Kind: KindTime, Default: ""},
		{Header: "Version", Field: "version", Kind: KindString, Default: "1.0"},
		{Header: "Active", Field: "active", Kind: KindBool, Default: true},
	},
}

// RecipeIngredients is the Recipe_Ingredients join layout.
var RecipeIngredients = Table{
	Name: RecipeIngredientsSheet,
	Columns: []Column{
		{Header: "Relationship_ID", Field: "relationshipId", Kind: KindString, Default: ""},
		{Header: "Recipe_ID", Field: "recipeId", Kind: KindString, Default: ""},
		{Header: "Ingredient_ID", Field: "ingredientId", Kind: KindString, Default: ""},
		{Header: "Quantity", Field: "quantity", Kind: KindNumber, Default: 0.0},
		{Header: "Unit", Field: "unit", Kind: KindString, Default: ""},
		{Header: "Preparation_Method", Field: "preparationMethod", Kind: KindString, Default: ""},
		{Header: "Substitution_Allowed", Field: "substitutionAllowed", Kind: KindBool, Default: false},
		{Header: "Garnish_Flag", Field: "garnishFlag", Kind: KindBool, Default: false},
		{Header: "Critical_Ingredient", Field: "criticalIngredient", Kind: KindBool, Default: false},
		{Header: "Cost_Contribution", Field: "costContribution", Kind: KindNumber, Default: 0.0},
		{Header: "Order_Sequence", Field: "orderSequence", Kind: KindInteger, Default: 0},
	},
}

// Suppliers is the Suppliers layout.
var Suppliers = Table{
	Name: SuppliersSheet,
	Columns: []Column{
		{Header: "Supplier_ID", Field: "supplierId", Kind: KindString, Default: ""},
		{Header: "Company_Name", Field: "companyName", Kind: KindString, Default: ""},
		{Header: "Contact_Person", Field: "contactPerson", Kind: KindString, Default: ""},
		{Header: "Phone", Field: "phone", Kind: KindString, Default: ""},
		{Header: "Email", Field: "email", Kind: KindString, Default: ""},
		{Header: "Address", Field: "address", Kind: KindString, Default: ""},
		{Header: "City", Field: "city", Kind: KindString, Default: ""},
		{Header: "State", Field: "state", Kind: KindString, Default: ""},
		{Header: "Zip_Code", Field: "zipCode", Kind: KindString, Default: ""},
		{Header: "Payment_Terms", Field: "paymentTerms", Kind: KindString, Default: ""},
		{Header: "Delivery_Schedule", Field: "deliverySchedule", Kind: KindString, Default: ""},
		{Header: "Minimum_Order", Field: "minimumOrder", Kind: KindNumber, Default: 0.0},
		{Header: "Preferred_Status", Field: "preferredStatus", Kind: KindString, Default: ""},
		{Header: "Rating", Field: "rating", Kind: KindNumber, Default: ""},
		{Header: "Created_Date", Field: "createdDate", Kind: KindTime, Default: ""},
		{Header: "Last_Contact_Date", Field: "lastContactDate", Kind: KindTime, Default: ""},
	},
}

// Inventory is the Inventory layout.
var Inventory = Table{
	Name: InventorySheet,
	Columns: []Column{
		{Header: "Inventory_ID", Field: "inventoryId", Kind: KindString, Default: ""},
		{Header: "Ingredient_ID", Field: "ingredientId", Kind: KindString, Default: ""},
		{Header: "Supplier_ID", Field: "supplierId", Kind: KindString, Default: ""},
		{Header: "Current_Stock", Field: "currentStock", Kind: KindNumber, Default: 0.0},
		{Header: "Unit", Field: "unit", Kind: KindString, Default: ""},
		{Header: "Reorder_Point", Field: "reorderPoint", Kind: KindNumber, Default: 0.0},
		{Header: "Reorder_Quantity", Field: "reorderQuantity", Kind: KindNumber, Default: 0.0},
		{Header: "Last_Order_Date", Field: "lastOrderDate", Kind: KindTime, Default: ""},
		{Header: "Cost_Per_Unit", Field: "costPerUnit", Kind: KindNumber, Default: 0.0},
		{Header: "Expiration_Date", Field: "expirationDate", Kind: KindTime, Default: ""},
		{Header: "Location", Field: "location", Kind: KindString, Default: ""},
		{Header: "Status", Field: "status", Kind: KindString, Default: ""},
		{Header: "Last_Updated", Field: "lastUpdated", Kind: KindTime, Default: ""},
	},
}

// All returns the five tables in initialization order.
func All() []Table {
	return []Table{Ingredients, Recipes, RecipeIngredients, Suppliers, Inventory}
}

// Headers returns the header row.
func (t Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	return headers
}

// Key returns the first column, which holds the record id.
func (t Table) Key() Column {
	return t.Columns[0]
}

// Column returns the column for field.
func (t Table) Column(field string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

// HeaderForField resolves a record field to the header it is written under.
// Only updatable columns are resolved; any other field name is returned
// unchanged and will normally match no header.
func (t Table) HeaderForField(field string) string {
	for _, col := range t.Columns {
		if col.Updatable && col.Field == field {
			return col.Header
		}
	}
	return field
}

// BuildRow lays rec out in column order, substituting column defaults for
// missing fields.
func (t Table) BuildRow(rec Record) store.Row {
	row := make(store.Row, len(t.Columns))
	for i, col := range t.Columns {
		value, ok := rec[col.Field]
		if !ok || value == nil {
			value = col.Default
		}
		row[i] = value
	}
	return row
}
