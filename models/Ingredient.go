package models

import "time"

// Ingredient is a row of the Enhanced_Ingredients sheet.
type Ingredient struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	Subcategory         string    `json:"subcategory"`
	Brand               string    `json:"brand"`
	CountryOfOrigin     string    `json:"country_of_origin"`
	SpiritsType         string    `json:"spirits_type"`
	SpiritsStyle        string    `json:"spirits_style"`
	ABV                 float64   `json:"abv"`
	TasteProfile        string    `json:"taste_profile"`
	BodyStyle           string    `json:"body_style"`
	SKU                 string    `json:"sku"`
	SizeVolume          string    `json:"size_volume"`
	Description         string    `json:"description"`
	StorageRequirements string    `json:"storage_requirements"`
	ShelfLifeDays       *int      `json:"shelf_life_days,omitempty"`
	CostPerUnit         float64   `json:"cost_per_unit"`
	SupplierID          string    `json:"supplier_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
