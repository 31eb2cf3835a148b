package models

// RecipeIngredient is a row of the Recipe_Ingredients join sheet.
type RecipeIngredient struct {
	ID                  string  `json:"id"`
	RecipeID            string  `json:"recipe_id"`
	IngredientID        string  `json:"ingredient_id"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	PreparationMethod   string  `json:"preparation_method"`
	SubstitutionAllowed bool    `json:"substitution_allowed"`
	Garnish             bool    `json:"garnish"`
	Critical            bool    `json:"critical"`
	CostContribution    float64 `json:"cost_contribution"`
	OrderSequence       int     `json:"order_sequence"` // 1-based, by insertion
}

// RecipeIngredientLine is one ingredient entry supplied when creating a recipe.
type RecipeIngredientLine struct {
	IngredientID        string  `json:"ingredient_id"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	PreparationMethod   string  `json:"preparation_method"`
	SubstitutionAllowed bool    `json:"substitution_allowed"`
	Garnish             bool    `json:"garnish"`
	Critical            bool    `json:"critical"`
}
