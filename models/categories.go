package models

import "slices"

// IngredientCategories lists the accepted ingredient categories.
var IngredientCategories = []string{
	"Vodka",
	"Tequila",
	"Bourbon",
	"Scotch",
	"Gin",
	"Rum",
	"Liqueurs/Cordials/Schnapps",
	"Brandy & Cognac",
	"Mixers & Modifiers",
	"Fresh Ingredients",
	"Garnishes & Accessories",
	"Wines",
	"Beers",
	"Non-Alcoholic",
}

// RecipeCategories lists the accepted recipe categories.
var RecipeCategories = []string{
	"Cocktail",
	"Mocktail",
	"Shot",
	"Punch",
	"Hot Drink",
	"Frozen Drink",
	"Wine Cocktail",
	"Beer Cocktail",
	"Specialty",
}

// Difficulties lists recipe difficulty levels, easiest first.
var Difficulties = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

// DefaultDifficulty is stored when a recipe names none.
const DefaultDifficulty = "Beginner"

// Units lists the measures accepted on recipe ingredient lines.
var Units = []string{
	"ml", "oz", "cl", "l", "cup", "tbsp", "tsp",
	"dash", "splash", "drop", "piece", "slice",
	"wedge", "twist", "sprig", "leaf", "gram", "kg",
}

// ValidIngredientCategory reports whether value is a known ingredient category.
func ValidIngredientCategory(value string) bool {
	return slices.Contains(IngredientCategories, value)
}

// ValidRecipeCategory reports whether value is a known recipe category.
func ValidRecipeCategory(value string) bool {
	return slices.Contains(RecipeCategories, value)
}

// ValidDifficulty reports whether value is a known difficulty. Empty is
// accepted and means DefaultDifficulty.
func ValidDifficulty(value string) bool {
	return value == "" || slices.Contains(Difficulties, value)
}

// ValidUnit reports whether value is a known unit.
func ValidUnit(value string) bool {
	return slices.Contains(Units, value)
}
