package models

import "time"

// Recipe is a row of the Recipes sheet. TotalCost is persisted in the
// Cost_Per_Serving column and is only computed when the recipe is created.
type Recipe struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Difficulty      string    `json:"difficulty"`
	ServingSize     float64   `json:"serving_size"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	TotalCost       float64   `json:"total_cost"`
	Alcoholic       bool      `json:"alcoholic"`
	DietaryTags     []string  `json:"dietary_tags"`
	Instructions    string    `json:"instructions"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         string    `json:"version"`
	Active          bool      `json:"active"`
}

// NewRecipe is the input to recipe creation. Zero values take the sheet
// defaults: Beginner difficulty and a serving size of 1.
type NewRecipe struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Category        string                 `json:"category"`
	Difficulty      string                 `json:"difficulty"`
	ServingSize     float64                `json:"serving_size"`
	PrepTimeMinutes int                    `json:"prep_time_minutes"`
	Alcoholic       bool                   `json:"alcoholic"`
	DietaryTags     []string               `json:"dietary_tags"`
	Instructions    string                 `json:"instructions"`
	Ingredients     []RecipeIngredientLine `json:"ingredients"`
}

// ScaledRecipe is a read-time projection of a recipe multiplied by a factor.
// It is never persisted.
type ScaledRecipe struct {
	Recipe
	Multiplier  float64            `json:"multiplier"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}
