package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"barkeep/internal/errs"
	"barkeep/internal/ingredients"
	applog "barkeep/internal/log"
	"barkeep/models"
)

// IngredientService is the ingredient repository as seen by the HTTP layer.
type IngredientService interface {
	ByCategory(ctx context.Context, category string, filter ingredients.CategoryFilter) ([]models.Ingredient, error)
	Search(ctx context.Context, term string, filter ingredients.SearchFilter) ([]models.Ingredient, error)
	Add(ctx context.Context, in models.Ingredient) (string, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Get(ctx context.Context, id string) (*models.Ingredient, error)
}

// RecipeService is the recipe repository as seen by the HTTP layer.
type RecipeService interface {
	Create(ctx context.Context, in models.NewRecipe) (string, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Ingredients(ctx context.Context, recipeID string) ([]models.RecipeIngredient, error)
	Scale(ctx context.Context, id string, multiplier float64) (*models.ScaledRecipe, error)
}

var (
	ingredientRepo IngredientService
	recipeRepo     RecipeService
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(ing IngredientService, rcp RecipeService) {
	ingredientRepo = ing
	recipeRepo = rcp
}

type createdResponse struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeRepositoryError maps repository errors to status codes. Validation and
// not-found errors are expected and logged at debug level.
func writeRepositoryError(w http.ResponseWriter, r *http.Request, action string, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, errs.ErrValidation):
		applog.Debug(ctx, action+" rejected", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		applog.Debug(ctx, action+" target not found", "error", err)
		writeJSONError(w, http.StatusNotFound, err.Error())
	default:
		applog.Error(ctx, action+" failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to "+action)
	}
}
