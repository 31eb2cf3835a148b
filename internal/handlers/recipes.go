package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	applog "barkeep/internal/log"
	"barkeep/internal/metrics"
	"barkeep/models"
)

// RecipeResource serves /api/recipes, /api/recipes/{id},
// /api/recipes/{id}/ingredients and /api/recipes/{id}/scale.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if recipeRepo == nil {
		applog.Debug(r.Context(), "recipe request without repository")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/recipes")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method == http.MethodPost {
			createRecipe(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segments := strings.Split(path, "/")
	recipeID := segments[0]
	switch {
	case len(segments) == 1:
		showRecipe(w, r, recipeID)
	case len(segments) == 2 && segments[1] == "ingredients":
		listRecipeIngredients(w, r, recipeID)
	case len(segments) == 2 && segments[1] == "scale":
		scaleRecipe(w, r, recipeID)
	default:
		http.NotFound(w, r)
	}
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload models.NewRecipe
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := validateRecipe(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := recipeRepo.Create(ctx, payload)
	metrics.RecordOperation("recipe", "create", err)
	if err != nil {
		writeRepositoryError(w, r, "create recipe", err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func showRecipe(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	recipe, err := recipeRepo.Get(ctx, id)
	metrics.RecordOperation("recipe", "get", err)
	if err != nil {
		writeRepositoryError(w, r, "load recipe", err)
		return
	}
	if recipe == nil {
		applog.Debug(ctx, "recipe not found", "id", id)
		writeJSONError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func listRecipeIngredients(w http.ResponseWriter, r *http.Request, id string) {
	lines, err := recipeRepo.Ingredients(r.Context(), id)
	metrics.RecordOperation("recipe", "ingredients", err)
	if err != nil {
		writeRepositoryError(w, r, "load recipe ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func scaleRecipe(w http.ResponseWriter, r *http.Request, id string) {
	raw := strings.TrimSpace(r.URL.Query().Get("multiplier"))
	multiplier, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "multiplier must be a number")
		return
	}

	scaled, err := recipeRepo.Scale(r.Context(), id, multiplier)
	metrics.RecordOperation("recipe", "scale", err)
	if err != nil {
		writeRepositoryError(w, r, "scale recipe", err)
		return
	}
	writeJSON(w, http.StatusOK, scaled)
}

func validateRecipe(in models.NewRecipe) error {
	if in.Category != "" && !models.ValidRecipeCategory(in.Category) {
		return fmt.Errorf("unknown category %q", in.Category)
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return fmt.Errorf("unknown difficulty %q", in.Difficulty)
	}
	if in.ServingSize < 0 || in.PrepTimeMinutes < 0 {
		return fmt.Errorf("serving_size and prep_time_minutes must not be negative")
	}
	for i, line := range in.Ingredients {
		if strings.TrimSpace(line.IngredientID) == "" {
			return fmt.Errorf("ingredients[%d].ingredient_id is required", i)
		}
		if line.Unit != "" && !models.ValidUnit(line.Unit) {
			return fmt.Errorf("ingredients[%d]: unknown unit %q", i, line.Unit)
		}
		if line.Quantity < 0 {
			return fmt.Errorf("ingredients[%d].quantity must not be negative", i)
		}
	}
	return nil
}
