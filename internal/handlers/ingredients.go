package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"barkeep/internal/ingredients"
	applog "barkeep/internal/log"
	"barkeep/internal/metrics"
	"barkeep/internal/schema"
	"barkeep/models"
)

// IngredientResource serves /api/ingredients, /api/ingredients/search and
// /api/ingredients/{id}.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if ingredientRepo == nil {
		applog.Debug(r.Context(), "ingredient request without repository")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/ingredients")
	path = strings.Trim(path, "/")

	switch {
	case path == "":
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case path == "search":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		searchIngredients(w, r)
	case !strings.Contains(path, "/"):
		switch r.Method {
		case http.MethodGet:
			showIngredient(w, r, path)
		case http.MethodPatch:
			updateIngredient(w, r, path)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	default:
		http.NotFound(w, r)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var filter ingredients.CategoryFilter
	var err error
	if filter.ABVMin, err = optionalFloat(query, "abv_min"); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if filter.ABVMax, err = optionalFloat(query, "abv_max"); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.Country = strings.TrimSpace(query.Get("country"))

	results, err := ingredientRepo.ByCategory(ctx, strings.TrimSpace(query.Get("category")), filter)
	metrics.RecordOperation("ingredient", "by_category", err)
	if err != nil {
		writeRepositoryError(w, r, "list ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func searchIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := ingredients.SearchFilter{
		Categories: nonEmpty(query["category"]),
		Suppliers:  nonEmpty(query["supplier"]),
	}
	minABV, err := optionalFloat(query, "abv_min")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxABV, err := optionalFloat(query, "abv_max")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if minABV != nil || maxABV != nil {
		// an open end of the range falls back to the ABV limits
		filter.ABVRange = &ingredients.Range{Min: 0, Max: 100}
		if minABV != nil {
			filter.ABVRange.Min = *minABV
		}
		if maxABV != nil {
			filter.ABVRange.Max = *maxABV
		}
	}

	results, err := ingredientRepo.Search(ctx, query.Get("q"), filter)
	metrics.RecordOperation("ingredient", "search", err)
	if err != nil {
		writeRepositoryError(w, r, "search ingredients", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload models.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := validateIngredient(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := ingredientRepo.Add(ctx, payload)
	metrics.RecordOperation("ingredient", "add", err)
	if err != nil {
		writeRepositoryError(w, r, "add ingredient", err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func showIngredient(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	ingredient, err := ingredientRepo.Get(ctx, id)
	metrics.RecordOperation("ingredient", "get", err)
	if err != nil {
		writeRepositoryError(w, r, "load ingredient", err)
		return
	}
	if ingredient == nil {
		applog.Debug(ctx, "ingredient not found", "id", id)
		writeJSONError(w, http.StatusNotFound, "ingredient not found")
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

func updateIngredient(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient update payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updates := make(map[string]any, len(payload))
	for key, value := range payload {
		updates[updateField(key)] = value
	}
	if category, ok := updates["category"]; ok {
		if s, isString := category.(string); !isString || !models.ValidIngredientCategory(s) {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %v", category))
			return
		}
	}

	err := ingredientRepo.Update(ctx, id, updates)
	metrics.RecordOperation("ingredient", "update", err)
	if err != nil {
		writeRepositoryError(w, r, "update ingredient", err)
		return
	}

	ingredient, err := ingredientRepo.Get(ctx, id)
	if err != nil || ingredient == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

// updateField accepts both record field names (costPerUnit) and the JSON
// names of the Ingredient model (cost_per_unit).
func updateField(key string) string {
	if strings.Contains(key, "_") {
		return schema.HeaderToField(key)
	}
	return key
}

func validateIngredient(in models.Ingredient) error {
	if in.Category != "" && !models.ValidIngredientCategory(in.Category) {
		return fmt.Errorf("unknown category %q", in.Category)
	}
	if in.ABV < 0 || in.ABV > 100 {
		return fmt.Errorf("abv must be between 0 and 100")
	}
	if in.ShelfLifeDays != nil && *in.ShelfLifeDays < 0 {
		return fmt.Errorf("shelf_life_days must not be negative")
	}
	return nil
}

func optionalFloat(query url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &value, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
