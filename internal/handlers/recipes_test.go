package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"barkeep/models"
)

func TestRecipeResourceCreateAndScale(t *testing.T) {
	ing, _ := withTestRepositories(t)
	vodka, err := ing.Add(context.Background(), models.Ingredient{Name: "House Vodka", Category: "Vodka", CostPerUnit: 1.5})
	if err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}

	w := doJSON(t, RecipeResource, http.MethodPost, "/api/recipes", map[string]any{
		"name":         "Moscow Mule",
		"category":     "Cocktail",
		"alcoholic":    true,
		"dietary_tags": []string{"vegan"},
		"ingredients": []map[string]any{
			{"ingredient_id": vodka, "quantity": 2, "unit": "oz"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var created createdResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, RecipeResource, http.MethodGet, "/api/recipes/"+created.ID, nil)
	var recipe models.Recipe
	if err := json.Unmarshal(w.Body.Bytes(), &recipe); err != nil {
		t.Fatalf("decode recipe: %v", err)
	}
	if recipe.TotalCost != 3 || recipe.Difficulty != "Beginner" {
		t.Fatalf("recipe = %+v", recipe)
	}

	w = doJSON(t, RecipeResource, http.MethodGet, "/api/recipes/"+created.ID+"/ingredients", nil)
	var lines []models.RecipeIngredient
	if err := json.Unmarshal(w.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode lines: %v", err)
	}
	if len(lines) != 1 || lines[0].CostContribution != 3 || lines[0].OrderSequence != 1 {
		t.Fatalf("lines = %+v", lines)
	}

	w = doJSON(t, RecipeResource, http.MethodGet, "/api/recipes/"+created.ID+"/scale?multiplier=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("scale status = %d, body %s", w.Code, w.Body.String())
	}
	var scaled models.ScaledRecipe
	if err := json.Unmarshal(w.Body.Bytes(), &scaled); err != nil {
		t.Fatalf("decode scaled: %v", err)
	}
	if scaled.TotalCost != 6 || len(scaled.Ingredients) != 1 || scaled.Ingredients[0].Quantity != 4 {
		t.Fatalf("scaled = %+v", scaled)
	}
}

func TestRecipeResourceErrors(t *testing.T) {
	_, rcp := withTestRepositories(t)
	id, err := rcp.Create(context.Background(), models.NewRecipe{Name: "Shot", Category: "Shot"})
	if err != nil {
		t.Fatalf("seed recipe: %v", err)
	}

	tests := []struct {
		name    string
		method  string
		target  string
		payload any
		want    int
	}{
		{"missing name", http.MethodPost, "/api/recipes", map[string]any{"category": "Cocktail"}, http.StatusBadRequest},
		{"unknown category", http.MethodPost, "/api/recipes", map[string]any{"name": "Grog", "category": "Potion"}, http.StatusBadRequest},
		{"unknown difficulty", http.MethodPost, "/api/recipes", map[string]any{"name": "Grog", "category": "Punch", "difficulty": "Impossible"}, http.StatusBadRequest},
		{"unknown unit", http.MethodPost, "/api/recipes", map[string]any{"name": "Grog", "category": "Punch", "ingredients": []map[string]any{{"ingredient_id": "ING_1", "quantity": 1, "unit": "bucket"}}}, http.StatusBadRequest},
		{"malformed payload", http.MethodPost, "/api/recipes", "not an object", http.StatusBadRequest},
		{"missing recipe", http.MethodGet, "/api/recipes/RCP_404", nil, http.StatusNotFound},
		{"scale missing recipe", http.MethodGet, "/api/recipes/RCP_404/scale?multiplier=2", nil, http.StatusNotFound},
		{"scale without multiplier", http.MethodGet, "/api/recipes/" + id + "/scale", nil, http.StatusBadRequest},
		{"scale by negative", http.MethodGet, "/api/recipes/" + id + "/scale?multiplier=-2", nil, http.StatusBadRequest},
		{"scale by zero", http.MethodGet, "/api/recipes/" + id + "/scale?multiplier=0", nil, http.StatusOK},
		{"scale missing recipe by zero", http.MethodGet, "/api/recipes/RCP_404/scale?multiplier=0", nil, http.StatusNotFound},
		{"unknown subresource", http.MethodGet, "/api/recipes/" + id + "/history", nil, http.StatusNotFound},
		{"list not allowed", http.MethodGet, "/api/recipes", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		w := doJSON(t, RecipeResource, tt.method, tt.target, tt.payload)
		if w.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d (body %s)", tt.name, w.Code, tt.want, w.Body.String())
		}
	}
}

func TestRecipeIngredientsEmptyList(t *testing.T) {
	withTestRepositories(t)

	w := doJSON(t, RecipeResource, http.MethodGet, "/api/recipes/RCP_404/ingredients", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Fatalf("body = %q, want empty JSON array", got)
	}
}
