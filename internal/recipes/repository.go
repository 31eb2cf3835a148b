// Package recipes manages the Recipes sheet and its Recipe_Ingredients join rows.
package recipes

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"barkeep/internal/errs"
	"barkeep/internal/ids"
	applog "barkeep/internal/log"
	"barkeep/internal/schema"
	"barkeep/internal/store"
	"barkeep/models"
)

// IngredientLookup resolves ingredients for costing. *ingredients.Repository
// satisfies it.
type IngredientLookup interface {
	Get(ctx context.Context, id string) (*models.Ingredient, error)
}

// Repository provides recipe creation, lookup and scaling.
type Repository struct {
	store       *store.Adapter
	ingredients IngredientLookup
	ids         ids.Generator
	now         func() time.Time
}

// Option customizes a Repository.
type Option func(*Repository)

// WithIDGenerator replaces the id generator.
func WithIDGenerator(gen ids.Generator) Option {
	return func(r *Repository) { r.ids = gen }
}

// WithNowFunc replaces the clock used for timestamps.
func WithNowFunc(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository returns a Repository over adapter that prices ingredients
// through lookup.
func NewRepository(adapter *store.Adapter, lookup IngredientLookup, opts ...Option) *Repository {
	r := &Repository{
		store:       adapter,
		ingredients: lookup,
		ids:         ids.New(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a recipe and one relationship row per listed ingredient and
// returns the recipe id. The total cost is computed once here and stored in
// Cost_Per_Serving.
func (r *Repository) Create(ctx context.Context, in models.NewRecipe) (string, error) {
	if err := r.store.Require(ctx, schema.RecipesSheet, schema.RecipeIngredientsSheet); err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}
	if strings.TrimSpace(in.Name) == "" {
		return "", errs.Invalid("name", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return "", errs.Invalid("category", "is required")
	}

	total := decimal.Zero
	for _, line := range in.Ingredients {
		cost, err := r.lineCost(ctx, line.IngredientID, line.Quantity)
		if err != nil {
			return "", fmt.Errorf("create recipe: %w", err)
		}
		total = total.Add(cost)
	}

	id := r.ids.Generate(ids.RecipePrefix)
	now := r.now()

	rec := schema.Record{
		"recipeId":        id,
		"recipeName":      in.Name,
		"description":     in.Description,
		"category":        in.Category,
		"prepTimeMinutes": in.PrepTimeMinutes,
		"costPerServing":  total.InexactFloat64(),
		"alcoholic":       in.Alcoholic,
		"dietaryTags":     strings.Join(in.DietaryTags, ", "),
		"instructions":    in.Instructions,
		"createdDate":     now,
		"updatedDate":     now,
	}
	if in.Difficulty != "" {
		rec["difficultyLevel"] = in.Difficulty
	}
	if in.ServingSize > 0 {
		rec["servingSize"] = in.ServingSize
	}

	relationships := make([]store.Row, len(in.Ingredients))
	for i, line := range in.Ingredients {
		row, err := r.relationshipRow(ctx, id, i+1, line)
		if err != nil {
			return "", fmt.Errorf("create recipe: %w", err)
		}
		relationships[i] = row
	}

	// every row is built before the first append, so a lookup failure writes nothing
	if err := r.store.AppendRow(ctx, schema.RecipesSheet, schema.Recipes.BuildRow(rec)); err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}
	for i, row := range relationships {
		if err := r.store.AppendRow(ctx, schema.RecipeIngredientsSheet, row); err != nil {
			return "", fmt.Errorf("create recipe %s line %d: %w", id, i+1, err)
		}
	}

	applog.Info(ctx, "recipe created", "id", id, "name", in.Name, "ingredients", len(in.Ingredients))
	return id, nil
}

// relationshipRow prices the line again rather than reusing the totals pass.
func (r *Repository) relationshipRow(ctx context.Context, recipeID string, order int, line models.RecipeIngredientLine) (store.Row, error) {
	cost, err := r.lineCost(ctx, line.IngredientID, line.Quantity)
	if err != nil {
		return nil, err
	}

	rec := schema.Record{
		"relationshipId":      r.ids.Generate(ids.RelationshipPrefix),
		"recipeId":            recipeID,
		"ingredientId":        line.IngredientID,
		"quantity":            line.Quantity,
		"unit":                line.Unit,
		"preparationMethod":   line.PreparationMethod,
		"substitutionAllowed": line.SubstitutionAllowed,
		"garnishFlag":         line.Garnish,
		"criticalIngredient":  line.Critical,
		"costContribution":    cost.InexactFloat64(),
		"orderSequence":       order,
	}
	return schema.RecipeIngredients.BuildRow(rec), nil
}

// lineCost is cost per unit times quantity. Unknown ingredients and ingredients
// without a cost contribute zero.
func (r *Repository) lineCost(ctx context.Context, ingredientID string, quantity float64) (decimal.Decimal, error) {
	ingredient, err := r.ingredients.Get(ctx, ingredientID)
	if err != nil {
		return decimal.Zero, err
	}
	if ingredient == nil || ingredient.CostPerUnit == 0 || !finite(quantity) {
		return decimal.Zero, nil
	}
	return decimal.NewFromFloat(ingredient.CostPerUnit).Mul(decimal.NewFromFloat(quantity)), nil
}

// Get returns the recipe with id, or nil when there is none.
func (r *Repository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	headers, rows, err := r.store.ReadAll(ctx, schema.RecipesSheet)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	for _, row := range rows {
		rec := schema.RowToRecord(row, headers)
		if rec.String("recipeId") == id {
			recipe := recipeFromRecord(rec)
			return &recipe, nil
		}
	}
	return nil, nil
}

// Ingredients returns the relationship rows of recipeID in stored order.
func (r *Repository) Ingredients(ctx context.Context, recipeID string) ([]models.RecipeIngredient, error) {
	headers, rows, err := r.store.ReadAll(ctx, schema.RecipeIngredientsSheet)
	if err != nil {
		return nil, fmt.Errorf("recipe ingredients: %w", err)
	}

	results := make([]models.RecipeIngredient, 0)
	for _, row := range rows {
		rec := schema.RowToRecord(row, headers)
		if rec.String("recipeId") != recipeID {
			continue
		}
		results = append(results, relationshipFromRecord(rec))
	}
	return results, nil
}

// Scale returns the recipe with every quantity, cost contribution and the
// serving size multiplied by multiplier. The total is the sum of the scaled
// contributions. Nothing is written back. A missing recipe is reported
// before the multiplier is checked; zero is accepted, negative and
// non-finite multipliers are not.
func (r *Repository) Scale(ctx context.Context, id string, multiplier float64) (*models.ScaledRecipe, error) {
	recipe, err := r.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("scale recipe: %w", err)
	}
	if recipe == nil {
		return nil, errs.NotFound("recipe", id)
	}
	if !finite(multiplier) || multiplier < 0 {
		return nil, errs.Invalid("multiplier", "must be a non-negative number")
	}
	lines, err := r.Ingredients(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("scale recipe: %w", err)
	}

	factor := decimal.NewFromFloat(multiplier)
	total := decimal.Zero
	scaled := make([]models.RecipeIngredient, len(lines))
	for i, line := range lines {
		contribution := decimal.NewFromFloat(line.CostContribution).Mul(factor)
		line.Quantity = decimal.NewFromFloat(line.Quantity).Mul(factor).InexactFloat64()
		line.CostContribution = contribution.InexactFloat64()
		total = total.Add(contribution)
		scaled[i] = line
	}

	out := &models.ScaledRecipe{
		Recipe:      *recipe,
		Multiplier:  multiplier,
		Ingredients: scaled,
	}
	out.ServingSize = decimal.NewFromFloat(recipe.ServingSize).Mul(factor).InexactFloat64()
	out.TotalCost = total.InexactFloat64()

	applog.Debug(ctx, "recipe scaled", "id", id, "multiplier", multiplier)
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func numberOrZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

func recipeFromRecord(rec schema.Record) models.Recipe {
	return models.Recipe{
		ID:              rec.String("recipeId"),
		Name:            rec.String("recipeName"),
		Description:     rec.String("description"),
		Category:        rec.String("category"),
		Difficulty:      rec.String("difficultyLevel"),
		ServingSize:     numberOrZero(rec.Float("servingSize")),
		PrepTimeMinutes: rec.Int("prepTimeMinutes"),
		TotalCost:       numberOrZero(rec.Float("costPerServing")),
		Alcoholic:       rec.Bool("alcoholic"),
		DietaryTags:     rec.List("dietaryTags"),
		Instructions:    rec.String("instructions"),
		CreatedAt:       rec.Time("createdDate"),
		UpdatedAt:       rec.Time("updatedDate"),
		Version:         rec.String("version"),
		Active:          rec.Bool("active"),
	}
}

func relationshipFromRecord(rec schema.Record) models.RecipeIngredient {
	return models.RecipeIngredient{
		ID:                  rec.String("relationshipId"),
		RecipeID:            rec.String("recipeId"),
		IngredientID:        rec.String("ingredientId"),
		Quantity:            numberOrZero(rec.Float("quantity")),
		Unit:                rec.String("unit"),
		PreparationMethod:   rec.String("preparationMethod"),
		SubstitutionAllowed: rec.Bool("substitutionAllowed"),
		Garnish:             rec.Bool("garnishFlag"),
		Critical:            rec.Bool("criticalIngredient"),
		CostContribution:    numberOrZero(rec.Float("costContribution")),
		OrderSequence:       rec.Int("orderSequence"),
	}
}
