// Package ingredients reads and writes the Enhanced_Ingredients sheet.
package ingredients

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"barkeep/internal/errs"
	"barkeep/internal/ids"
	applog "barkeep/internal/log"
	"barkeep/internal/schema"
	"barkeep/internal/store"
	"barkeep/models"
)

// CategoryFilter narrows ByCategory. Nil bounds are not applied.
type CategoryFilter struct {
	ABVMin  *float64
	ABVMax  *float64
	Country string
}

// Range is an inclusive numeric range.
type Range struct {
	Min float64
	Max float64
}

// SearchFilter narrows Search. Empty slices and a nil range are not applied.
type SearchFilter struct {
	Categories []string
	ABVRange   *Range
	Suppliers  []string
}

// Repository provides ingredient queries and mutations.
type Repository struct {
	store *store.Adapter
	ids   ids.Generator
	now   func() time.Time
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

// NewRepository returns a Repository over adapter.
func NewRepository(adapter *store.Adapter, opts ...Option) *Repository {
	r := &Repository{
		store: adapter,
		ids:   ids.New(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ByCategory returns the ingredients whose category equals category. An
// empty category matches every row. ABV bounds are inclusive; a row whose
// ABV does not parse passes both bounds.
func (r *Repository) ByCategory(ctx context.Context, category string, filter CategoryFilter) ([]models.Ingredient, error) {
	headers, rows, err := r.store.ReadAll(ctx, schema.IngredientsSheet)
	if err != nil {
		return nil, fmt.Errorf("ingredients by category: %w", err)
	}
	if store.IndexOf(headers, "Category") == -1 {
		return nil, fmt.Errorf("ingredients by category: Category column not found")
	}

	results := make([]models.Ingredient, 0)
	for _, row := range rows {
		rec := schema.RowToRecord(row, headers)
		if category != "" && rec.String("category") != category {
			continue
		}
		abv := rec.Float("abv")
		if filter.ABVMin != nil && abv < *filter.ABVMin {
			continue
		}
		if filter.ABVMax != nil && abv > *filter.ABVMax {
			continue
		}
		if filter.Country != "" && rec.String("countryOfOrigin") != filter.Country {
			continue
		}
		results = append(results, fromRecord(rec))
	}

	applog.Debug(ctx, "ingredients listed by category", "category", category, "count", len(results))
	return results, nil
}

// Search matches term case-insensitively against name, brand, taste profile,
// description, category and subcategory, then applies filter. When an ABV
// range is given, rows without a numeric ABV are excluded.
func (r *Repository) Search(ctx context.Context, term string, filter SearchFilter) ([]models.Ingredient, error) {
	headers, rows, err := r.store.ReadAll(ctx, schema.IngredientsSheet)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}

	needle := strings.ToLower(term)
	results := make([]models.Ingredient, 0)
	for _, row := range rows {
		rec := schema.RowToRecord(row, headers)
		if !matchesTerm(rec, needle) {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, rec.String("category")) {
			continue
		}
		if filter.ABVRange != nil {
			// NaN fails both comparisons
			abv := rec.Float("abv")
			if !(abv >= filter.ABVRange.Min && abv <= filter.ABVRange.Max) {
				continue
			}
		}
		if len(filter.Suppliers) > 0 && !slices.Contains(filter.Suppliers, rec.String("supplierId")) {
			continue
		}
		results = append(results, fromRecord(rec))
	}

	applog.Debug(ctx, "ingredients searched", "term", term, "count", len(results))
	return results, nil
}

func matchesTerm(rec schema.Record, needle string) bool {
	for _, field := range []string{"name", "brand", "tasteProfile", "description", "category", "subcategory"} {
		value := rec.String(field)
		if value != "" && strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

// Add appends a new ingredient and returns its generated id. Name and
// category are required.
func (r *Repository) Add(ctx context.Context, in models.Ingredient) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", errs.Invalid("name", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return "", errs.Invalid("category", "is required")
	}

	id := r.ids.Generate(ids.IngredientPrefix)
	now := r.now()

	rec := toRecord(in)
	rec["ingredientId"] = id
	rec["createdDate"] = now
	rec["updatedDate"] = now

	if err := r.store.AppendRow(ctx, schema.IngredientsSheet, schema.Ingredients.BuildRow(rec)); err != nil {
		return "", fmt.Errorf("add ingredient: %w", err)
	}

	applog.Info(ctx, "ingredient added", "id", id, "name", in.Name)
	return id, nil
}

// Update overwrites the cells named by updates on the ingredient with id.
// Keys are record field names; keys that do not resolve to an updatable
// column are skipped, so the id and Created_Date are never rewritten.
// Updated_Date is refreshed even when updates is empty.
func (r *Repository) Update(ctx context.Context, id string, updates map[string]any) error {
	rowIndex, found, err := r.store.FindRowIndexByKey(ctx, schema.IngredientsSheet, schema.Ingredients.Key().Header, id)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if !found {
		return errs.NotFound("ingredient", id)
	}

	headers, _, err := r.store.ReadAll(ctx, schema.IngredientsSheet)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		header := schema.Ingredients.HeaderForField(field)
		if column, ok := schema.Ingredients.Column(schema.HeaderToField(header)); !ok || !column.Updatable {
			applog.Debug(ctx, "ingredient update skipped read-only field", "id", id, "field", field)
			continue
		}
		col := store.IndexOf(headers, header)
		if col == -1 {
			applog.Debug(ctx, "ingredient update skipped unknown field", "id", id, "field", field)
			continue
		}
		if err := r.store.SetCell(ctx, schema.IngredientsSheet, rowIndex, col, updates[field]); err != nil {
			return fmt.Errorf("update ingredient %s field %s: %w", id, field, err)
		}
	}

	if col := store.IndexOf(headers, "Updated_Date"); col != -1 {
		if err := r.store.SetCell(ctx, schema.IngredientsSheet, rowIndex, col, r.now()); err != nil {
			return fmt.Errorf("update ingredient %s timestamp: %w", id, err)
		}
	}

	applog.Info(ctx, "ingredient updated", "id", id, "fields", len(fields))
	return nil
}

// Get returns the ingredient with id, or nil when there is none.
func (r *Repository) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	headers, rows, err := r.store.ReadAll(ctx, schema.IngredientsSheet)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	for _, row := range rows {
		rec := schema.RowToRecord(row, headers)
		if rec.String("ingredientId") == id {
			ingredient := fromRecord(rec)
			return &ingredient, nil
		}
	}
	return nil, nil
}

func fromRecord(rec schema.Record) models.Ingredient {
	abv := rec.Float("abv")
	if math.IsNaN(abv) {
		abv = 0
	}
	cost := rec.Float("costPerUnit")
	if math.IsNaN(cost) {
		cost = 0
	}
	return models.Ingredient{
		ID:                  rec.String("ingredientId"),
		Name:                rec.String("name"),
		Category:            rec.String("category"),
		Subcategory:         rec.String("subcategory"),
		Brand:               rec.String("brand"),
		CountryOfOrigin:     rec.String("countryOfOrigin"),
		SpiritsType:         rec.String("spiritsType"),
		SpiritsStyle:        rec.String("spiritsStyle"),
		ABV:                 abv,
		TasteProfile:        rec.String("tasteProfile"),
		BodyStyle:           rec.String("bodyStyle"),
		SKU:                 rec.String("sku"),
		SizeVolume:          rec.String("sizeVolume"),
		Description:         rec.String("description"),
		StorageRequirements: rec.String("storageRequirements"),
		ShelfLifeDays:       rec.OptionalInt("shelfLifeDays"),
		CostPerUnit:         cost,
		SupplierID:          rec.String("supplierId"),
		CreatedAt:           rec.Time("createdDate"),
		UpdatedAt:           rec.Time("updatedDate"),
	}
}

func toRecord(in models.Ingredient) schema.Record {
	rec := schema.Record{
		"name":                in.Name,
		"category":            in.Category,
		"subcategory":         in.Subcategory,
		"brand":               in.Brand,
		"countryOfOrigin":     in.CountryOfOrigin,
		"spiritsType":         in.SpiritsType,
		"spiritsStyle":        in.SpiritsStyle,
		"abv":                 in.ABV,
		"tasteProfile":        in.TasteProfile,
		"bodyStyle":           in.BodyStyle,
		"sku":                 in.SKU,
		"sizeVolume":          in.SizeVolume,
		"description":         in.Description,
		"storageRequirements": in.StorageRequirements,
		"costPerUnit":         in.CostPerUnit,
		"supplierId":          in.SupplierID,
	}
	if in.ShelfLifeDays != nil {
		rec["shelfLifeDays"] = *in.ShelfLifeDays
	}
	return rec
}
