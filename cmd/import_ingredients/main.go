package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"barkeep/internal/config"
	"barkeep/internal/db"
	"barkeep/internal/ingredients"
	"barkeep/internal/schema"
	"barkeep/internal/store"
	"barkeep/models"
)

var (
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

var openStoreFunc = func(ctx context.Context) (store.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return nil, errors.New("DATABASE_URL must be set to import ingredients")
	}
	database, err := db.Configure(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db.NewBackend(database), nil
}

func main() {
	csvPath := "ingredients.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	backend, err := openStoreFunc(ctx)
	if err != nil {
		return err
	}
	if err := schema.Initialize(ctx, backend, false); err != nil {
		return fmt.Errorf("initialize sheets: %w", err)
	}

	repo := ingredients.NewRepository(store.NewAdapter(backend))
	created, updated, err := importRecords(ctx, repo, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d ingredients (%d new, %d updated) from %s\n", created+updated, created, updated, filepath.Base(csvPath))
	return nil
}

// importRecords upserts each record by case-insensitive name.
func importRecords(ctx context.Context, repo *ingredients.Repository, records []map[string]string) (created, updated int, err error) {
	existing, err := repo.ByCategory(ctx, "", ingredients.CategoryFilter{})
	if err != nil {
		return 0, 0, fmt.Errorf("list existing ingredients: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, in := range existing {
		byName[strings.ToLower(in.Name)] = in.ID
	}

	for idx, record := range records {
		ingredient := buildIngredient(record)
		if ingredient.Name == "" {
			continue
		}
		key := strings.ToLower(ingredient.Name)

		if id, ok := byName[key]; ok {
			if err := repo.Update(ctx, id, updatesFor(record)); err != nil {
				return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, ingredient.Name, err)
			}
			updated++
			continue
		}

		id, err := repo.Add(ctx, ingredient)
		if err != nil {
			return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, ingredient.Name, err)
		}
		byName[key] = id
		created++
	}
	return created, updated, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = canonicalHeader(name)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) || key == "" {
				continue
			}
			record[key] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

// canonicalHeader maps a loose CSV column name such as "country of origin" to
// the Enhanced_Ingredients header it names, or "" when none matches.
func canonicalHeader(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	for _, header := range schema.Ingredients.Headers() {
		if strings.EqualFold(header, name) {
			return header
		}
	}
	return ""
}

func buildIngredient(row map[string]string) models.Ingredient {
	in := models.Ingredient{
		Name:                normalizeText(row["Name"]),
		Category:            normalizeValue(row["Category"]),
		Subcategory:         normalizeValue(row["Subcategory"]),
		Brand:               normalizeText(row["Brand"]),
		CountryOfOrigin:     normalizeValue(row["Country_of_Origin"]),
		SpiritsType:         normalizeValue(row["Spirits_Type"]),
		SpiritsStyle:        normalizeValue(row["Spirits_Style"]),
		ABV:                 parseFirstNumber(row["ABV"]),
		TasteProfile:        normalizeText(row["Taste_Profile"]),
		BodyStyle:           normalizeValue(row["Body_Style"]),
		SKU:                 normalizeValue(row["SKU"]),
		SizeVolume:          normalizeValue(row["Size_Volume"]),
		Description:         normalizeText(row["Description"]),
		StorageRequirements: normalizeText(row["Storage_Requirements"]),
		CostPerUnit:         parseFirstNumber(row["Cost_Per_Unit"]),
		SupplierID:          normalizeValue(row["Supplier_ID"]),
	}
	if days := normalizeValue(row["Shelf_Life_Days"]); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			in.ShelfLifeDays = &n
		}
	}
	return in
}

// updatesFor converts the non-empty updatable cells of row into an Update
// field map. Id and timestamp columns are never carried over.
func updatesFor(row map[string]string) map[string]any {
	updates := make(map[string]any)
	for header, raw := range row {
		value := normalizeText(raw)
		if value == "" {
			continue
		}
		field := schema.HeaderToField(header)
		col, ok := schema.Ingredients.Column(field)
		if !ok || !col.Updatable {
			continue
		}
		switch col.Kind {
		case schema.KindNumber:
			updates[field] = parseFirstNumber(value)
		case schema.KindInteger:
			if n, err := strconv.Atoi(value); err == nil {
				updates[field] = n
			}
		default:
			updates[field] = value
		}
	}
	return updates
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

func parseFirstNumber(value string) float64 {
	value = normalizeValue(value)
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(value)
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}
