package schema

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"barkeep/internal/store"
)

func TestRowToRecord(t *testing.T) {
	t.Parallel()

	headers := []string{"Ingredient_ID", "Name", "Country_of_Origin", "ABV"}
	rec := RowToRecord(store.Row{"ING_1", "Tito's", "USA"}, headers)

	if rec.String("ingredientId") != "ING_1" || rec.String("name") != "Tito's" || rec.String("countryOfOrigin") != "USA" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["abv"]; ok {
		t.Fatalf("missing cell should be absent, got %v", rec["abv"])
	}
	if !math.IsNaN(rec.Float("abv")) {
		t.Fatalf("Float(abv) = %v, want NaN", rec.Float("abv"))
	}
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  float64
		nan   bool
	}{
		{"float", 40.0, 40, false},
		{"int", 3, 3, false},
		{"json number", json.Number("1.25"), 1.25, false},
		{"string", " 37.5 ", 37.5, false},
		{"numeric prefix", "40%", 40, false},
		{"empty", "", 0, true},
		{"text", "strong", 0, true},
		{"nil", nil, 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseFloat(tt.value)
			if tt.nan {
				if !math.IsNaN(got) {
					t.Fatalf("ParseFloat(%#v) = %v, want NaN", tt.value, got)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("ParseFloat(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTypedAccessors(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	rec := Record{
		"alcoholic":   "TRUE",
		"active":      true,
		"garnish":     0.0,
		"critical":    1.0,
		"created":     stamp,
		"updated":     stamp.Format(time.RFC3339Nano),
		"broken":      "yesterday",
		"tags":        "vegan, gluten-free, ,",
		"shelf":       "",
		"shelfSet":    30.0,
		"prep":        "5",
		"unparseable": "soon",
	}

	if !rec.Bool("alcoholic") || !rec.Bool("active") || rec.Bool("garnish") || !rec.Bool("critical") || rec.Bool("missing") {
		t.Fatalf("unexpected bool parsing for %v", rec)
	}
	if !rec.Time("created").Equal(stamp) || !rec.Time("updated").Equal(stamp) {
		t.Fatalf("unexpected time parsing: %v / %v", rec.Time("created"), rec.Time("updated"))
	}
	if !rec.Time("broken").IsZero() {
		t.Fatalf("Time(broken) = %v, want zero", rec.Time("broken"))
	}
	if tags := rec.List("tags"); len(tags) != 2 || tags[0] != "vegan" || tags[1] != "gluten-free" {
		t.Fatalf("List(tags) = %v", tags)
	}
	if rec.OptionalInt("shelf") != nil {
		t.Fatalf("OptionalInt(shelf) = %v, want nil", *rec.OptionalInt("shelf"))
	}
	if got := rec.OptionalInt("shelfSet"); got == nil || *got != 30 {
		t.Fatalf("OptionalInt(shelfSet) = %v, want 30", got)
	}
	if rec.Int("prep") != 5 || rec.Int("unparseable") != 0 {
		t.Fatalf("Int(prep) = %d, Int(unparseable) = %d", rec.Int("prep"), rec.Int("unparseable"))
	}
}
