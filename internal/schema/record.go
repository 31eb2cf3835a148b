package schema

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"barkeep/internal/store"
)

// leading numeric prefix, so "40%" parses as 40
var numberPrefix = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// Record is a row keyed by field name. Values are stored as read from the
// backend; the accessors parse them.
type Record map[string]any

// RowToRecord zips headers with the cells of row. Cells beyond the header
// row are ignored and missing cells are left out of the record.
func RowToRecord(row store.Row, headers []string) Record {
	rec := make(Record, len(headers))
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		rec[HeaderToField(header)] = row[i]
	}
	return rec
}

// String returns the field rendered as text.
func (r Record) String(field string) string {
	return store.CellString(r[field])
}

// Float parses the field as a number. Absent or unparsable values yield NaN,
// which fails every ordered comparison.
func (r Record) Float(field string) float64 {
	return ParseFloat(r[field])
}

// Int parses the field as a number and truncates it. NaN yields 0.
func (r Record) Int(field string) int {
	f := r.Float(field)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Bool accepts booleans, "true"/"TRUE" style strings and non-zero numbers.
func (r Record) Bool(field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case nil:
		return false
	default:
		f := ParseFloat(v)
		return !math.IsNaN(f) && f != 0
	}
}

// Time accepts time.Time values and RFC 3339 strings. Anything else yields
// the zero time.
func (r Record) Time(field string) time.Time {
	switch v := r[field].(type) {
	case time.Time:
		return v
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}

// List splits a ", " joined field. Empty entries are dropped.
func (r Record) List(field string) []string {
	raw := r.String(field)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// OptionalInt returns nil for an empty cell.
func (r Record) OptionalInt(field string) *int {
	f := r.Float(field)
	if math.IsNaN(f) {
		return nil
	}
	v := int(f)
	return &v
}

// ParseFloat converts a cell value to float64 the way a spreadsheet host's
// parseFloat does: numbers pass through, strings parse their leading numeric
// prefix, everything else is NaN.
func ParseFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(v)
		match := numberPrefix.FindString(trimmed)
		if match == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
