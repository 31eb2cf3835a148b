// Package store is the thin boundary between the repositories and a tabular
// backend: named sheets of rows where row 0 holds the headers.
package store

import (
	"context"
)

// Row is an ordered sequence of cell values.
type Row []any

// Backend exposes the sheets of a tabular store.
type Backend interface {
	// Sheet returns the named sheet, or an errs.NotFoundError when it does not exist.
	Sheet(ctx context.Context, name string) (Table, error)
	// CreateSheet creates the named sheet, replacing any existing content, and
	// writes headers as row 0.
	CreateSheet(ctx context.Context, name string, headers []string) (Table, error)
}

// Table is a handle on a single sheet. Row coordinates are sheet coordinates:
// row 0 is the header row.
type Table interface {
	Name() string
	ReadAll(ctx context.Context) ([]Row, error)
	AppendRow(ctx context.Context, values Row) error
	SetCellValue(ctx context.Context, row, col int, value any) error
}
