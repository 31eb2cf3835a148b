package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"barkeep/internal/errs"
	applog "barkeep/internal/log"
	"barkeep/internal/store"
)

// ErrHeaderMismatch is returned by Initialize when an existing sheet carries a
// different header row than its declared layout.
var ErrHeaderMismatch = errors.New("sheet header mismatch")

// Initialize creates every missing sheet with its header row. With reset set,
// every sheet is re-created and its rows discarded.
func Initialize(ctx context.Context, backend store.Backend, reset bool) error {
	adapter := store.NewAdapter(backend)
	for _, table := range All() {
		if !reset {
			headers, _, err := adapter.ReadAll(ctx, table.Name)
			switch {
			case err == nil:
				if !slices.Equal(headers, table.Headers()) {
					return fmt.Errorf("%w: %s has %v", ErrHeaderMismatch, table.Name, headers)
				}
				applog.Debug(ctx, "sheet already initialized", "sheet", table.Name)
				continue
			case !errors.Is(err, errs.ErrNotFound):
				return fmt.Errorf("inspect %s: %w", table.Name, err)
			}
		}

		if _, err := backend.CreateSheet(ctx, table.Name, table.Headers()); err != nil {
			return fmt.Errorf("create %s: %w", table.Name, err)
		}
		applog.Info(ctx, "sheet initialized", "sheet", table.Name, "columns", len(table.Columns))
	}
	return nil
}

// Ready fails with the first sheet that is missing from backend.
func Ready(ctx context.Context, backend store.Backend) error {
	names := make([]string, 0, len(All()))
	for _, table := range All() {
		names = append(names, table.Name)
	}
	return store.NewAdapter(backend).Require(ctx, names...)
}
