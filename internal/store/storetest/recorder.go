// Package storetest provides test doubles for store.Backend.
package storetest

import (
	"context"
	"sync"

	"barkeep/internal/store"
)

// Recorder wraps a backend and counts the writes issued against it.
type Recorder struct {
	store.Backend

	mu      sync.Mutex
	appends map[string]int
	writes  map[string]int
	reads   map[string]int
}

// NewRecorder wraps backend.
func NewRecorder(backend store.Backend) *Recorder {
	return &Recorder{
		Backend: backend,
		appends: make(map[string]int),
		writes:  make(map[string]int),
		reads:   make(map[string]int),
	}
}

// Sheet returns a recording handle for name.
func (r *Recorder) Sheet(ctx context.Context, name string) (store.Table, error) {
	table, err := r.Backend.Sheet(ctx, name)
	if err != nil {
		return nil, err
	}
	return &recordingTable{Table: table, rec: r}, nil
}

// Appends returns the number of AppendRow calls made against sheet.
func (r *Recorder) Appends(sheet string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appends[sheet]
}

// Writes returns the number of SetCellValue calls made against sheet.
func (r *Recorder) Writes(sheet string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes[sheet]
}

// Reads returns the number of ReadAll calls made against sheet.
func (r *Recorder) Reads(sheet string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads[sheet]
}

type recordingTable struct {
	store.Table
	rec *Recorder
}

func (t *recordingTable) ReadAll(ctx context.Context) ([]store.Row, error) {
	t.rec.mu.Lock()
	t.rec.reads[t.Name()]++
	t.rec.mu.Unlock()
	return t.Table.ReadAll(ctx)
}

func (t *recordingTable) AppendRow(ctx context.Context, values store.Row) error {
	t.rec.mu.Lock()
	t.rec.appends[t.Name()]++
	t.rec.mu.Unlock()
	return t.Table.AppendRow(ctx, values)
}

func (t *recordingTable) SetCellValue(ctx context.Context, row, col int, value any) error {
	t.rec.mu.Lock()
	t.rec.writes[t.Name()]++
	t.rec.mu.Unlock()
	return t.Table.SetCellValue(ctx, row, col, value)
}
