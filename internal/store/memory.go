package store

import (
	"context"
	"fmt"
	"sync"

	"barkeep/internal/errs"
)

// Memory is an in-process Backend. It is used by tests and when no database
// is configured.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string]*memorySheet
}

type memorySheet struct {
	owner *Memory
	name  string
	rows  []Row
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]*memorySheet)}
}

func (m *Memory) Sheet(_ context.Context, name string) (Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sheet, ok := m.sheets[name]
	if !ok {
		return nil, errs.NotFound("sheet", name)
	}
	return sheet, nil
}

func (m *Memory) CreateSheet(_ context.Context, name string, headers []string) (Table, error) {
	header := make(Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sheet := &memorySheet{owner: m, name: name, rows: []Row{header}}
	m.sheets[name] = sheet
	return sheet, nil
}

func (s *memorySheet) Name() string { return s.name }

func (s *memorySheet) ReadAll(_ context.Context) ([]Row, error) {
	s.owner.mu.RLock()
	defer s.owner.mu.RUnlock()
	out := make([]Row, len(s.rows))
	for i, row := range s.rows {
		out[i] = append(Row(nil), row...)
	}
	return out, nil
}

func (s *memorySheet) AppendRow(_ context.Context, values Row) error {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	s.rows = append(s.rows, append(Row(nil), values...))
	return nil
}

func (s *memorySheet) SetCellValue(_ context.Context, row, col int, value any) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("cell (%d, %d) out of range", row, col)
	}

	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	for len(s.rows) <= row {
		s.rows = append(s.rows, Row{})
	}
	for len(s.rows[row]) <= col {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][col] = value
	return nil
}
