package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Adapter performs table-level operations by sheet name. It never caches:
// every call re-reads the sheet from the backend. Writes through one Adapter
// are serialized; read-modify-write sequences in callers are not atomic.
type Adapter struct {
	backend Backend
	writeMu sync.Mutex
}

// NewAdapter wraps backend.
func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

// ReadAll returns the header row and the data rows of table.
func (a *Adapter) ReadAll(ctx context.Context, table string) ([]string, []Row, error) {
	sheet, err := a.backend.Sheet(ctx, table)
	if err != nil {
		return nil, nil, err
	}
	rows, err := sheet.ReadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = CellString(cell)
	}
	return headers, rows[1:], nil
}

// AppendRow appends values after the last row of table. No uniqueness check is made.
func (a *Adapter) AppendRow(ctx context.Context, table string, values Row) error {
	sheet, err := a.backend.Sheet(ctx, table)
	if err != nil {
		return err
	}
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if err := sheet.AppendRow(ctx, values); err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

// SetCell writes a single cell. rowIndex is the 0-based index of a data row
// as returned by ReadAll; colIndex is the 0-based header index.
func (a *Adapter) SetCell(ctx context.Context, table string, rowIndex, colIndex int, value any) error {
	sheet, err := a.backend.Sheet(ctx, table)
	if err != nil {
		return err
	}
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	if err := sheet.SetCellValue(ctx, rowIndex+1, colIndex, value); err != nil {
		return fmt.Errorf("set %s[%d][%d]: %w", table, rowIndex, colIndex, err)
	}
	return nil
}

// FindRowIndexByKey returns the data-row index of the first row whose keyHeader
// cell equals key.
func (a *Adapter) FindRowIndexByKey(ctx context.Context, table, keyHeader, key string) (int, bool, error) {
	headers, rows, err := a.ReadAll(ctx, table)
	if err != nil {
		return 0, false, err
	}
	col := IndexOf(headers, keyHeader)
	if col == -1 {
		return 0, false, fmt.Errorf("%s: column %s not found", table, keyHeader)
	}
	for i, row := range rows {
		if col < len(row) && CellString(row[col]) == key {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// Require fails with the first missing sheet among tables.
func (a *Adapter) Require(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := a.backend.Sheet(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

// IndexOf returns the position of header in headers, or -1.
func IndexOf(headers []string, header string) int {
	for i, h := range headers {
		if h == header {
			return i
		}
	}
	return -1
}

// CellString renders a cell value as text. nil renders as the empty string.
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
