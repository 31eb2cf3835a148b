package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"barkeep/internal/errs"
	"barkeep/internal/store"
	"barkeep/models"
)

// Backend stores sheets in the sheets and sheet_rows tables. Cells are kept as
// JSON arrays; numbers come back as json.Number and times as RFC 3339 strings.
type Backend struct {
	db *gorm.DB
}

// NewBackend returns a store.Backend over db. The sheet tables must already
// be migrated.
func NewBackend(db *gorm.DB) *Backend {
	return &Backend{db: db}
}

func (b *Backend) Sheet(ctx context.Context, name string) (store.Table, error) {
	var sheet models.Sheet
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&sheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("sheet", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load sheet %s: %w", name, err)
	}
	return &sqlTable{db: b.db, id: sheet.ID, name: name}, nil
}

// CreateSheet creates name with headers, discarding any existing rows.
func (b *Backend) CreateSheet(ctx context.Context, name string, headers []string) (store.Table, error) {
	encoded, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("encode headers: %w", err)
	}

	var sheet models.Sheet
	err = b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("name = ?", name).First(&sheet).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sheet = models.Sheet{Name: name, Headers: datatypes.JSON(encoded)}
			return tx.Create(&sheet).Error
		case err != nil:
			return err
		}

		if err := tx.Unscoped().Where("sheet_id = ?", sheet.ID).Delete(&models.SheetRow{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Model(&sheet).Updates(map[string]any{
			"headers":    datatypes.JSON(encoded),
			"deleted_at": nil,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}
	return &sqlTable{db: b.db, id: sheet.ID, name: name}, nil
}

type sqlTable struct {
	db   *gorm.DB
	id   uint
	name string
}

func (t *sqlTable) Name() string { return t.name }

func (t *sqlTable) ReadAll(ctx context.Context) ([]store.Row, error) {
	var sheet models.Sheet
	if err := t.db.WithContext(ctx).First(&sheet, t.id).Error; err != nil {
		return nil, err
	}
	var stored []models.SheetRow
	if err := t.db.WithContext(ctx).Where("sheet_id = ?", t.id).Order("position").Find(&stored).Error; err != nil {
		return nil, err
	}

	header, err := decodeCells(sheet.Headers)
	if err != nil {
		return nil, fmt.Errorf("decode headers: %w", err)
	}
	rows := []store.Row{header}
	for _, r := range stored {
		// positions are dense unless a cell was written past the last row
		for len(rows) < r.Position {
			rows = append(rows, store.Row{})
		}
		cells, err := decodeCells(r.Cells)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", r.Position, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (t *sqlTable) AppendRow(ctx context.Context, values store.Row) error {
	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.SheetRow{}).
			Where("sheet_id = ?", t.id).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		return tx.Create(&models.SheetRow{
			SheetID:  t.id,
			Position: last + 1,
			Cells:    datatypes.JSON(encoded),
		}).Error
	})
}

// SetCellValue writes one cell. Row 0 is the header row; rows and columns past
// the current extent are created.
func (t *sqlTable) SetCellValue(ctx context.Context, row, col int, value any) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("cell (%d, %d) out of range", row, col)
	}
	if row == 0 {
		return t.setHeader(ctx, col, value)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.SheetRow
		err := tx.Where("sheet_id = ? AND position = ?", t.id, row).First(&stored).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			stored = models.SheetRow{SheetID: t.id, Position: row}
		case err != nil:
			return err
		}

		cells, err := decodeCells(stored.Cells)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(setCell(cells, col, value))
		if err != nil {
			return err
		}
		stored.Cells = datatypes.JSON(encoded)
		return tx.Save(&stored).Error
	})
}

func (t *sqlTable) setHeader(ctx context.Context, col int, value any) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sheet models.Sheet
		if err := tx.First(&sheet, t.id).Error; err != nil {
			return err
		}
		cells, err := decodeCells(sheet.Headers)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(setCell(cells, col, value))
		if err != nil {
			return err
		}
		return tx.Model(&sheet).Update("headers", datatypes.JSON(encoded)).Error
	})
}

func setCell(cells store.Row, col int, value any) store.Row {
	for len(cells) <= col {
		cells = append(cells, "")
	}
	cells[col] = value
	return cells
}

func decodeCells(raw datatypes.JSON) (store.Row, error) {
	if len(raw) == 0 {
		return store.Row{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var cells []any
	if err := dec.Decode(&cells); err != nil {
		return nil, err
	}
	return store.Row(cells), nil
}
