package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sheet is a named table persisted by the SQL backend. Headers holds the
// header row as a JSON array.
type Sheet struct {
	gorm.Model
	Name    string         `gorm:"uniqueIndex;not null" json:"name"`
	Headers datatypes.JSON `json:"headers"`
	Rows    []SheetRow     `gorm:"foreignKey:SheetID" json:"rows,omitempty"`
}

// SheetRow is one data row of a Sheet. Position is the 1-based sheet row
// number (the header row is 0). Cells holds the row as a JSON array.
type SheetRow struct {
	gorm.Model
	SheetID  uint           `gorm:"not null;uniqueIndex:idx_sheet_position" json:"sheet_id"`
	Position int            `gorm:"not null;uniqueIndex:idx_sheet_position" json:"position"`
	Cells    datatypes.JSON `json:"cells"`
}
