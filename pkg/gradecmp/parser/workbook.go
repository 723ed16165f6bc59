// Package parser reads gradebook snapshots from Excel files.
package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoTable indicates a sheet without a detectable gradebook table.
var ErrNoTable = errors.New("no table found in sheet")

// Sheet is one gradebook table read from a workbook.
type Sheet struct {
	// Name is the sheet the table was read from.
	Name string
	// Range is the detected table range, e.g. "A1:F31".
	Range string
	// Table is the raw header and cell data.
	Table models.RawTable
}

// ReadSheet reads the gradebook table from sheetName, or from the first sheet
// when sheetName is empty.
func ReadSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoTable
		}
		sheetName = sheets[0]
	}

	// Raw values keep fractions such as 0.85 intact instead of the "85%" display text.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	bounds, ok := DetectTable(rows, DefaultTableParams())
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, ErrNoTable)
	}

	return &Sheet{
		Name:  sheetName,
		Range: bounds.Range(),
		Table: ExtractTable(rows, bounds),
	}, nil
}
