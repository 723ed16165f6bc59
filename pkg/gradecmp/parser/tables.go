package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 2,
	}
}

// TableBounds locates a gradebook table within a sheet (0-based, inclusive).
type TableBounds struct {
	HeaderRow int
	LastRow   int
	FirstCol  int
	LastCol   int
}

// Range renders the bounds in Excel range notation (e.g., "A1:D10").
func (b TableBounds) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(b.FirstCol+1, b.HeaderRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.LastCol+1, b.LastRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DetectTable finds the table-like region of a sheet. The first non-empty row is taken
// as the header. ok is false when the sheet holds too little data to be a gradebook.
func DetectTable(rows [][]string, params TableDetectionParams) (TableBounds, bool) {
	if len(rows) == 0 {
		return TableBounds{}, false
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return TableBounds{}, false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)

	if nonEmptyCells < params.MinNonemptyCells {
		return TableBounds{}, false
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return TableBounds{}, false
	}

	return TableBounds{
		HeaderRow: minRow,
		LastRow:   maxRow,
		FirstCol:  minCol,
		LastCol:   maxCol,
	}, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
