package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// ExtractTable converts sheet rows into a RawTable. The first row inside bounds is the
// header; rows without any non-empty cell are skipped.
func ExtractTable(rows [][]string, bounds TableBounds) models.RawTable {
	header := rows[bounds.HeaderRow]
	width := bounds.LastCol - bounds.FirstCol + 1

	table := models.RawTable{Columns: make([]string, width)}
	for colIdx := 0; colIdx < width; colIdx++ {
		if c := bounds.FirstCol + colIdx; c < len(header) {
			table.Columns[colIdx] = header[c]
		}
	}

	for rowIdx := bounds.HeaderRow + 1; rowIdx <= bounds.LastRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		raw := make(models.RawRow, width)
		hasData := false

		for colIdx := 0; colIdx < width; colIdx++ {
			c := bounds.FirstCol + colIdx
			if c >= len(row) || strings.TrimSpace(row[c]) == "" {
				continue
			}
			hasData = true
			raw[colIdx] = parseValue(row[c])
		}

		if hasData {
			table.Rows = append(table.Rows, raw)
		}
	}

	return table
}

// numberPattern is the plain decimal syntax accepted as a number. Spellings such as
// "NaN" or "Inf" that strconv would also accept stay text.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Integers written with leading zeros, like the ID "00123", are kept as text.
func parseValue(s string) interface{} {
	if !numberPattern.MatchString(s) {
		return s
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) != strings.TrimPrefix(s, "+") {
			return s
		}
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
