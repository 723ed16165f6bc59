// Package models defines data structures for gradebook comparison.
package models

// RawRow is one data row of a sheet, aligned positionally with RawTable.Columns.
// Each cell is nil (empty), string, int64 or float64.
type RawRow []interface{}

// Value returns the cell at column index i, or nil when the row is short.
func (r RawRow) Value(i int) interface{} {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// Grade is a normalized assessment grade in percent.
type Grade struct {
	// Value is the grade in [0, 100]. Meaningless when Valid is false.
	Value float64 `json:"value"`
	// Valid is false for empty, negative or non-numeric cells.
	Valid bool `json:"valid"`
}

// Missing is the zero Grade.
var Missing = Grade{}
