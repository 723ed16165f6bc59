package models

import "time"

// SnapshotInfo describes where a snapshot was loaded from.
type SnapshotInfo struct {
	// Path is the input file path.
	Path string `json:"path"`
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Course is the course code derived from the file name, empty if unknown.
	Course string `json:"course,omitempty"`
	// Date is the snapshot date; zero when it could not be derived.
	Date time.Time `json:"date,omitempty"`
}

// HasDate reports whether a snapshot date was derived.
func (s SnapshotInfo) HasDate() bool {
	return !s.Date.IsZero()
}
