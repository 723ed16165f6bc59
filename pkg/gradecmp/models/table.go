package models

// RawTable is a sheet as read from disk: header names untouched and cells uncoerced.
type RawTable struct {
	// Columns are the header names as read, possibly padded with whitespace.
	Columns []string `json:"columns"`
	// Rows are the data rows below the header.
	Rows []RawRow `json:"rows"`
}

// NormalizedTable is a RawTable with trimmed headers, a designated identity column
// and grade cells coerced to percentages.
type NormalizedTable struct {
	// Columns are the trimmed header names.
	Columns []string `json:"columns"`
	// IdentityColumn names the column keying students.
	IdentityColumn string `json:"identity_column"`
	// GradeColumns lists the assessment columns in sheet order.
	GradeColumns []string `json:"grade_columns"`
	// SummaryColumn is the course-grade column, empty when absent.
	SummaryColumn string `json:"summary_column,omitempty"`
	// GradeColumnCount is len(GradeColumns).
	GradeColumnCount int `json:"grade_column_count"`
	// DeclaredCount is the completed-assessment count read from a "Graded /NN" column.
	// Only meaningful when HasDeclaredCount is set.
	DeclaredCount    int  `json:"declared_count,omitempty"`
	HasDeclaredCount bool `json:"has_declared_count"`
	// Records holds one entry per student row, in sheet order.
	Records []StudentRecord `json:"records"`
	// Warnings collects non-fatal conditions found while normalizing.
	Warnings []Warning `json:"warnings,omitempty"`
}
