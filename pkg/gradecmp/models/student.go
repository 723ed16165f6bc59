package models

// StudentRecord is one student's grades within a single snapshot.
type StudentRecord struct {
	// Identity is the trimmed display form of the identity cell.
	Identity string `json:"identity"`
	// Key is the matching form of Identity (trimmed, NFC, case-folded).
	Key string `json:"key"`
	// Grades is aligned with NormalizedTable.GradeColumns.
	Grades []Grade `json:"grades"`
	// Summary is the course-grade cell when the table has a summary column.
	Summary Grade `json:"summary"`
}

// ValidGrades returns the values of all valid grades.
func (s StudentRecord) ValidGrades() []float64 {
	out := make([]float64, 0, len(s.Grades))
	for _, g := range s.Grades {
		if g.Valid {
			out = append(out, g.Value)
		}
	}
	return out
}

// ReconciledStudent is a student present in both snapshots with a usable grade in each.
type ReconciledStudent struct {
	Identity    string  `json:"identity"`
	Key         string  `json:"key"`
	EarlierMean float64 `json:"earlier_mean"`
	LaterMean   float64 `json:"later_mean"`
	// Change is LaterMean - EarlierMean in percentage points.
	Change float64 `json:"change"`
	// EarlierGraded and LaterGraded count the valid grades in each snapshot.
	EarlierGraded int `json:"earlier_graded"`
	LaterGraded   int `json:"later_graded"`
	// Rank is the 1-based competition rank by Change (ties share a rank).
	Rank int `json:"rank"`
}

// StudentRef names a student excluded from ranking and the snapshot it was seen in.
type StudentRef struct {
	Identity string   `json:"identity"`
	Key      string   `json:"key"`
	Snapshot Snapshot `json:"snapshot"`
}
