package models

// Report is the comparison result together with the snapshots it was computed from.
type Report struct {
	// Course is the course label used in titles and file names.
	Course string `json:"course,omitempty"`
	// Earlier and Later describe the two inputs after ordering.
	Earlier SnapshotInfo `json:"earlier"`
	Later   SnapshotInfo `json:"later"`
	// Result is the scored comparison.
	Result *ComparisonResult `json:"result"`
}
