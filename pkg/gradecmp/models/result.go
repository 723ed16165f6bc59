package models

// Snapshot designates which of the two gradebooks a value came from.
type Snapshot string

const (
	Earlier Snapshot = "earlier"
	Later   Snapshot = "later"
)

// WarningKind classifies non-fatal conditions surfaced in the report.
type WarningKind string

const (
	// WarningNoGradableData marks a student without usable grades in a snapshot.
	WarningNoGradableData WarningKind = "no_gradable_data"
	// WarningUnmatchedStudent marks a student found in only one snapshot.
	WarningUnmatchedStudent WarningKind = "unmatched_student"
	// WarningDuplicateStudent marks a repeated identity within one snapshot.
	WarningDuplicateStudent WarningKind = "duplicate_student"
)

// Warning is a non-fatal condition accumulated during a comparison.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Identity string      `json:"identity"`
	Snapshot Snapshot    `json:"snapshot"`
	Message  string      `json:"message"`
}

// ComparisonResult is the scored outcome of reconciling two snapshots.
type ComparisonResult struct {
	// Ranked is sorted by Change descending, ties by Identity ascending.
	Ranked []ReconciledStudent `json:"ranked"`
	// MostImproved holds every student tied for the maximum Change.
	MostImproved []ReconciledStudent `json:"most_improved"`
	// MostDeclined holds every student tied for the minimum Change.
	MostDeclined []ReconciledStudent `json:"most_declined"`
	// Unmatched lists students present in only one snapshot.
	Unmatched []StudentRef `json:"unmatched"`
	// NoData lists matched students lacking usable grades in a snapshot.
	NoData []StudentRef `json:"no_data"`
	// Warnings collects every non-fatal condition in encounter order.
	Warnings []Warning `json:"warnings"`
	// EarlierAssessments and LaterAssessments are the snapshot assessment counts.
	EarlierAssessments int `json:"earlier_assessments"`
	LaterAssessments   int `json:"later_assessments"`
}

// IsMostImproved reports whether key belongs to the most-improved cohort.
func (r *ComparisonResult) IsMostImproved(key string) bool {
	return containsKey(r.MostImproved, key)
}

// IsMostDeclined reports whether key belongs to the most-declined cohort.
func (r *ComparisonResult) IsMostDeclined(key string) bool {
	return containsKey(r.MostDeclined, key)
}

func containsKey(students []ReconciledStudent, key string) bool {
	for _, s := range students {
		if s.Key == key {
			return true
		}
	}
	return false
}
