package reconcile

import (
	"github.com/montanaflynn/stats"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// DefaultPrecision is the number of decimal places means are rounded to before comparison.
const DefaultPrecision = 2

// MatchOptions configures Reconcile.
type MatchOptions struct {
	// Precision rounds snapshot means to this many decimal places. Negative disables rounding.
	Precision int
}

// DefaultMatchOptions returns options rounding to DefaultPrecision places.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{Precision: DefaultPrecision}
}

// Reconciliation is the matched set of two snapshots before scoring.
type Reconciliation struct {
	Students           []models.ReconciledStudent
	Unmatched          []models.StudentRef
	NoData             []models.StudentRef
	Warnings           []models.Warning
	EarlierAssessments int
	LaterAssessments   int
}

// Reconcile joins earlier and later on student identity and computes per-snapshot means.
// It fails with a *ChronologyError when earlier holds more assessments than later.
func Reconcile(earlier, later *models.NormalizedTable, opts MatchOptions) (*Reconciliation, error) {
	earlierCount, laterCount := assessmentCounts(earlier, later)
	if earlierCount > laterCount {
		return nil, &ChronologyError{
			EarlierCount: earlierCount,
			LaterCount:   laterCount,
		}
	}

	rec := &Reconciliation{
		EarlierAssessments: earlierCount,
		LaterAssessments:   laterCount,
	}
	rec.Warnings = append(rec.Warnings, tagWarnings(earlier.Warnings, models.Earlier)...)
	rec.Warnings = append(rec.Warnings, tagWarnings(later.Warnings, models.Later)...)

	laterByKey := make(map[string]models.StudentRecord, len(later.Records))
	for _, r := range later.Records {
		laterByKey[r.Key] = r
	}
	matched := make(map[string]bool, len(earlier.Records))

	for _, e := range earlier.Records {
		l, ok := laterByKey[e.Key]
		if !ok {
			rec.unmatched(e, models.Earlier)
			continue
		}
		matched[e.Key] = true

		em, eok := snapshotMean(e, earlier, opts.Precision)
		lm, lok := snapshotMean(l, later, opts.Precision)
		if !eok {
			rec.noData(e, models.Earlier)
		}
		if !lok {
			rec.noData(l, models.Later)
		}
		if !eok || !lok {
			continue
		}

		rec.Students = append(rec.Students, models.ReconciledStudent{
			Identity:      e.Identity,
			Key:           e.Key,
			EarlierMean:   em,
			LaterMean:     lm,
			EarlierGraded: len(e.ValidGrades()),
			LaterGraded:   len(l.ValidGrades()),
		})
	}

	for _, l := range later.Records {
		if !matched[l.Key] {
			rec.unmatched(l, models.Later)
		}
	}

	return rec, nil
}

func (r *Reconciliation) unmatched(s models.StudentRecord, snap models.Snapshot) {
	r.Unmatched = append(r.Unmatched, models.StudentRef{Identity: s.Identity, Key: s.Key, Snapshot: snap})
	r.Warnings = append(r.Warnings, models.Warning{
		Kind:     models.WarningUnmatchedStudent,
		Identity: s.Identity,
		Snapshot: snap,
		Message:  "student appears only in the " + string(snap) + " snapshot",
	})
}

func (r *Reconciliation) noData(s models.StudentRecord, snap models.Snapshot) {
	r.NoData = append(r.NoData, models.StudentRef{Identity: s.Identity, Key: s.Key, Snapshot: snap})
	r.Warnings = append(r.Warnings, models.Warning{
		Kind:     models.WarningNoGradableData,
		Identity: s.Identity,
		Snapshot: snap,
		Message:  "no usable grades in the " + string(snap) + " snapshot",
	})
}

// snapshotMean is the student's summary grade when the table has one, otherwise the
// mean of valid assessment grades. ok is false when neither is available.
func snapshotMean(s models.StudentRecord, t *models.NormalizedTable, precision int) (float64, bool) {
	if t.SummaryColumn != "" && s.Summary.Valid {
		return round(s.Summary.Value, precision), true
	}
	mean, err := stats.Mean(s.ValidGrades())
	if err != nil {
		return 0, false
	}
	return round(mean, precision), true
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	r, err := stats.Round(v, precision)
	if err != nil {
		return v
	}
	return r
}

func tagWarnings(ws []models.Warning, snap models.Snapshot) []models.Warning {
	out := make([]models.Warning, len(ws))
	for i, w := range ws {
		w.Snapshot = snap
		out[i] = w
	}
	return out
}

// assessmentCounts measures both snapshots the same way: the declared "Graded /NN"
// counts when both tables carry one, otherwise the number of grade columns.
func assessmentCounts(earlier, later *models.NormalizedTable) (int, int) {
	if earlier.HasDeclaredCount && later.HasDeclaredCount {
		return earlier.DeclaredCount, later.DeclaredCount
	}
	return earlier.GradeColumnCount, later.GradeColumnCount
}
