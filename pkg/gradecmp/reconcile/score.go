package reconcile

import (
	"sort"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// Score computes grade change per student, ranks students and extracts the
// most-improved and most-declined cohorts. An empty match set yields an empty result.
func Score(rec *Reconciliation, precision int) *models.ComparisonResult {
	res := &models.ComparisonResult{
		Ranked:             make([]models.ReconciledStudent, len(rec.Students)),
		MostImproved:       []models.ReconciledStudent{},
		MostDeclined:       []models.ReconciledStudent{},
		Unmatched:          append([]models.StudentRef{}, rec.Unmatched...),
		NoData:             append([]models.StudentRef{}, rec.NoData...),
		Warnings:           append([]models.Warning{}, rec.Warnings...),
		EarlierAssessments: rec.EarlierAssessments,
		LaterAssessments:   rec.LaterAssessments,
	}

	for i, s := range rec.Students {
		s.Change = round(s.LaterMean-s.EarlierMean, precision)
		res.Ranked[i] = s
	}
	sort.SliceStable(res.Ranked, func(i, j int) bool {
		a, b := res.Ranked[i], res.Ranked[j]
		if a.Change != b.Change {
			return a.Change > b.Change
		}
		if a.Identity != b.Identity {
			return a.Identity < b.Identity
		}
		return a.Key < b.Key
	})

	if len(res.Ranked) == 0 {
		return res
	}

	for i := range res.Ranked {
		if i > 0 && res.Ranked[i].Change == res.Ranked[i-1].Change {
			res.Ranked[i].Rank = res.Ranked[i-1].Rank
		} else {
			res.Ranked[i].Rank = i + 1
		}
	}

	maxChange := res.Ranked[0].Change
	minChange := res.Ranked[len(res.Ranked)-1].Change
	for _, s := range res.Ranked {
		if s.Change == maxChange {
			res.MostImproved = append(res.MostImproved, s)
		}
		if s.Change == minChange {
			res.MostDeclined = append(res.MostDeclined, s)
		}
	}

	return res
}
