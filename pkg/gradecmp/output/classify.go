package output

import (
	"math"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// NoChangeLimit is the largest absolute change still shown as no change.
const NoChangeLimit = 0.01

// ChangeClass decides how a ranked row is highlighted.
type ChangeClass int

const (
	ClassGain ChangeClass = iota
	ClassMostImproved
	ClassMostDeclined
	ClassNoChange
	ClassDecline
)

// Classify returns the highlight class of s. Most improved wins over most declined,
// which wins over the sign of the change.
func Classify(s models.ReconciledStudent, res *models.ComparisonResult) ChangeClass {
	switch {
	case res.IsMostImproved(s.Key):
		return ClassMostImproved
	case res.IsMostDeclined(s.Key):
		return ClassMostDeclined
	case math.Abs(s.Change) <= NoChangeLimit:
		return ClassNoChange
	case s.Change < 0:
		return ClassDecline
	default:
		return ClassGain
	}
}

// fillColor maps a class to its cell fill.
var fillColor = map[ChangeClass]string{
	ClassMostImproved: "90EE90",
	ClassMostDeclined: "D8BFD8",
	ClassNoChange:     "FFFFCC",
	ClassDecline:      "F08080",
	ClassGain:         "E0FFFF",
}
