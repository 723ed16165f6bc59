// Package gradecmp compares two gradebook snapshots and ranks students by grade change.
package gradecmp

import (
	"io"
	"log/slog"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/reconcile"
)

// Options configures a comparison.
type Options struct {
	// Schema maps gradebook headers to roles.
	Schema reconcile.Schema
	// Precision rounds means and changes to this many decimal places.
	// If nil, defaults to reconcile.DefaultPrecision. Negative disables rounding.
	Precision *int
	// SheetName selects the sheet to read; the first sheet when empty.
	SheetName string
	// CoursePattern extracts the course code from file names.
	CoursePattern string
	// AutoOrder swaps the inputs when the file dates show them reversed.
	AutoOrder bool
	// Logger receives progress messages. Nothing is logged when nil.
	Logger *slog.Logger
}

// DefaultOptions returns default comparison options.
func DefaultOptions() Options {
	return Options{
		Schema: reconcile.DefaultSchema(),
	}
}

// RoundingPrecision returns the effective rounding precision.
func (o Options) RoundingPrecision() int {
	if o.Precision != nil {
		return *o.Precision
	}
	return reconcile.DefaultPrecision
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
