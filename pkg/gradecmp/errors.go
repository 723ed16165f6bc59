package gradecmp

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrCourseMismatch indicates the two files belong to different courses.
var ErrCourseMismatch = errors.New("course mismatch")

// ErrSameSnapshotDate indicates both files carry the same snapshot date.
var ErrSameSnapshotDate = errors.New("both snapshots have the same date")

// LoadError represents an error while loading or normalizing one snapshot.
type LoadError struct {
	Path     string
	Snapshot models.Snapshot
	Stage    string // "open", "read", "normalize"
	Err      error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s snapshot (%s): %v", e.Snapshot, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s snapshot %q (%s): %v", e.Snapshot, e.Path, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, snapshot models.Snapshot, stage string, err error) *LoadError {
	return &LoadError{
		Path:     path,
		Snapshot: snapshot,
		Stage:    stage,
		Err:      err,
	}
}
