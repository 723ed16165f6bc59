package reconcile

import (
	"errors"
	"fmt"
)

// ErrSchema matches any *SchemaError via errors.Is.
var ErrSchema = errors.New("schema error")

// ErrChronology matches any *ChronologyError via errors.Is.
var ErrChronology = errors.New("chronology error")

// SchemaError reports a gradebook whose headers cannot be reconciled.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("schema error: %s", e.Reason)
	}
	return fmt.Sprintf("schema error in column %q: %s", e.Column, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ChronologyError reports an earlier snapshot with more assessments than the later one.
type ChronologyError struct {
	EarlierCount int
	LaterCount   int
}

func (e *ChronologyError) Error() string {
	return fmt.Sprintf("invalid timeline: earlier snapshot has %d graded assessments but later snapshot has only %d",
		e.EarlierCount, e.LaterCount)
}

func (e *ChronologyError) Is(target error) bool {
	return target == ErrChronology
}
