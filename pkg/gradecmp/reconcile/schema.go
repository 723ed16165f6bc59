// Package reconcile normalizes two gradebook snapshots, matches students across them
// and ranks them by grade change. Everything here is a pure transform with no I/O.
package reconcile

import (
	"regexp"
	"strings"
)

// DefaultAssessmentCountPattern matches headers such as "Graded /20".
const DefaultAssessmentCountPattern = `(?i)^graded\s*/\s*\d+$`

// Schema declares how gradebook headers map to roles.
type Schema struct {
	// IdentityAliases are header names (case-insensitive) that key students.
	// The first header matching any alias wins.
	IdentityAliases []string `yaml:"identity_aliases"`
	// FallbackToFirstColumn uses column 0 as identity when no alias matches.
	FallbackToFirstColumn bool `yaml:"fallback_to_first_column"`
	// MetadataColumns are header names (case-insensitive) never treated as grades.
	MetadataColumns []string `yaml:"metadata_columns"`
	// AssessmentCountPattern matches the header holding the completed-assessment count.
	// Such a column is metadata; its first integer value becomes the assessment count.
	AssessmentCountPattern string `yaml:"assessment_count_pattern"`
	// SummaryColumn names a course-grade column used in place of the assessment mean.
	SummaryColumn string `yaml:"summary_column"`
}

// DefaultSchema returns the header conventions of common gradebook exports.
func DefaultSchema() Schema {
	return Schema{
		IdentityAliases: []string{"Student", "Name", "Student Name", "Full Name", "Learner"},
		MetadataColumns: []string{
			"ID", "Student ID", "ID number", "Email", "Email address", "Username",
			"Class", "Course", "Section", "Group", "Last downloaded from this course",
		},
		AssessmentCountPattern: DefaultAssessmentCountPattern,
	}
}

type compiledSchema struct {
	Schema
	identity map[string]int
	metadata map[string]bool
	count    *regexp.Regexp
}

func (s Schema) compile() (*compiledSchema, error) {
	c := &compiledSchema{
		Schema:   s,
		identity: make(map[string]int, len(s.IdentityAliases)),
		metadata: make(map[string]bool, len(s.MetadataColumns)),
	}
	for i, alias := range s.IdentityAliases {
		k := headerKey(alias)
		if _, ok := c.identity[k]; !ok {
			c.identity[k] = i
		}
	}
	for _, name := range s.MetadataColumns {
		c.metadata[headerKey(name)] = true
	}
	if s.AssessmentCountPattern != "" {
		re, err := regexp.Compile(s.AssessmentCountPattern)
		if err != nil {
			return nil, &SchemaError{Reason: "invalid assessment count pattern: " + err.Error()}
		}
		c.count = re
	}
	return c, nil
}

func (c *compiledSchema) isCountColumn(name string) bool {
	return c.count != nil && c.count.MatchString(name)
}

func (c *compiledSchema) isSummaryColumn(name string) bool {
	return c.SummaryColumn != "" && headerKey(name) == headerKey(c.SummaryColumn)
}

func (c *compiledSchema) isMetadata(name string) bool {
	return c.metadata[headerKey(name)] || c.isCountColumn(name) || c.isSummaryColumn(name)
}

func headerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
