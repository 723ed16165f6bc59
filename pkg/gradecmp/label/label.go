// Package label derives human-readable course codes and snapshot dates from
// gradebook file and sheet names, e.g. "SHEN-MTH1Wa_grades_28Nov2025.xlsx".
package label

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultCoursePattern captures the course code preceding "_grades".
const DefaultCoursePattern = `(?i)([A-Za-z0-9]+)_grades`

// ReportDateLayout is the date layout used in report file names.
const ReportDateLayout = "02Jan2006"

var (
	fileDateRe  = regexp.MustCompile(`(?i)(\d{1,2}[A-Za-z]{3}\d{4})`)
	sheetDateRe = regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})`)
)

// CourseCode extracts the upper-cased course code from a file path using pattern
// (DefaultCoursePattern when empty). It returns "" when nothing matches.
func CourseCode(path, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultCoursePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid course pattern: %w", err)
	}
	m := re.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", nil
	}
	code := m[0]
	if len(m) > 1 {
		code = m[1]
	}
	return strings.ToUpper(code), nil
}

// SnapshotDate derives the snapshot date, preferring an M-D-YYYY sheet name over a
// DMonYYYY file name. ok is false when neither carries a valid date.
func SnapshotDate(path, sheetName string) (time.Time, bool) {
	if m := sheetDateRe.FindString(sheetName); m != "" {
		if t, err := time.Parse("1-2-2006", m); err == nil {
			return t, true
		}
	}
	if m := fileDateRe.FindString(filepath.Base(path)); m != "" {
		if t, err := time.Parse("2Jan2006", m); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReportFileName builds "<COURSE>_Grade_Comparison_Report_<02Jan2006>.xlsx".
// Missing parts are left out.
func ReportFileName(course string, date time.Time, ext string) string {
	parts := make([]string, 0, 3)
	if course != "" {
		parts = append(parts, strings.ReplaceAll(course, "/", "-"))
	}
	parts = append(parts, "Grade_Comparison_Report")
	if !date.IsZero() {
		parts = append(parts, date.Format(ReportDateLayout))
	}
	if ext == "" {
		ext = ".xlsx"
	}
	return strings.Join(parts, "_") + ext
}

// EnsureExtension appends ".xlsx" to names typed without an extension.
func EnsureExtension(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return name
	}
	return name + ".xlsx"
}
