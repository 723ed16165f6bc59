package reconcile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims headers, assigns column roles and coerces grade cells to percentages.
func Normalize(raw models.RawTable, schema Schema) (*models.NormalizedTable, error) {
	cs, err := schema.compile()
	if err != nil {
		return nil, err
	}

	// Columns with blank headers carry no role and are dropped.
	columns := make([]string, 0, len(raw.Columns))
	index := make([]int, 0, len(raw.Columns))
	seen := make(map[string]bool, len(raw.Columns))
	for i, c := range raw.Columns {
		name := strings.TrimSpace(c)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, &SchemaError{Column: name, Reason: "duplicate column after trimming headers"}
		}
		seen[name] = true
		columns = append(columns, name)
		index = append(index, i)
	}

	identity := findIdentityColumn(columns, cs)
	if identity < 0 {
		return nil, &SchemaError{
			Reason: fmt.Sprintf("no identity column found (looked for %s)", strings.Join(schema.IdentityAliases, ", ")),
		}
	}

	table := &models.NormalizedTable{
		Columns:        columns,
		IdentityColumn: columns[identity],
	}

	var gradeIdx []int
	summary, count := -1, -1
	for pos, name := range columns {
		if pos == identity {
			continue
		}
		switch {
		case cs.isSummaryColumn(name):
			if summary < 0 {
				summary = index[pos]
				table.SummaryColumn = name
			}
			continue
		case cs.isCountColumn(name):
			if count < 0 {
				count = index[pos]
			}
			continue
		case cs.isMetadata(name):
			continue
		}
		if hasNumericCell(raw.Rows, index[pos]) {
			table.GradeColumns = append(table.GradeColumns, name)
			gradeIdx = append(gradeIdx, index[pos])
		}
	}

	table.GradeColumnCount = len(table.GradeColumns)
	if count >= 0 {
		table.DeclaredCount, table.HasDeclaredCount = firstCount(raw.Rows, count)
	}

	keys := make(map[string]bool, len(raw.Rows))
	for _, row := range raw.Rows {
		display := strings.TrimSpace(cellString(row.Value(index[identity])))
		if display == "" {
			continue
		}
		key := IdentityKey(display)
		if keys[key] {
			table.Warnings = append(table.Warnings, models.Warning{
				Kind:     models.WarningDuplicateStudent,
				Identity: display,
				Message:  "duplicate student row ignored",
			})
			continue
		}
		keys[key] = true

		rec := models.StudentRecord{
			Identity: display,
			Key:      key,
			Grades:   make([]models.Grade, len(gradeIdx)),
		}
		for g, col := range gradeIdx {
			rec.Grades[g] = NormalizeGrade(row.Value(col))
		}
		if summary >= 0 {
			rec.Summary = NormalizeGrade(row.Value(summary))
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// IdentityKey returns the matching form of a student identity.
func IdentityKey(identity string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(identity)))
}

// NormalizeGrade coerces a raw cell into a percentage grade.
func NormalizeGrade(v interface{}) models.Grade {
	f, ok := ParseGrade(v)
	if !ok {
		return models.Missing
	}
	return ScaleGrade(f)
}

// ParseGrade extracts a number from a raw cell. Strings may carry a trailing '%'.
func ParseGrade(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ScaleGrade maps a number onto [0, 100]. Values in [0, 1] are fractions and are
// multiplied by 100, larger values are already percentages and clamp at 100.
// Negative values are missing.
func ScaleGrade(v float64) models.Grade {
	switch {
	case v < 0 || math.IsNaN(v):
		return models.Missing
	case v <= 1:
		return models.Grade{Value: v * 100, Valid: true}
	case v > 100:
		return models.Grade{Value: 100, Valid: true}
	default:
		return models.Grade{Value: v, Valid: true}
	}
}

func findIdentityColumn(columns []string, cs *compiledSchema) int {
	for i, name := range columns {
		if _, ok := cs.identity[headerKey(name)]; ok {
			return i
		}
	}
	if cs.FallbackToFirstColumn && len(columns) > 0 {
		return 0
	}
	return -1
}

func hasNumericCell(rows []models.RawRow, col int) bool {
	for _, row := range rows {
		if _, ok := ParseGrade(row.Value(col)); ok {
			return true
		}
	}
	return false
}

func firstCount(rows []models.RawRow, col int) (int, bool) {
	for _, row := range rows {
		f, ok := ParseGrade(row.Value(col))
		if !ok || f < 0 || f != math.Trunc(f) {
			continue
		}
		return int(f), true
	}
	return 0, false
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
