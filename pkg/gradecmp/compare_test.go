package gradecmp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/reconcile"
	"github.com/xuri/excelize/v2"
)

// writeGradebook saves rows (header first) to dir/name and returns the path.
func writeGradebook(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func fixtures(t *testing.T) (earlier, later string) {
	dir := t.TempDir()
	earlier = writeGradebook(t, dir, "SHEN-MTH1Wa_grades_28Nov2025.xlsx", [][]interface{}{
		{"Student ", " Quiz 1", "Quiz 2"},
		{"Jane Doe ", 0.7, 0.7},
		{"Max Roe", 60, 70},
		{"Lee Poe", 80, 90},
		{"Gone Away", 50, 50},
	})
	later = writeGradebook(t, dir, "SHEN-MTH1Wa_grades_3Dec2025.xlsx", [][]interface{}{
		{"Student", "Quiz 1", "Quiz 2", "Quiz 3"},
		{"jane doe", 0.7, 0.9, 0.95},
		{"Max Roe", 65, 80, 95},
		{"Lee Poe", 80, 90, 94},
		{"New Kid", 100, 100, 100},
	})
	return earlier, later
}

func TestCompare(t *testing.T) {
	earlier, later := fixtures(t)

	report, err := Compare(earlier, later, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "MTH1WA", report.Course)
	assert.True(t, report.Earlier.Date.Equal(time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Sheet1", report.Later.SheetName)

	res := report.Result
	assert.Equal(t, 2, res.EarlierAssessments)
	assert.Equal(t, 3, res.LaterAssessments)
	require.Len(t, res.Ranked, 3)

	// Jane 70 -> 85, Max 65 -> 80, Lee 85 -> 88.
	assert.Equal(t, "Jane Doe", res.Ranked[0].Identity)
	assert.Equal(t, 15.0, res.Ranked[0].Change)
	assert.Equal(t, "Max Roe", res.Ranked[1].Identity)
	assert.Equal(t, 15.0, res.Ranked[1].Change)
	assert.Equal(t, "Lee Poe", res.Ranked[2].Identity)
	assert.Equal(t, 3.0, res.Ranked[2].Change)

	require.Len(t, res.MostImproved, 2)
	assert.Equal(t, "Jane Doe", res.MostImproved[0].Identity)
	assert.Equal(t, "Max Roe", res.MostImproved[1].Identity)

	require.Len(t, res.Unmatched, 2)
	assert.Equal(t, models.StudentRef{Identity: "Gone Away", Key: reconcile.IdentityKey("gone away"), Snapshot: models.Earlier}, res.Unmatched[0])
	assert.Equal(t, "New Kid", res.Unmatched[1].Identity)
}

func TestCompare_Chronology(t *testing.T) {
	earlier, later := fixtures(t)

	_, err := Compare(later, earlier, DefaultOptions())
	assert.ErrorIs(t, err, reconcile.ErrChronology)
}

func TestCompare_AutoOrder(t *testing.T) {
	earlier, later := fixtures(t)
	opts := DefaultOptions()
	opts.AutoOrder = true

	report, err := Compare(later, earlier, opts)
	require.NoError(t, err)
	assert.Equal(t, earlier, report.Earlier.Path)
	assert.Equal(t, later, report.Later.Path)
	assert.Len(t, report.Result.Ranked, 3)
}

func TestCompare_SameDate(t *testing.T) {
	earlier, _ := fixtures(t)
	opts := DefaultOptions()
	opts.AutoOrder = true

	_, err := Compare(earlier, earlier, opts)
	assert.ErrorIs(t, err, ErrSameSnapshotDate)
}

func TestCompare_CourseMismatch(t *testing.T) {
	earlier, _ := fixtures(t)
	other := writeGradebook(t, t.TempDir(), "SHEN-BIO2_grades_3Dec2025.xlsx", [][]interface{}{
		{"Student", "Quiz 1", "Quiz 2"},
		{"Jane Doe", 80, 80},
	})

	_, err := Compare(earlier, other, DefaultOptions())
	assert.ErrorIs(t, err, ErrCourseMismatch)
}

func TestCompare_SchemaError(t *testing.T) {
	earlier, _ := fixtures(t)
	bad := writeGradebook(t, t.TempDir(), "SHEN-MTH1Wa_grades_3Dec2025.xlsx", [][]interface{}{
		{"Pupil", "Quiz 1", "Quiz 1 "},
		{"Jane Doe", 80, 80},
	})

	_, err := Compare(earlier, bad, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, reconcile.ErrSchema))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, models.Later, le.Snapshot)
	assert.Equal(t, bad, le.Path)
	assert.Equal(t, "normalize", le.Stage)
}

func TestCompare_FileErrors(t *testing.T) {
	earlier, _ := fixtures(t)
	dir := t.TempDir()

	_, err := Compare(earlier, filepath.Join(dir, "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	junk := filepath.Join(dir, "junk.xlsx")
	require.NoError(t, os.WriteFile(junk, []byte("not a workbook"), 0644))
	_, err = Compare(earlier, junk, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompareTables_Disjoint(t *testing.T) {
	earlier := models.RawTable{Columns: []string{"Student", "Q1"}, Rows: []models.RawRow{{"Ann", int64(70)}}}
	later := models.RawTable{Columns: []string{"Student", "Q1"}, Rows: []models.RawRow{{"Bo", int64(70)}}}

	res, err := CompareTables(earlier, later, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Ranked)
	assert.Empty(t, res.MostImproved)
	assert.Len(t, res.Unmatched, 2)
}

func TestOptions_RoundingPrecision(t *testing.T) {
	assert.Equal(t, reconcile.DefaultPrecision, DefaultOptions().RoundingPrecision())
	p := 0
	assert.Equal(t, 0, Options{Precision: &p}.RoundingPrecision())
}
