package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names and markers used in the workbook.
const (
	ReportSheet     = "Grade Report"
	ExceptionsSheet = "Exceptions"
	SummarySheet    = "Summary"

	MostImprovedMarker = "MOST IMPROVED"
	BiggestDropMarker  = "BIGGEST DROP"
	NoComparableText   = "No comparable students"
)

// ReportHeaders are the column headers of the report sheet.
var ReportHeaders = []string{
	"Rank", "Student", "Earlier Graded", "Later Graded",
	"Previous Course Grade (%)", "Current Course Grade (%)", "Grade Change (%)",
	"Most Improved Student(s)", "Biggest Decline",
}

// ExceptionHeaders are the column headers of the exceptions sheet.
var ExceptionHeaders = []string{"Student", "Snapshot", "Issue", "Detail"}

// WriteXLSX writes the report workbook to w.
func WriteXLSX(w io.Writer, r *models.Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes the report workbook to path.
func SaveXLSX(path string, r *models.Report) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func buildWorkbook(r *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		f.Close()
		return nil, err
	}

	steps := []func(*excelize.File, *models.Report) error{
		writeRanked,
		writeExceptions,
		writeSummary,
	}
	for _, step := range steps {
		if err := step(f, r); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeRanked(f *excelize.File, r *models.Report) error {
	res := r.Result
	if err := f.SetSheetRow(ReportSheet, "A1", &ReportHeaders); err != nil {
		return err
	}
	widths := headerWidths(ReportHeaders)

	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	fills := make(map[ChangeClass]int, len(fillColor))
	for class, color := range fillColor {
		id, err := f.NewStyle(&excelize.Style{
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			NumFmt:    2,
		})
		if err != nil {
			return err
		}
		fills[class] = id
	}

	if len(res.Ranked) == 0 {
		if err := f.SetCellValue(ReportSheet, "B2", NoComparableText); err != nil {
			return err
		}
		trackWidth(widths, 1, NoComparableText)
		return setWidths(f, ReportSheet, widths)
	}

	for i, s := range res.Ranked {
		rowNum := i + 2
		class := Classify(s, res)
		change := s.Change
		if (class == ClassMostImproved || class == ClassNoChange) && math.Abs(change) <= NoChangeLimit {
			change = 0
		}
		improved, dropped := "", ""
		switch class {
		case ClassMostImproved:
			improved = MostImprovedMarker
		case ClassMostDeclined:
			dropped = BiggestDropMarker
		}

		row := []interface{}{
			s.Rank, s.Identity, s.EarlierGraded, s.LaterGraded,
			s.EarlierMean, s.LaterMean, change, improved, dropped,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(ReportSheet, cell, &row); err != nil {
			return err
		}
		for c, v := range row {
			trackWidth(widths, c, formatCell(v))
		}

		first, _ := excelize.CoordinatesToCellName(3, rowNum)
		last, _ := excelize.CoordinatesToCellName(len(ReportHeaders), rowNum)
		if err := f.SetCellStyle(ReportSheet, first, last, center); err != nil {
			return err
		}
		changeCell, _ := excelize.CoordinatesToCellName(7, rowNum)
		if err := f.SetCellStyle(ReportSheet, changeCell, changeCell, fills[class]); err != nil {
			return err
		}
	}

	return setWidths(f, ReportSheet, widths)
}

func writeExceptions(f *excelize.File, r *models.Report) error {
	if _, err := f.NewSheet(ExceptionsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ExceptionsSheet, "A1", &ExceptionHeaders); err != nil {
		return err
	}
	widths := headerWidths(ExceptionHeaders)

	for i, w := range r.Result.Warnings {
		row := []interface{}{w.Identity, string(w.Snapshot), string(w.Kind), w.Message}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ExceptionsSheet, cell, &row); err != nil {
			return err
		}
		for c, v := range row {
			trackWidth(widths, c, formatCell(v))
		}
	}
	return setWidths(f, ExceptionsSheet, widths)
}

func writeSummary(f *excelize.File, r *models.Report) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	res := r.Result

	improved := ""
	for i, s := range res.MostImproved {
		if i > 0 {
			improved += ", "
		}
		improved += s.Identity
	}
	if improved == "" {
		improved = NoComparableText
	}

	rows := [][]interface{}{
		{"Course", r.Course},
		{"Earlier snapshot", snapshotLabel(r.Earlier)},
		{"Later snapshot", snapshotLabel(r.Later)},
		{"Earlier assessments", res.EarlierAssessments},
		{"Later assessments", res.LaterAssessments},
		{"Comparable students", len(res.Ranked)},
		{"Unmatched students", len(res.Unmatched)},
		{"Students without grades", len(res.NoData)},
		{"Most improved", improved},
	}
	widths := map[int]int{}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
		for c, v := range row {
			trackWidth(widths, c, formatCell(v))
		}
	}
	return setWidths(f, SummarySheet, widths)
}

func snapshotLabel(s models.SnapshotInfo) string {
	if s.HasDate() {
		return fmt.Sprintf("%s (%s)", s.Path, s.Date.Format("02 Jan 2006"))
	}
	return s.Path
}

func headerWidths(headers []string) map[int]int {
	widths := make(map[int]int, len(headers))
	for c, h := range headers {
		trackWidth(widths, c, h)
	}
	return widths
}

func trackWidth(widths map[int]int, col int, text string) {
	if n := utf8.RuneCountInString(text); n > widths[col] {
		widths[col] = n
	}
}

func setWidths(f *excelize.File, sheet string, widths map[int]int) error {
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(w+2)); err != nil {
			return err
		}
	}
	return nil
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprint(x)
	}
}
