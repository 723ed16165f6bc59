package gradecmp

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/label"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/parser"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/reconcile"
	"github.com/xuri/excelize/v2"
)

// CompareTables normalizes, reconciles and scores two raw gradebook tables.
// Schema and chronology errors abort the comparison; everything else is reported
// in the result.
func CompareTables(earlier, later models.RawTable, opts Options) (*models.ComparisonResult, error) {
	e, err := reconcile.Normalize(earlier, opts.Schema)
	if err != nil {
		return nil, NewLoadError("", models.Earlier, "normalize", err)
	}
	l, err := reconcile.Normalize(later, opts.Schema)
	if err != nil {
		return nil, NewLoadError("", models.Later, "normalize", err)
	}

	precision := opts.RoundingPrecision()
	rec, err := reconcile.Reconcile(e, l, reconcile.MatchOptions{Precision: precision})
	if err != nil {
		return nil, err
	}
	return reconcile.Score(rec, precision), nil
}

// Compare loads two gradebook files and compares them.
func Compare(earlierPath, laterPath string, opts Options) (*models.Report, error) {
	log := opts.logger()

	earlier, earlierInfo, err := load(earlierPath, models.Earlier, opts)
	if err != nil {
		return nil, err
	}
	later, laterInfo, err := load(laterPath, models.Later, opts)
	if err != nil {
		return nil, err
	}

	if earlierInfo.Course != "" && laterInfo.Course != "" && earlierInfo.Course != laterInfo.Course {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCourseMismatch, earlierInfo.Course, laterInfo.Course)
	}

	if opts.AutoOrder {
		switch {
		case !earlierInfo.HasDate() || !laterInfo.HasDate():
			log.Warn("snapshot date unknown, keeping given order",
				slog.String("earlier", earlierPath),
				slog.String("later", laterPath))
		case earlierInfo.Date.Equal(laterInfo.Date):
			return nil, fmt.Errorf("%w: %s", ErrSameSnapshotDate, earlierInfo.Date.Format(label.ReportDateLayout))
		case earlierInfo.Date.After(laterInfo.Date):
			log.Info("inputs given newest first, swapping",
				slog.String("earlier", laterPath),
				slog.String("later", earlierPath))
			earlier, later = later, earlier
			earlierInfo, laterInfo = laterInfo, earlierInfo
		}
	}

	result, err := CompareTables(earlier, later, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			if le.Snapshot == models.Earlier {
				le.Path = earlierInfo.Path
			} else {
				le.Path = laterInfo.Path
			}
		}
		return nil, err
	}

	log.Info("comparison complete",
		slog.Int("ranked", len(result.Ranked)),
		slog.Int("most_improved", len(result.MostImproved)),
		slog.Int("unmatched", len(result.Unmatched)),
		slog.Int("no_data", len(result.NoData)))

	course := laterInfo.Course
	if course == "" {
		course = earlierInfo.Course
	}
	return &models.Report{
		Course:  course,
		Earlier: earlierInfo,
		Later:   laterInfo,
		Result:  result,
	}, nil
}

func load(path string, snap models.Snapshot, opts Options) (models.RawTable, models.SnapshotInfo, error) {
	info := models.SnapshotInfo{Path: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = ErrFileNotFound
		}
		return models.RawTable{}, info, NewLoadError(path, snap, "open", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RawTable{}, info, NewLoadError(path, snap, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheet, err := parser.ReadSheet(f, opts.SheetName)
	if err != nil {
		return models.RawTable{}, info, NewLoadError(path, snap, "read", err)
	}

	info.SheetName = sheet.Name
	info.Course, err = label.CourseCode(path, opts.CoursePattern)
	if err != nil {
		return models.RawTable{}, info, err
	}
	if d, ok := label.SnapshotDate(path, sheet.Name); ok {
		info.Date = d
	}

	opts.logger().Info("loaded snapshot",
		slog.String("snapshot", string(snap)),
		slog.String("path", path),
		slog.String("sheet", sheet.Name),
		slog.String("range", sheet.Range),
		slog.Int("rows", len(sheet.Table.Rows)))

	return sheet.Table, info, nil
}
