package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/config"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/output"
	"github.com/xuri/excelize/v2"
)

func writeGradebook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

// resetFlags clears package-level flag state shared between cobra runs.
func resetFlags() {
	configPath, outputPath, format, sheetName, logLevel = "", "", "", "", ""
	pretty, autoOrder, precision = false, false, 0
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixtures(t *testing.T) (dir, earlier, later string) {
	dir = t.TempDir()
	earlier = filepath.Join(dir, "SHEN-MTH1Wa_grades_28Nov2025.xlsx")
	later = filepath.Join(dir, "SHEN-MTH1Wa_grades_30Nov2025.xlsx")
	writeGradebook(t, earlier, [][]interface{}{
		{"Student", "Quiz 1"},
		{"Ann", 0.7},
		{"Bo", 0.8},
	})
	writeGradebook(t, later, [][]interface{}{
		{"Student", "Quiz 1", "Quiz 2"},
		{"Ann", 0.7, 1},
		{"Bo", 0.8, 0.8},
	})
	return dir, earlier, later
}

func TestCompareCommand_XLSX(t *testing.T) {
	dir, earlier, later := fixtures(t)
	t.Setenv("GRADECMP_OUTPUT_DIR", dir)

	out, err := run(t, "compare", earlier, strings.TrimSuffix(later, ".xlsx"))
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(dir, "MTH1WA_Grade_Comparison_Report_30Nov2025.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	top, err := f.GetCellValue(output.ReportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ann", top)
	marker, err := f.GetCellValue(output.ReportSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, output.MostImprovedMarker, marker)
}

func TestCompareCommand_JSON(t *testing.T) {
	dir, earlier, later := fixtures(t)
	path := filepath.Join(dir, "out", "report.json")

	_, err := run(t, "compare", later, earlier, "--auto-order", "--format", "json", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		Result struct {
			Ranked []struct {
				Identity string  `json:"identity"`
				Change   float64 `json:"change"`
			} `json:"ranked"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Result.Ranked, 2)
	assert.Equal(t, "Ann", decoded.Result.Ranked[0].Identity)
	assert.Equal(t, 15.0, decoded.Result.Ranked[0].Change)
}

func TestCompareCommand_Chronology(t *testing.T) {
	dir, earlier, later := fixtures(t)

	_, err := run(t, "compare", later, earlier, "-o", filepath.Join(dir, "r.xlsx"))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "r.xlsx"))
	assert.True(t, os.IsNotExist(statErr), "no report is written on fatal errors")
}

func TestCompareCommand_InvalidPrecision(t *testing.T) {
	dir, earlier, later := fixtures(t)

	for _, p := range []string{"400", "-2"} {
		path := filepath.Join(dir, "r-"+p+".xlsx")
		_, err := run(t, "compare", earlier, later, "--precision="+p, "-o", path)
		require.Error(t, err, "precision %s", p)
		assert.Contains(t, err.Error(), "Precision")
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "no report is written for precision %s", p)
	}
}

func TestCompareCommand_Args(t *testing.T) {
	_, err := run(t, "compare", "only-one.xlsx")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := parseLogLevel("loud")
	assert.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	logger.Info("hello", slog.String("k", "v"))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])
}
