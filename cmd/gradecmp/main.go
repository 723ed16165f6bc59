// Package main provides the CLI entry point for gradecmp-go.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/config"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/label"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/models"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/output"
)

var version = "dev"

var (
	configPath string
	outputPath string
	format     string
	pretty     bool
	autoOrder  bool
	precision  int
	sheetName  string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gradecmp",
		Short: "Compare two gradebook snapshots",
		Long: `gradecmp-go compares an earlier and a later export of the same course
gradebook and reports each student's grade change, flagging the most improved.`,
		SilenceUsage: true,
	}

	compareCmd := &cobra.Command{
		Use:   "compare EARLIER.xlsx LATER.xlsx",
		Short: "Compare two snapshots and write a report",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config YAML")
	compareCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: derived from course and date)")
	compareCmd.Flags().StringVar(&format, "format", "", "Output format: xlsx or json")
	compareCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	compareCmd.Flags().BoolVar(&autoOrder, "auto-order", false, "Order inputs by the dates in their names")
	compareCmd.Flags().IntVar(&precision, "precision", 0, "Decimal places means are rounded to (-1 disables)")
	compareCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	compareCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(compareCmd, versionCmd)
	return rootCmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := cfg.Options()
	opts.Logger = logger

	earlierPath := label.EnsureExtension(args[0])
	laterPath := label.EnsureExtension(args[1])

	report, err := gradecmp.Compare(earlierPath, laterPath, opts)
	if err != nil {
		logger.Error("comparison failed", slog.Any("error", err))
		return err
	}

	for _, w := range report.Result.Warnings {
		logger.Warn(w.Message,
			slog.String("kind", string(w.Kind)),
			slog.String("student", w.Identity),
			slog.String("snapshot", string(w.Snapshot)))
	}

	path := outputPath
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, defaultOutputName(report, cfg.Output.Format))
	}

	if err := writeReport(path, report, cfg.Output); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	logger.Info("report written", slog.String("path", path))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("auto-order") {
		cfg.Compare.AutoOrder = autoOrder
	}
	if flags.Changed("precision") {
		cfg.Compare.Precision = precision
	}
	if flags.Changed("sheet") {
		cfg.Compare.SheetName = sheetName
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
}

func defaultOutputName(r *models.Report, format string) string {
	ext := ".xlsx"
	if format == "json" {
		ext = ".json"
	}
	return label.ReportFileName(r.Course, r.Later.Date, ext)
}

func writeReport(path string, r *models.Report, cfg config.OutputConfig) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch cfg.Format {
	case "json":
		data, err := output.ToJSON(r, cfg.Pretty)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	case "xlsx", "":
		return output.SaveXLSX(path, r)
	default:
		return fmt.Errorf("invalid format: %s (must be xlsx or json)", cfg.Format)
	}
}
