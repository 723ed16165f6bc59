// Package config loads gradecmp settings from a YAML file and GRADECMP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/label"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/reconcile"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. GRADECMP_COMPARE_PRECISION.
const EnvPrefix = "GRADECMP"

// Config is the full gradecmp configuration.
type Config struct {
	Schema  SchemaConfig  `yaml:"schema" envconfig:"SCHEMA"`
	Compare CompareConfig `yaml:"compare" envconfig:"COMPARE"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SchemaConfig controls how gradebook columns are classified.
type SchemaConfig struct {
	IdentityAliases        []string `yaml:"identity_aliases" envconfig:"IDENTITY_ALIASES" validate:"dive,required"`
	FallbackToFirstColumn  bool     `yaml:"fallback_to_first_column" envconfig:"FALLBACK_TO_FIRST_COLUMN"`
	MetadataColumns        []string `yaml:"metadata_columns" envconfig:"METADATA_COLUMNS"`
	AssessmentCountPattern string   `yaml:"assessment_count_pattern" envconfig:"ASSESSMENT_COUNT_PATTERN"`
	SummaryColumn          string   `yaml:"summary_column" envconfig:"SUMMARY_COLUMN"`
}

// CompareConfig holds the comparison settings.
type CompareConfig struct {
	Precision     int    `yaml:"precision" envconfig:"PRECISION" validate:"gte=-1,lte=6"`
	SheetName     string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	CoursePattern string `yaml:"course_pattern" envconfig:"COURSE_PATTERN"`
	AutoOrder     bool   `yaml:"auto_order" envconfig:"AUTO_ORDER"`
}

// OutputConfig selects where and in which format the report is written.
type OutputConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx json"`
	Pretty bool   `yaml:"pretty" envconfig:"PRETTY"`
}

// LoggingConfig sets the log level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	schema := reconcile.DefaultSchema()
	return &Config{
		Schema: SchemaConfig{
			IdentityAliases:        schema.IdentityAliases,
			MetadataColumns:        schema.MetadataColumns,
			AssessmentCountPattern: schema.AssessmentCountPattern,
		},
		Compare: CompareConfig{
			Precision:     reconcile.DefaultPrecision,
			CoursePattern: label.DefaultCoursePattern,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "xlsx",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig layers the YAML file at path (optional) and environment overrides
// over Default, then validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints, the identity rule and the regular expressions.
// Call it again after changing a loaded Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if len(c.Schema.IdentityAliases) == 0 && !c.Schema.FallbackToFirstColumn {
		return errors.New("invalid config: schema.identity_aliases is required unless schema.fallback_to_first_column is set")
	}
	for name, pattern := range map[string]string{
		"schema.assessment_count_pattern": c.Schema.AssessmentCountPattern,
		"compare.course_pattern":          c.Compare.CoursePattern,
	} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid config: %s: %w", name, err)
		}
	}
	return nil
}

// Options maps the configuration onto comparison options.
func (c *Config) Options() gradecmp.Options {
	precision := c.Compare.Precision
	return gradecmp.Options{
		Schema: reconcile.Schema{
			IdentityAliases:        c.Schema.IdentityAliases,
			FallbackToFirstColumn:  c.Schema.FallbackToFirstColumn,
			MetadataColumns:        c.Schema.MetadataColumns,
			AssessmentCountPattern: c.Schema.AssessmentCountPattern,
			SummaryColumn:          c.Schema.SummaryColumn,
		},
		Precision:     &precision,
		SheetName:     c.Compare.SheetName,
		CoursePattern: c.Compare.CoursePattern,
		AutoOrder:     c.Compare.AutoOrder,
	}
}
