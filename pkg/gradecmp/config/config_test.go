package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gradecmp-go/pkg/gradecmp/reconcile"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gradecmp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, reconcile.DefaultPrecision, cfg.Compare.Precision)
	assert.Equal(t, "xlsx", cfg.Output.Format)

	opts := cfg.Options()
	assert.Equal(t, reconcile.DefaultPrecision, opts.RoundingPrecision())
	assert.Equal(t, reconcile.DefaultSchema().IdentityAliases, opts.Schema.IdentityAliases)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
schema:
  identity_aliases: [Pupil]
  summary_column: Course grade
compare:
  precision: 1
  auto_order: true
output:
  format: json
logging:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pupil"}, cfg.Schema.IdentityAliases)
	assert.Equal(t, "Course grade", cfg.Schema.SummaryColumn)
	assert.Equal(t, reconcile.DefaultSchema().MetadataColumns, cfg.Schema.MetadataColumns)
	assert.Equal(t, 1, cfg.Compare.Precision)
	assert.True(t, cfg.Compare.AutoOrder)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)

	opts := cfg.Options()
	assert.Equal(t, 1, opts.RoundingPrecision())
	assert.True(t, opts.AutoOrder)
	assert.Equal(t, "Course grade", opts.Schema.SummaryColumn)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "compare:\n  precision: 1\n")
	t.Setenv("GRADECMP_COMPARE_PRECISION", "3")
	t.Setenv("GRADECMP_SCHEMA_IDENTITY_ALIASES", "Learner,Pupil")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Compare.Precision)
	assert.Equal(t, []string{"Learner", "Pupil"}, cfg.Schema.IdentityAliases)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"format":    "output:\n  format: csv\n",
		"precision": "compare:\n  precision: 12\n",
		"level":     "logging:\n  level: loud\n",
		"aliases":   "schema:\n  identity_aliases: []\n",
		"pattern":   "compare:\n  course_pattern: \"(\"\n",
		"yaml":      "schema: [\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_FallbackWithoutAliases(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "schema:\n  identity_aliases: []\n  fallback_to_first_column: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Schema.FallbackToFirstColumn)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_ValidateAfterOverride(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Compare.Precision = 400
	assert.Error(t, cfg.Validate())

	cfg.Compare.Precision = -1
	assert.NoError(t, cfg.Validate(), "-1 disables rounding")

	cfg.Compare.Precision = -2
	assert.Error(t, cfg.Validate())
}
