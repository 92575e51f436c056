package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesTemplateAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	// first run drops a commented template for the user
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "journal.db"), cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "America/New_York", cfg.Macro.Timezone)
	assert.Equal(t, 5, cfg.Macro.Upcoming)
	assert.Contains(t, cfg.Market.Assets, "NAS100")
	assert.Contains(t, cfg.Market.Indices, "SPX500")
}

func TestLoadReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[logging]
level = "debug"

[macro]
upcoming = 3
`), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Macro.Upcoming)
	// untouched sections keep their defaults
	assert.Equal(t, "America/New_York", cfg.Macro.Timezone)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ICT_JOURNAL_DB", "/tmp/override.db")
	t.Setenv("ICT_JOURNAL_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "verbose"
	cfg.Macro.Upcoming = 5
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = "info"
	cfg.Macro.Upcoming = 0
	assert.Error(t, cfg.Validate())

	cfg.Macro.Upcoming = 5
	cfg.Macro.Timezone = "Not/AZone"
	assert.Error(t, cfg.Validate())

	cfg.Macro.Timezone = "Europe/London"
	assert.NoError(t, cfg.Validate())
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := &Config{}
	cfg.Macro.Timezone = "Bad/Zone"
	assert.NotNil(t, cfg.Location())
}
