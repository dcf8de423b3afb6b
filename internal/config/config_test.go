package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNothingConfigured(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.SiteRoot)
	assert.Equal(t, "modules.json", cfg.ModulesPath)
	assert.Equal(t, "static", cfg.EnhancerProvider)
	assert.Equal(t, "2026-01-21", cfg.StartDate.Format("2006-01-02"))
	assert.Equal(t, "docs/transcripts", cfg.TranscriptDir)
	assert.EqualValues(t, 500, cfg.TranscriptMinSize)
	assert.Equal(t, 30*time.Second, cfg.EnhanceTimeout)
}

func TestLoadParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
start_date: "2026-03-01"
site_root: site
modules_path: data/modules.json
enhancer:
  provider: gemini
  model: gemini-2.0-flash
  timeout_seconds: 10
transcripts:
  dir: site/transcripts
  min_size_bytes: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "site", cfg.SiteRoot)
	assert.Equal(t, "data/modules.json", cfg.ModulesPath)
	assert.Equal(t, "gemini", cfg.EnhancerProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 10*time.Second, cfg.EnhanceTimeout)
	assert.Equal(t, "2026-03-01", cfg.StartDate.Format("2006-01-02"))
	assert.EqualValues(t, 1000, cfg.TranscriptMinSize)
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_date: \"2026-03-01\"\nsite_root: site\n"), 0644))

	t.Setenv("START_DATE", "2026-06-15")
	t.Setenv("SITE_ROOT", "public")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-06-15", cfg.StartDate.Format("2006-01-02"))
	assert.Equal(t, "public", cfg.SiteRoot)
}

func TestLoadRejectsBadStartDate(t *testing.T) {
	t.Setenv("START_DATE", "21/01/2026")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")
}

func TestLoadReportsUnreadableConfig(t *testing.T) {
	// a directory at the config path fails the read with something other
	// than not-exist, which must surface instead of silently using defaults
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_date: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse")
}
