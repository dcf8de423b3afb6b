// Package config resolves runtime settings from three layers: built-in
// defaults, an optional config.yaml, and environment variables (a .env file
// is loaded by the command entry point first). Environment wins so a
// scheduled job can override anything without touching files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultStartDate is the rotation epoch - day one of the study plan
	DefaultStartDate = "2026-01-21"

	defaultSiteRoot    = "docs"
	defaultModulesPath = "modules.json"
	defaultPlaylist    = "https://www.youtube.com/watch?v=jJMWFi0nJ6c&list=PLba-X8Aih0CCLzEeoICOx7qzkvjjCJt0G"
)

// fileConfig models config.yaml
type fileConfig struct {
	StartDate   string `yaml:"start_date"`
	SiteRoot    string `yaml:"site_root"`
	ModulesPath string `yaml:"modules_path"`

	Enhancer struct {
		Provider       string `yaml:"provider"` // "gemini" or "static"
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"enhancer"`

	Transcripts struct {
		PlaylistURL  string `yaml:"playlist_url"`
		Dir          string `yaml:"dir"`
		MinSizeBytes int64  `yaml:"min_size_bytes"`
	} `yaml:"transcripts"`
}

// Config is the resolved runtime configuration
type Config struct {
	StartDate   time.Time // rotation epoch
	SiteRoot    string    // where index.html and archive/ are written
	ModulesPath string    // module table JSON

	EnhancerProvider string // "gemini" or "static"
	GeminiAPIKey     string
	GeminiModel      string
	EnhanceTimeout   time.Duration

	PlaylistURL       string
	TranscriptDir     string
	TranscriptMinSize int64
}

// Load resolves configuration. The yaml file is optional; a malformed one
// is an error because silently ignoring it would hide typos.
func Load(path string) (*Config, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("cannot parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// a missing file just means defaults; anything else - permissions,
		// a directory in the way - is worth stopping over
	default:
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := &Config{
		SiteRoot:          firstOf(os.Getenv("SITE_ROOT"), fc.SiteRoot, defaultSiteRoot),
		ModulesPath:       firstOf(os.Getenv("MODULES_PATH"), fc.ModulesPath, defaultModulesPath),
		EnhancerProvider:  firstOf(os.Getenv("ENHANCER"), fc.Enhancer.Provider, "static"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       firstOf(os.Getenv("GEMINI_MODEL"), fc.Enhancer.Model),
		PlaylistURL:       firstOf(os.Getenv("PLAYLIST_URL"), fc.Transcripts.PlaylistURL, defaultPlaylist),
		TranscriptMinSize: fc.Transcripts.MinSizeBytes,
	}

	cfg.TranscriptDir = firstOf(os.Getenv("TRANSCRIPT_DIR"), fc.Transcripts.Dir)
	if cfg.TranscriptDir == "" {
		cfg.TranscriptDir = cfg.SiteRoot + "/transcripts"
	}
	if cfg.TranscriptMinSize <= 0 {
		cfg.TranscriptMinSize = 500
	}

	cfg.EnhanceTimeout = 30 * time.Second
	if fc.Enhancer.TimeoutSeconds > 0 {
		cfg.EnhanceTimeout = time.Duration(fc.Enhancer.TimeoutSeconds) * time.Second
	}

	startStr := firstOf(os.Getenv("START_DATE"), fc.StartDate, DefaultStartDate)
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	cfg.StartDate = start

	return cfg, nil
}

// firstOf returns the first non-empty value
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
