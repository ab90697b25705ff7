package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/reqdoc/htmldoc"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("output", DefaultOutput, "")
	fs.Int("concurrency", 1, "")
	fs.String("html-navigation", DefaultHTMLNavigation, "")
	return fs
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "json", cfg.Output)
	assert.GreaterOrEqual(t, cfg.Concurrency, 1)
	assert.Equal(t, "standard", cfg.HTMLNavigation)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\ncatalog: ozel.yaml\noutput: yaml\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ozel.yaml", cfg.Catalog)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\noutput: yaml\nconcurrency: 2\n"), 0o644))
	t.Setenv("REQDOC_OUTPUT", "markdown")
	t.Setenv("REQDOC_CONCURRENCY", "3")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--concurrency=5"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "file value kept when nothing overrides it")
	assert.Equal(t, "markdown", cfg.Output, "environment wins over file")
	assert.Equal(t, 5, cfg.Concurrency, "set flag wins over environment")
}

func TestLoad_HTMLNavigation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("html_navigation: explicit\n"), 0o644))

	cfg, err := Load(path, testFlags())
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.HTMLNavigation)
	assert.Equal(t, htmldoc.NavigationExclusionExplicit, cfg.ConvertConfig().HTMLNavigation)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--html-navigation=aggressive"}))
	cfg, err = Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, htmldoc.NavigationExclusionAggressive, cfg.ConvertConfig().HTMLNavigation)

	t.Setenv("REQDOC_HTML_NAVIGATION", "yan")
	_, err = Load(path, nil)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "yok.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"format", func(c *Config) { c.LogFormat = "xml" }},
		{"concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"output", func(c *Config) { c.Output = "csv" }},
		{"html navigation", func(c *Config) { c.HTMLNavigation = "hepsi" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
