// Package config loads the command line tool's settings from flags,
// REQDOC_ environment variables and an optional reqdoc.yaml file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/reqdoc/convert"
	"github.com/tsawler/reqdoc/export"
	"github.com/tsawler/reqdoc/htmldoc"
	"github.com/tsawler/reqdoc/internal/logging"
)

// Default values
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatText
	DefaultOutput    = "json"

	DefaultHTMLNavigation = "standard"

	EnvPrefix = "REQDOC"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"log-format":  "log_format",
	"catalog":     "catalog",
	"concurrency": "concurrency",
	"output":      "output",

	"html-navigation": "html_navigation",
}

// Config holds the tool configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Catalog is the path of a section catalog; empty means the embedded
	// default.
	Catalog string `mapstructure:"catalog"`

	Concurrency int    `mapstructure:"concurrency"`
	Output      string `mapstructure:"output"`

	// HTMLNavigation names how page chrome is removed from HTML input:
	// none, explicit, standard or aggressive.
	HTMLNavigation string `mapstructure:"html_navigation"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Concurrency: runtime.GOMAXPROCS(0),
		Output:      DefaultOutput,

		HTMLNavigation: DefaultHTMLNavigation,
	}
}

// Load reads the configuration. Flags that were set win over environment
// variables, which win over the config file. cfgFile may be empty, in
// which case reqdoc.yaml is looked up in the working directory and in
// $HOME/.reqdoc; a missing file is not an error.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("catalog", defaults.Catalog)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("html_navigation", defaults.HTMLNavigation)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("reqdoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reqdoc")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log format must be %q or %q", logging.FormatText, logging.FormatJSON)
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if _, err := export.ParseFormat(c.Output); err != nil {
		return err
	}
	if _, ok := htmldoc.ParseNavigationExclusionMode(c.HTMLNavigation); !ok {
		return fmt.Errorf("html navigation must be none, explicit, standard or aggressive, got %q", c.HTMLNavigation)
	}
	return nil
}

// ConvertConfig returns the converter options for the configuration.
func (c *Config) ConvertConfig() convert.Config {
	config := convert.DefaultConfig()
	config.HTMLNavigation, _ = htmldoc.ParseNavigationExclusionMode(c.HTMLNavigation)
	return config
}
