// Package config loads calculator settings from YAML files.
package config

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/zephyrtronium/calculator/arith"
	"github.com/zephyrtronium/calculator/format"
)

// Config holds calculator settings.
type Config struct {
	// BaseDir is the directory containing the config file, used to resolve
	// relative paths. It is empty when no file was loaded.
	BaseDir string `yaml:"-"`

	AngleUnit    string  `yaml:"angle_unit"`
	Output       Output  `yaml:"output"`
	Database     string  `yaml:"database"`
	HistoryLimit int     `yaml:"history_limit"`
	Logging      Logging `yaml:"logging"`
}

// Output holds settings for formatting answers.
type Output struct {
	SigFig          int    `yaml:"sigfig"`
	ScientificLower int    `yaml:"scientific_lower"`
	ScientificUpper int    `yaml:"scientific_upper"`
	Superscript     bool   `yaml:"superscript"`
	Locale          string `yaml:"locale"`
	Group           bool   `yaml:"group"`
}

// Logging holds logging settings.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		AngleUnit: "rad",
		Output: Output{
			SigFig:          format.DefaultOptions.SigFig,
			ScientificLower: format.DefaultOptions.Lower,
			ScientificUpper: format.DefaultOptions.Upper,
		},
		HistoryLimit: 100,
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Angle returns the configured angle unit. It assumes the config is valid.
func (cfg *Config) Angle() arith.AngleUnit {
	if cfg.AngleUnit == "deg" {
		return arith.Deg
	}
	return arith.Rad
}

// FormatOptions returns the configured output options. It assumes the config
// is valid.
func (cfg *Config) FormatOptions() format.Options {
	o := format.Options{
		SigFig:      cfg.Output.SigFig,
		Lower:       cfg.Output.ScientificLower,
		Upper:       cfg.Output.ScientificUpper,
		Superscript: cfg.Output.Superscript,
		Group:       cfg.Output.Group,
	}
	if cfg.Output.Locale != "" {
		o.Locale, _ = language.Parse(cfg.Output.Locale)
	}
	return o
}

// LogLevel returns the configured log level. It assumes the config is valid.
func (cfg *Config) LogLevel() slog.Level {
	switch cfg.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
