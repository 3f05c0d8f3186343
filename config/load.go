package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "CALCULATOR_CONFIG"

// errNoConfig is returned by resolvePath when no default location holds a
// config file.
var errNoConfig = errors.New("no config file found")

// Load reads configuration from a file with environment interpolation.
// If path is empty, it searches default locations and returns the defaults
// when none exists. It also returns the absolute path of the file it read,
// or the empty string if it used the defaults.
func Load(path string, getenv func(string) string) (*Config, string, error) {
	path, err := resolvePath(path, getenv)
	if errors.Is(err, errNoConfig) {
		return Defaults(), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg, err := read(abs, getenv)
	if err != nil {
		return nil, "", err
	}
	return cfg, abs, nil
}

// read loads and validates the config file at the absolute path abs.
func read(abs string, getenv func(string) string) (*Config, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	data = interpolateEnv(data, getenv)
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.BaseDir = filepath.Dir(abs)
	if cfg.Database != "" && cfg.Database != ":memory:" && !filepath.IsAbs(cfg.Database) {
		cfg.Database = filepath.Join(cfg.BaseDir, cfg.Database)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath finds the config file to use.
// Search order: explicit path > CALCULATOR_CONFIG env > ./calculator.yaml >
// ~/.config/calculator/calculator.yaml
func resolvePath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}
	if p := getenv(EnvPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s file not found: %s", EnvPath, p)
		}
		return p, nil
	}
	if _, err := os.Stat("calculator.yaml"); err == nil {
		return "calculator.yaml", nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", "calculator", "calculator.yaml")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errNoConfig
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		v := getenv(string(parts[1]))
		if v == "" && len(parts[2]) > 0 {
			v = string(parts[2])
		}
		return []byte(v)
	})
}

// Validate checks the configuration for errors, reporting all of them at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.AngleUnit != "rad" && cfg.AngleUnit != "deg" {
		errs = append(errs, fmt.Sprintf("invalid angle_unit: %q (must be rad or deg)", cfg.AngleUnit))
	}

	if cfg.Output.SigFig < 1 {
		errs = append(errs, fmt.Sprintf("invalid output.sigfig: %d (must be positive)", cfg.Output.SigFig))
	}
	if cfg.Output.ScientificLower < 1 {
		errs = append(errs, fmt.Sprintf("invalid output.scientific_lower: %d (must be positive)", cfg.Output.ScientificLower))
	}
	if cfg.Output.ScientificUpper < 1 {
		errs = append(errs, fmt.Sprintf("invalid output.scientific_upper: %d (must be positive)", cfg.Output.ScientificUpper))
	}
	if cfg.Output.Locale != "" {
		if _, err := language.Parse(cfg.Output.Locale); err != nil {
			errs = append(errs, fmt.Sprintf("invalid output.locale: %q (%v)", cfg.Output.Locale, err))
		}
	}

	if cfg.HistoryLimit < 0 {
		errs = append(errs, fmt.Sprintf("invalid history_limit: %d (must not be negative)", cfg.HistoryLimit))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be json or text)", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
