package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zephyrtronium/calculator/arith"
	"github.com/zephyrtronium/calculator/config"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, "calc.yaml", `
angle_unit: deg
output:
  sigfig: ${SIGFIG:-12}
  superscript: true
  locale: ${LOCALE}
database: data/history.db
logging:
  level: debug
  format: json
`)
	cfg, abs, err := config.Load(p, env(map[string]string{"LOCALE": "de"}))
	if err != nil {
		t.Fatal(err)
	}
	if abs != p {
		t.Errorf("want path %s, got %s", p, abs)
	}
	if cfg.Angle() != arith.Deg {
		t.Errorf("want deg, got %v", cfg.Angle())
	}
	if cfg.Database != filepath.Join(dir, "data", "history.db") {
		t.Errorf("database not resolved: %s", cfg.Database)
	}
	o := cfg.FormatOptions()
	if o.SigFig != 12 || o.Lower != 3 || o.Upper != 6 || !o.Superscript {
		t.Errorf("wrong format options %+v", o)
	}
	if o.Locale.String() != "de" {
		t.Errorf("want de, got %v", o.Locale)
	}
	if cfg.HistoryLimit != 100 {
		t.Errorf("history limit not defaulted: %d", cfg.HistoryLimit)
	}
	if cfg.Logging.Format != "json" || cfg.LogLevel().String() != "DEBUG" {
		t.Errorf("wrong logging %+v", cfg.Logging)
	}
}

func TestLoadEnvPath(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, "calc.yaml", "database: ':memory:'\n")
	cfg, abs, err := config.Load("", env(map[string]string{config.EnvPath: p}))
	if err != nil {
		t.Fatal(err)
	}
	if abs != p {
		t.Errorf("want path %s, got %s", p, abs)
	}
	if cfg.Database != ":memory:" {
		t.Errorf("memory database resolved as a path: %s", cfg.Database)
	}
	if _, _, err := config.Load("", env(map[string]string{config.EnvPath: filepath.Join(dir, "nope.yaml")})); err == nil {
		t.Error("no error for missing env config")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), env(nil)); err == nil {
		t.Error("no error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	p := write(t, t.TempDir(), "calc.yaml", `
angle_unit: grad
output:
  sigfig: 0
  scientific_lower: -1
  locale: "!!"
history_limit: -5
logging:
  level: loud
  format: xml
`)
	_, _, err := config.Load(p, env(nil))
	if err == nil {
		t.Fatal("no error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration errors:") {
		t.Errorf("wrong error form: %s", msg)
	}
	for _, want := range []string{"angle_unit", "output.sigfig", "output.scientific_lower", "output.locale", "history_limit", "log level", "log format"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error does not mention %s: %s", want, msg)
		}
	}
	if strings.Contains(msg, "scientific_upper") {
		t.Errorf("error mentions valid field: %s", msg)
	}
	if err := config.Validate(config.Defaults()); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, "calc.yaml", "angle_unit: rad\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := make(chan *config.Config, 4)
	if err := config.Watch(ctx, p, env(nil), nil, func(cfg *config.Config) { ch <- cfg }); err != nil {
		t.Fatal(err)
	}
	// Invalid configs are ignored.
	write(t, dir, "calc.yaml", "angle_unit: turns\n")
	select {
	case cfg := <-ch:
		t.Fatalf("reloaded invalid config %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
	write(t, dir, "calc.yaml", "angle_unit: deg\n")
	select {
	case cfg := <-ch:
		if cfg.Angle() != arith.Deg {
			t.Errorf("want deg, got %s", cfg.AngleUnit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}
