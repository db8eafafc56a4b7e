package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
frame = "/tmp/frame.png"
output_dir = "/tmp/out"
form_endpoint = "https://example.invalid/f/abc"
processing_delay = "250ms"
interpolation = "catmullrom"
theme = "ocean"

[notify]
export = true
copy = false

[themes.ocean]
Background = "#111111"
Accent = "#0077BE"
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Frame != "/tmp/frame.png" || cfg.OutputDir != "/tmp/out" {
		t.Errorf("unexpected paths %q %q", cfg.Frame, cfg.OutputDir)
	}
	if cfg.Delay() != 250*time.Millisecond {
		t.Errorf("delay = %s", cfg.Delay())
	}
	if cfg.MaxUpload != DefaultMaxUpload || cfg.JPEGQuality != DefaultJPEGQuality {
		t.Errorf("defaults lost: %d %d", cfg.MaxUpload, cfg.JPEGQuality)
	}
	if !cfg.Notify.Export || cfg.Notify.Copy {
		t.Errorf("unexpected notify %+v", cfg.Notify)
	}
	themes, err := cfg.ThemeSet()
	if err != nil {
		t.Fatalf("ThemeSet: %v", err)
	}
	ocean := themes["ocean"]
	if ocean == nil || ocean.Background.R != 0x11 || ocean.Accent.B != 0xBE {
		t.Fatalf("unexpected theme %+v", ocean)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse(strings.NewReader(`outptu_dir = "x"`)); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestCircular(t *testing.T) {
	cfg := New()
	cfg.Theme = "dark"
	cfg.FormEndpoint = "https://example.invalid/f"
	cfg.Notify = Notify{Export: true, Copy: true}
	cfg.ProcessingDelay = Duration(1500 * time.Millisecond)
	cfg.Themes["custom"] = map[string]string{"Background": "#000000"}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("parse generated config: %v\n%s", err, cfg.String())
	}
	if cfg2.Theme != cfg.Theme || cfg2.FormEndpoint != cfg.FormEndpoint || cfg2.Notify != cfg.Notify {
		t.Errorf("mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	if cfg2.Delay() != cfg.Delay() {
		t.Errorf("delay %s vs %s", cfg2.Delay(), cfg.Delay())
	}
	if cfg2.Themes["custom"]["Background"] != "#000000" {
		t.Errorf("theme table lost: %v", cfg2.Themes)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SMILECAM_OUTPUT_DIR":       "/env/out",
		"SMILECAM_JPEG_QUALITY":     "80",
		"SMILECAM_PROCESSING_DELAY": "2s",
	}
	cfg := New()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.OutputDir != "/env/out" || cfg.JPEGQuality != 80 || cfg.Delay() != 2*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	env["SMILECAM_MAX_UPLOAD"] = "lots"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Fatal("expected error for non-numeric max upload")
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cfg.JPEGQuality = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected jpeg quality error")
	}
	cfg = New()
	cfg.Themes["bad"] = map[string]string{"Accent": "blue"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected theme colour error")
	}
}

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	l := NewLoader("1.0.0", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("expected no config, got %s", got)
	}
	cfg, err := l.Load()
	if err != nil || cfg.OutputDir != "." {
		t.Fatalf("defaults expected, got %+v %v", cfg, err)
	}

	xdg := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte(`output_dir = "xdg"`), 0o644); err != nil {
		t.Fatal(err)
	}
	override := filepath.Join(dir, "override.toml")
	if err := os.WriteFile(override, []byte(`output_dir = "override"`), 0o644); err != nil {
		t.Fatal(err)
	}

	if cfg, err := NewLoader("1.0.0", "").Load(); err != nil || cfg.OutputDir != "xdg" {
		t.Fatalf("xdg config expected, got %+v %v", cfg, err)
	}
	if cfg, err := NewLoader("1.0.0", override).Load(); err != nil || cfg.OutputDir != "override" {
		t.Fatalf("override config expected, got %+v %v", cfg, err)
	}
}

func TestLoaderMissingOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	xdg := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte(`output_dir = "xdg"`), 0o644); err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(dir, "typo.toml")
	l := NewLoader("1.0.0", missing)
	if got := l.GetConfigPath(); got != missing {
		t.Fatalf("GetConfigPath = %s, want %s", got, missing)
	}
	cfg, err := l.Load()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %+v %v", cfg, err)
	}
	if !strings.Contains(err.Error(), "typo.toml") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := New()
	cfg.Theme = "dark"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := NewLoader("", path).Load()
	if err != nil || got.Theme != "dark" {
		t.Fatalf("reload = %+v, %v", got, err)
	}
}
