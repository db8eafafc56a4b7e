// Package config loads SmileCam settings from a TOML file and the
// environment.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/smilecam/internal/theme"
)

const (
	// DefaultMaxUpload is the longest photo edge kept after upload.
	DefaultMaxUpload = 1200
	// DefaultJPEGQuality is used when a downscaled photo is re-encoded.
	DefaultJPEGQuality = 92
	// DefaultProcessingDelay is how long the processing screen stays up.
	DefaultProcessingDelay = 800 * time.Millisecond
	// DefaultInterpolation names the resampling kernel of the compositor.
	DefaultInterpolation = "bilinear"
)

// Duration is a time.Duration written as "800ms" in config files.
type Duration time.Duration

// MarshalText writes d in time.Duration notation.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText parses values such as "800ms" or "1.5s".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Notify selects which events raise a desktop notification.
type Notify struct {
	Export bool `toml:"export"`
	Copy   bool `toml:"copy"`
}

// Config holds every user-tunable setting.
type Config struct {
	Frame           string   `toml:"frame"`
	OutputDir       string   `toml:"output_dir"`
	FormEndpoint    string   `toml:"form_endpoint"`
	MaxUpload       int      `toml:"max_upload"`
	JPEGQuality     int      `toml:"jpeg_quality"`
	ProcessingDelay Duration `toml:"processing_delay"`
	Interpolation   string   `toml:"interpolation"`
	Theme           string   `toml:"theme"`
	Notify          Notify   `toml:"notify"`
	// Themes maps a theme name to "Key" = "#RRGGBB" overrides.
	Themes map[string]map[string]string `toml:"themes,omitempty"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		OutputDir:       ".",
		MaxUpload:       DefaultMaxUpload,
		JPEGQuality:     DefaultJPEGQuality,
		ProcessingDelay: Duration(DefaultProcessingDelay),
		Interpolation:   DefaultInterpolation,
		Themes:          map[string]map[string]string{},
	}
}

// Delay returns the processing delay as a time.Duration.
func (c *Config) Delay() time.Duration { return time.Duration(c.ProcessingDelay) }

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.MaxUpload <= 0 {
		return fmt.Errorf("max_upload must be positive, got %d", c.MaxUpload)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.JPEGQuality)
	}
	if c.ProcessingDelay < 0 {
		return fmt.Errorf("processing_delay must not be negative, got %s", c.Delay())
	}
	for name, values := range c.Themes {
		t := theme.Default()
		for k, v := range values {
			if err := t.Set(k, v); err != nil {
				return fmt.Errorf("themes.%s: %w", name, err)
			}
		}
	}
	return nil
}

// ThemeSet turns the [themes.*] tables into palettes layered over the
// default theme.
func (c *Config) ThemeSet() (map[string]*theme.Theme, error) {
	out := make(map[string]*theme.Theme, len(c.Themes))
	for name, values := range c.Themes {
		t := theme.Default()
		t.Name = name
		for k, v := range values {
			if err := t.Set(k, v); err != nil {
				return nil, fmt.Errorf("themes.%s: %w", name, err)
			}
		}
		out[name] = t
	}
	return out, nil
}

// ApplyEnv overrides fields from SMILECAM_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	str := map[string]*string{
		"SMILECAM_FRAME":         &c.Frame,
		"SMILECAM_OUTPUT_DIR":    &c.OutputDir,
		"SMILECAM_FORM_ENDPOINT": &c.FormEndpoint,
		"SMILECAM_INTERPOLATION": &c.Interpolation,
		"SMILECAM_THEME":         &c.Theme,
	}
	for key, dst := range str {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	ints := map[string]*int{
		"SMILECAM_MAX_UPLOAD":   &c.MaxUpload,
		"SMILECAM_JPEG_QUALITY": &c.JPEGQuality,
	}
	for key, dst := range ints {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	if v := strings.TrimSpace(getenv("SMILECAM_PROCESSING_DELAY")); v != "" {
		if err := c.ProcessingDelay.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("SMILECAM_PROCESSING_DELAY: %w", err)
		}
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("# encode config: %v\n", err)
	}
	return buf.String()
}
