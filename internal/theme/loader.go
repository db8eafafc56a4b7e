package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader resolves a theme name to a palette.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Custom holds themes declared in the config file; they win over files.
	Custom map[string]*Theme
}

// NewLoader returns a loader using the standard search directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "smilecam", "themes"),
		SystemDir: "/usr/share/smilecam/themes",
	}
}

// Load finds a theme by trying, in order: an existing file path, themes
// from the config file, embedded themes, ConfigDir and SystemDir. An empty
// name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}
	if t, ok := l.Custom[name]; ok && t != nil {
		return t, nil
	}
	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if f, err := EmbeddedThemes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return t, nil
}
