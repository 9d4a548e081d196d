// Package config loads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/calev/stathelper/internal/params"
)

// File maps the TOML configuration file. Pointer fields distinguish unset
// keys from explicit zero values.
type File struct {
	Rounding      *int       `toml:"rounding"`
	DefaultHelper *string    `toml:"default-helper"`
	Plot          PlotConfig `toml:"plot"`
}

// PlotConfig maps plot-related settings.
type PlotConfig struct {
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

// Settings is the resolved configuration with defaults applied.
type Settings struct {
	// Rounding is the initial display digit count (1..9).
	Rounding int
	// DefaultHelper is the helper offered when the selection prompt gets an
	// empty line.
	DefaultHelper string
	// PlotWidth and PlotHeight size the scatter plot; 0 selects automatic
	// terminal sizing.
	PlotWidth  int
	PlotHeight int
}

// Load reads a TOML config from the given path. A missing file is not an
// error.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("stat config: %w", err)
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// Settings resolves the file against the built-in defaults.
func (f File) Settings() Settings {
	s := Settings{
		Rounding:      params.DefaultRounding,
		DefaultHelper: "diff of proportions",
	}
	if f.Rounding != nil && *f.Rounding >= 1 && *f.Rounding <= 9 {
		s.Rounding = *f.Rounding
	}
	if f.DefaultHelper != nil && *f.DefaultHelper != "" {
		s.DefaultHelper = *f.DefaultHelper
	}
	if f.Plot.Width != nil && *f.Plot.Width > 0 {
		s.PlotWidth = *f.Plot.Width
	}
	if f.Plot.Height != nil && *f.Plot.Height > 0 {
		s.PlotHeight = *f.Plot.Height
	}
	return s
}

// DefaultPath resolves the config file path in priority order:
// 1. STATHELPER_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/stathelper/config.toml
// 3. ~/.config/stathelper/config.toml
func DefaultPath() string {
	if p := os.Getenv("STATHELPER_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdgConfigHome(), "stathelper", "config.toml")
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}
