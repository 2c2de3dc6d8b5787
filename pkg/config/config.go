// Package config loads the tablecast theme file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/tablecast/config.toml
// (~/.config/tablecast/config.toml) unless a path is given:
//
//	align   = "lrr"
//	stock   = true
//	padding = [12, 6]
//	margin  = [8]
//	format  = "png"
//
//	[colors]
//	header_background = "#f0f0f0"
//	row_line          = "lightgray"
//
//	[font]
//	path = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
//	size = 18
//
//	[cache]
//	redis  = "redis://localhost:6379/0"
//	prefix = "bot:"
//
// Unknown keys are rejected so that typos do not silently fall back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tablecast/pkg/cache"
	"github.com/matzehuels/tablecast/pkg/colors"
	"github.com/matzehuels/tablecast/pkg/encode"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/fonts"
	"github.com/matzehuels/tablecast/pkg/pipeline"
	"github.com/matzehuels/tablecast/pkg/table"
)

const appName = "tablecast"

// Config is the decoded theme file. Zero fields keep the render defaults.
type Config struct {
	Align   string       `toml:"align"`
	Stock   bool         `toml:"stock"`
	Padding []int        `toml:"padding"`
	Margin  []int        `toml:"margin"`
	Format  string       `toml:"format"`
	Colors  colors.Theme `toml:"colors"`
	Font    Font         `toml:"font"`
	Cache   Cache        `toml:"cache"`
}

// Font selects the face used for cell text.
type Font struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// Cache configures the artifact cache.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	Redis    string `toml:"redis"`
	Prefix   string `toml:"prefix"`
}

// Default returns an empty configuration.
func Default() Config {
	return Config{}
}

// DefaultPath returns the path of the user's theme file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the theme file at path.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LoadDefault reads the theme file at [DefaultPath]. A missing file yields
// [Default].
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Options converts the configuration to pipeline options. It loads the
// configured font, so errors include missing or unreadable font files.
func (c Config) Options() ([]pipeline.Option, error) {
	var opts []pipeline.Option

	if c.Align != "" {
		if _, err := table.ParseAlign(c.Align); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "align")
		}
		opts = append(opts, pipeline.WithAlign(c.Align))
	}
	if c.Stock {
		opts = append(opts, pipeline.WithStockMode(true))
	}

	switch len(c.Padding) {
	case 0:
	case 1:
		opts = append(opts, pipeline.WithCellPadding(c.Padding[0], c.Padding[0]))
	case 2:
		opts = append(opts, pipeline.WithCellPadding(c.Padding[0], c.Padding[1]))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"padding takes [horizontal, vertical], got %d values", len(c.Padding))
	}
	if len(c.Margin) > 0 {
		opts = append(opts, pipeline.WithMargin(c.Margin...))
	}

	if c.Format != "" {
		f, err := encode.ParseFormat(c.Format)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "format")
		}
		opts = append(opts, pipeline.WithFormats(f))
	}

	pal, err := c.Colors.Palette()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors")
	}
	opts = append(opts, pipeline.WithColors(pal))

	if c.Font.Path != "" || c.Font.Size != 0 {
		face, id, err := c.Font.Load()
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithNamedFont(face, id))
	}
	return opts, nil
}

// Load builds the configured face and its cache identity.
func (f Font) Load() (*fonts.Face, string, error) {
	size := f.Size
	if size == 0 {
		size = fonts.DefaultSize
	}
	if f.Path == "" {
		face, err := fonts.Regular(size)
		return face, fmt.Sprintf("%s@%g", fonts.DefaultName, size), err
	}
	face, err := fonts.Load(f.Path, size)
	if err != nil {
		return nil, "", err
	}
	// The id includes a content hash so replacing the file at the same
	// path invalidates artifacts rendered with the old face.
	data, err := os.ReadFile(f.Path)
	if err != nil {
		face.Close()
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFont, err, "read font %s", f.Path)
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		abs = f.Path
	}
	return face, fmt.Sprintf("%s@%g#%s", abs, size, cache.Hash(data)[:16]), nil
}
