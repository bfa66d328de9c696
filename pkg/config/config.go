// Package config loads print defaults and paper profiles from a TOML file.
//
// The file is optional: Default() is a complete working configuration, and
// CLI flags override anything loaded here. A minimal profile file looks
// like:
//
//	[defaults]
//	paper = "letter"
//	radius = 100.0
//	contrast_boost = 1.0
//	margin_in = 0.25
//
//	[paper.badge]
//	width_in = 4.0
//	height_in = 6.0
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mycofab/imprint/pkg/errors"
	"github.com/mycofab/imprint/pkg/imposition"
)

// Defaults are job parameters applied when flags don't override them.
type Defaults struct {
	Paper         string  `toml:"paper"`
	Radius        float64 `toml:"radius"`
	ContrastBoost float64 `toml:"contrast_boost"`
	MarginIn      float64 `toml:"margin_in"`
	CacheDir      string  `toml:"cache_dir"`
}

// PaperProfile is a named custom sheet size. Both dimensions are required;
// a profile without them is a configuration bug and fails loading.
type PaperProfile struct {
	WidthIn  float64 `toml:"width_in"`
	HeightIn float64 `toml:"height_in"`
}

// Config is the full profile file.
type Config struct {
	Defaults Defaults                `toml:"defaults"`
	Paper    map[string]PaperProfile `toml:"paper"`
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Paper:         imposition.Letter.Name,
			Radius:        100.0,
			ContrastBoost: 1.0,
			MarginIn:      0.25,
		},
	}
}

// Load reads a TOML profile file. A missing file is not an error: the
// defaults are returned so the CLI works out of the box.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolvePaper maps a paper name to a concrete size, checking custom
// profiles first and the built-in registry second.
func (c Config) ResolvePaper(name string) (imposition.Paper, error) {
	if name == "" {
		name = c.Defaults.Paper
	}
	if profile, ok := c.Paper[name]; ok {
		p, err := imposition.CustomPaper(profile.WidthIn, profile.HeightIn)
		if err != nil {
			return imposition.Paper{}, err
		}
		p.Name = name
		return p, nil
	}
	if p, ok := imposition.PaperByName(name); ok {
		return p, nil
	}
	return imposition.Paper{}, errors.New(errors.ErrCodeInvalidPaper,
		"unknown paper %q (built-in sizes: %v)", name, imposition.PaperNames())
}

func (c Config) validate() error {
	for name, profile := range c.Paper {
		if profile.WidthIn <= 0 || profile.HeightIn <= 0 {
			return errors.New(errors.ErrCodeInvalidPaper,
				"paper profile %q requires explicit positive width_in and height_in", name)
		}
	}
	if c.Defaults.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "defaults.radius must not be negative")
	}
	if c.Defaults.ContrastBoost < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "defaults.contrast_boost must not be negative")
	}
	return nil
}
