package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/midbel/poster"
	"github.com/midbel/poster/loader"
	"gopkg.in/yaml.v3"
)

// Default gives the configuration used when no file is given.
func Default() Config {
	colors := poster.DefaultColors()
	return Config{
		Type:     "clock",
		Format:   "svg",
		Output:   "poster.svg",
		Width:    200,
		Height:   300,
		Language: "en",
		Units:    "metric",
		Year:     "all",
		Colors: ColorsConfig{
			Background: colors.Background,
			Text:       colors.Text,
			Track:      colors.Track,
			Track2:     colors.Track2,
			Special:    colors.Special,
			Special2:   colors.Special2,
		},
		MergeGap:  4 * time.Hour,
		Animation: AnimationConfig{Time: 30},
		Clock:     ClockConfig{HourColor: "darkgrey"},
		Input:     []string{"."},
	}
}

// Load reads the YAML file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// Poster creates a poster from the configuration.
func (c Config) Poster() (*poster.Poster, error) {
	units, err := poster.UnitsFor(c.Units)
	if err != nil {
		return nil, err
	}
	p := poster.New()
	p.Title = c.Title
	p.Athlete = c.Athlete
	p.Width = c.Width
	p.Height = c.Height
	p.Units = units
	p.WithAnimation = c.Animation.Enabled
	p.AnimationTime = c.Animation.Time
	p.Colors = poster.Colors{
		Background: c.Colors.Background,
		Text:       c.Colors.Text,
		Track:      c.Colors.Track,
		Track2:     c.Colors.Track2,
		Special:    c.Colors.Special,
		Special2:   c.Colors.Special2,
	}
	if err := p.Colors.Validate(); err != nil {
		return nil, err
	}
	p.SetLanguage(poster.ParseLanguage(c.Language))
	return p, nil
}

// LoaderOptions gives the options of the track loader. Distances are
// expressed in the configured units.
func (c Config) LoaderOptions() (loader.Options, error) {
	units, err := poster.UnitsFor(c.Units)
	if err != nil {
		return loader.Options{}, err
	}
	years, err := poster.ParseYearRange(c.Year)
	if err != nil {
		return loader.Options{}, err
	}
	opts := loader.Options{
		Workers:         c.Workers,
		CacheDir:        c.CacheDir,
		Years:           years,
		MinDistance:     units.Of(c.MinDistance),
		ActivityType:    c.ActivityType,
		MergeGap:        c.MergeGap,
		Special:         c.Special,
		SpecialDistance: units.Of(c.SpecialDistance),
	}
	return opts, nil
}
