package config

import "time"

// ColorsConfig contains the colours of the poster
type ColorsConfig struct {
	Background string `yaml:"background" validate:"required"`
	Text       string `yaml:"text" validate:"required"`
	Track      string `yaml:"track" validate:"required"`
	Track2     string `yaml:"track2"`
	Special    string `yaml:"special" validate:"required"`
	Special2   string `yaml:"special2"`
}

// AnimationConfig contains the settings of the clock animation
type AnimationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Time    float64 `yaml:"time" validate:"gt=0"`
}

// ClockConfig contains the options of the clock poster
type ClockConfig struct {
	Hours     bool   `yaml:"hours"`
	HourColor string `yaml:"hour_color" validate:"required"`
}

// HeatmapConfig contains the options of the heatmap poster
type HeatmapConfig struct {
	Center string  `yaml:"center"`
	Radius float64 `yaml:"radius" validate:"gte=0"`
	Tiles  string  `yaml:"tiles" validate:"omitempty,url"`
}

// Config is the root configuration structure
type Config struct {
	Title    string  `yaml:"title"`
	Athlete  string  `yaml:"athlete"`
	Type     string  `yaml:"type" validate:"oneof=clock heatmap"`
	Format   string  `yaml:"format" validate:"oneof=svg png"`
	Output   string  `yaml:"output" validate:"required"`
	Width    float64 `yaml:"width" validate:"gt=0"`
	Height   float64 `yaml:"height" validate:"gt=0"`
	Language string  `yaml:"language"`
	Units    string  `yaml:"units" validate:"oneof=metric imperial"`
	Year     string  `yaml:"year"`

	Colors ColorsConfig `yaml:"colors"`

	Special         []string      `yaml:"special"`
	SpecialDistance float64       `yaml:"special_distance" validate:"gte=0"`
	MinDistance     float64       `yaml:"min_distance" validate:"gte=0"`
	ActivityType    string        `yaml:"activity_type"`
	MergeGap        time.Duration `yaml:"merge_gap" validate:"gte=0"`

	Animation AnimationConfig `yaml:"animation"`
	Clock     ClockConfig     `yaml:"clock"`
	Heatmap   HeatmapConfig   `yaml:"heatmap"`

	Input    []string `yaml:"input" validate:"required,min=1"`
	CacheDir string   `yaml:"cache_dir"`
	Workers  int      `yaml:"workers" validate:"gte=0"`
}
