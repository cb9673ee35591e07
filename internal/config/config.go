// Package config provides YAML and TOML configuration loading for dinojump.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinojump/internal/dino"
)

// Config contains every setting of the game and its front ends.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime" toml:"runtime"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Audio   AudioConfig   `yaml:"audio" toml:"audio"`
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	Log     LogConfig     `yaml:"log" toml:"log"`

	// Source is the file the configuration was read from, empty for
	// built-in defaults.
	Source string `yaml:"-" toml:"-"`
}

// RuntimeConfig controls frame timing and randomness.
type RuntimeConfig struct {
	FPS  int   `yaml:"fps" toml:"fps"`
	Seed int64 `yaml:"seed" toml:"seed"` // 0 = time-based
}

// LayoutConfig defines the field geometry. The field is measured in field
// units; one terminal cell covers CellWidth x CellHeight of them.
type LayoutConfig struct {
	CellWidth     float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight    float64 `yaml:"cell_height" toml:"cell_height"`
	PlayerX       float64 `yaml:"player_x" toml:"player_x"`
	PlayerWidth   float64 `yaml:"player_width" toml:"player_width"`
	PlayerHeight  float64 `yaml:"player_height" toml:"player_height"`
	ObstacleWidth float64 `yaml:"obstacle_width" toml:"obstacle_width"`
}

// AudioConfig controls the jump cue.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled"`
	Volume     float64 `yaml:"volume" toml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
}

// StorageConfig locates the database.
type StorageConfig struct {
	DB      string `yaml:"db" toml:"db"`
	BestKey string `yaml:"best_key" toml:"best_key"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // Used while the terminal UI runs
}

// Field returns the field geometry for a terminal of cols x rows cells.
func (c Config) Field(cols, rows int) dino.Layout {
	return dino.Layout{
		Width:         float64(cols) * c.Layout.CellWidth,
		Height:        float64(rows) * c.Layout.CellHeight,
		PlayerX:       c.Layout.PlayerX,
		PlayerWidth:   c.Layout.PlayerWidth,
		PlayerHeight:  c.Layout.PlayerHeight,
		ObstacleWidth: c.Layout.ObstacleWidth,
	}
}

// LogLevel returns the parsed log level, or info when it is invalid.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"runtime.fps", float64(c.Runtime.FPS)},
		{"layout.cell_width", c.Layout.CellWidth},
		{"layout.cell_height", c.Layout.CellHeight},
		{"layout.player_width", c.Layout.PlayerWidth},
		{"layout.player_height", c.Layout.PlayerHeight},
		{"layout.obstacle_width", c.Layout.ObstacleWidth},
		{"audio.sample_rate", float64(c.Audio.SampleRate)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", p.name, p.value)
		}
	}

	if c.Layout.PlayerX < 0 {
		return fmt.Errorf("config: layout.player_x must not be negative, got %v", c.Layout.PlayerX)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
