package config

import (
	_ "embed"
)

//go:embed defaults/dinojump.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Runtime: RuntimeConfig{
			FPS: 60,
		},
		Layout: LayoutConfig{
			CellWidth:     16,
			CellHeight:    32,
			PlayerX:       48,
			PlayerWidth:   64,
			PlayerHeight:  64,
			ObstacleWidth: 32,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     1.0,
			SampleRate: 44100,
		},
		Storage: StorageConfig{
			DB:      "~/.dinojump/dinojump.db",
			BestKey: "dinoHighScore",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.dinojump/dinojump.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
