package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dinojump/internal/core"
)

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Environment overrides.
const (
	EnvAudioEnabled = "DINOJUMP_AUDIO_ENABLED"
	EnvVolume       = "DINOJUMP_VOLUME" // 0-100
	EnvLogLevel     = "DINOJUMP_LOG_LEVEL"
	EnvDB           = "DINOJUMP_DB"
)

// Load loads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.dinojump/config.yaml -> ~/.dinojump/config.toml
// -> ./configs/dinojump.yaml -> embedded default -> Default().
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (Config, error) {
	cfg, err := find(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func find(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Decode(data, FormatFor(customPath))
		if err != nil {
			return Default(), fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("config.yaml"),
		userConfigPath("config.toml"),
		filepath.Join("configs", "dinojump.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Decode(data, FormatFor(path)); err == nil {
			cfg.Source = path
			return cfg, nil
		}
	}

	// Fallback to hardcoded if the embedded file is broken
	if cfg, err := Decode(defaultYAML, FormatYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dinojump", filename)
}

// FormatFor picks the format from a file extension. Anything but .toml is YAML.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data on top of Default(), so missing keys keep their
// default values.
func Decode(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("config: unknown format %q", format)
	}
	return cfg, nil
}

// Encode renders cfg in the given format.
func Encode(cfg Config, format string) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: cannot encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
}

// ApplyEnv overrides cfg from DINOJUMP_* environment variables.
// Values that do not parse are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = enabled
		}
	}

	// Volume is given as 0-100 and clamped.
	if v := os.Getenv(EnvVolume); v != "" {
		if pct, err := strconv.Atoi(v); err == nil {
			cfg.Audio.Volume = core.ClampF(float64(pct)/100.0, 0, 1)
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.DB = v
	}
}
