package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a config with the standard search order:
// customPath -> ~/.arcade/configs/<filename> -> ./configs/<filename> ->
// embedded default -> hardcoded fallback.
//
// Only an unreadable or unparsable explicit customPath is an error; every
// other step falls through silently.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userPath := userConfigPath(filename); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadFlappy loads the Flappy Bird configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load(customPath, "flappy.yaml", defaultFlappyYAML, DefaultFlappyConfig)
}

// LoadDino loads the Dino Runner configuration.
func LoadDino(customPath string) (DinoConfig, error) {
	return load(customPath, "dino.yaml", defaultDinoYAML, DefaultDinoConfig)
}

// LoadBreakout loads the Brick Breaker configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return load(customPath, "breakout.yaml", defaultBreakoutYAML, DefaultBreakoutConfig)
}

// LoadInvaders loads the Space Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return load(customPath, "invaders.yaml", defaultInvadersYAML, DefaultInvadersConfig)
}

// LoadTelemetry loads the telemetry endpoint settings.
func LoadTelemetry(customPath string) (TelemetryConfig, error) {
	cfg, err := load(customPath, "telemetry.yaml", defaultTelemetryYAML, DefaultTelemetryConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTelemetryConfig().TimeoutSeconds
	}
	if cfg.ShutdownFlushSeconds <= 0 {
		cfg.ShutdownFlushSeconds = DefaultTelemetryConfig().ShutdownFlushSeconds
	}
	return cfg, nil
}
