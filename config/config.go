// Package config loads the process configuration from an optional YAML file
// with environment-variable overrides for secrets. Model API keys
// (OPENAI_API_KEY, ANTHROPIC_API_KEY) are read by the SDK clients themselves
// and are not duplicated here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelConfig selects and tunes the generation backend.
type ModelConfig struct {
	Provider string `yaml:"provider"` // openai or anthropic
	Name     string `yaml:"name"`     // provider-specific model id; empty = adapter default
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Backend string `yaml:"backend"` // memory, file or sqlite
	Path    string `yaml:"path"`    // file path or sqlite DSN
}

// ProviderConfig holds data-provider credentials.
type ProviderConfig struct {
	SportsAPIKey  string `yaml:"sports_api_key"`
	WeatherAPIKey string `yaml:"weather_api_key"`
	AzureMapsKey  string `yaml:"azure_maps_key"`
}

// Config is the full process configuration.
type Config struct {
	ListenAddr string         `yaml:"listen_addr"`
	LogLevel   string         `yaml:"log_level"`
	LogFormat  string         `yaml:"log_format"`
	Model      ModelConfig    `yaml:"model"`
	Session    SessionConfig  `yaml:"session"`
	Providers  ProviderConfig `yaml:"providers"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		LogFormat:  "json",
		Model:      ModelConfig{Provider: "openai"},
		Session:    SessionConfig{Backend: "file", Path: "memory_store.json"},
	}
}

// Load reads the config file at path (if non-empty) over the defaults, then
// applies environment overrides. A missing file at the default path is fine;
// an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"MATCHDAY_LISTEN_ADDR":     &cfg.ListenAddr,
		"MATCHDAY_LOG_LEVEL":       &cfg.LogLevel,
		"MATCHDAY_MODEL_PROVIDER":  &cfg.Model.Provider,
		"MATCHDAY_MODEL_NAME":      &cfg.Model.Name,
		"MATCHDAY_SESSION_BACKEND": &cfg.Session.Backend,
		"MATCHDAY_SESSION_PATH":    &cfg.Session.Path,
		"MATCHDAY_SPORTS_API_KEY":  &cfg.Providers.SportsAPIKey,
		"MATCHDAY_WEATHER_API_KEY": &cfg.Providers.WeatherAPIKey,
		"MATCHDAY_AZURE_MAPS_KEY":  &cfg.Providers.AzureMapsKey,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}
