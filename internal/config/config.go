// Package config loads checkdeck settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "checkdeck.yaml"

type Config struct {
	Provider string         `mapstructure:"provider"`
	Gemini   ProviderConfig `mapstructure:"gemini"`
	OpenAI   ProviderConfig `mapstructure:"openai"`
	Ollama   ProviderConfig `mapstructure:"ollama"`
	Vertex   VertexConfig   `mapstructure:"vertex"`
	Review   ReviewConfig   `mapstructure:"review"`
	Database DatabaseConfig `mapstructure:"database"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Server   ServerConfig   `mapstructure:"server"`
}

type ProviderConfig struct {
	Key      string `mapstructure:"key"`
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

type VertexConfig struct {
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
	Model    string `mapstructure:"model"`
}

type ReviewConfig struct {
	Temperature          float64       `mapstructure:"temperature"`
	TranscriptionTimeout time.Duration `mapstructure:"transcription_timeout"`
	ConsistencyTimeout   time.Duration `mapstructure:"consistency_timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Enabled reports whether run history should be written to Postgres.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

type WatchConfig struct {
	Dir  string `mapstructure:"dir"`
	Done string `mapstructure:"done"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Model returns the configured model for a provider name, or "" to let
// the provider pick its own default.
func (c *Config) Model(provider string) string {
	switch provider {
	case "gemini":
		return c.Gemini.Model
	case "openai":
		return c.OpenAI.Model
	case "ollama":
		return c.Ollama.Model
	case "vertex":
		return c.Vertex.Model
	default:
		return ""
	}
}

// Load reads path (or DefaultFile when path is empty) and overlays the
// environment. A missing default file is not an error; a missing explicit
// path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	mappings := []struct {
		key, env string
	}{
		{"provider", "CHECKDECK_PROVIDER"},

		{"gemini.key", "GEMINI_API_KEY"},
		{"gemini.model", "GEMINI_MODEL"},
		{"openai.key", "OPENAI_API_KEY"},
		{"openai.endpoint", "OPENAI_BASE_URL"},
		{"openai.model", "OPENAI_MODEL"},
		{"ollama.endpoint", "OLLAMA_URL"},
		{"ollama.model", "OLLAMA_MODEL"},
		{"vertex.project", "VERTEX_PROJECT"},
		{"vertex.location", "VERTEX_LOCATION"},
		{"vertex.model", "VERTEX_MODEL"},

		{"review.temperature", "CHECKDECK_TEMPERATURE"},
		{"review.transcription_timeout", "CHECKDECK_TRANSCRIPTION_TIMEOUT"},
		{"review.consistency_timeout", "CHECKDECK_CONSISTENCY_TIMEOUT"},

		{"database.url", "DB_URL"},
		{"watch.dir", "CHECKDECK_WATCH_DIR"},
		{"watch.done", "CHECKDECK_DONE_DIR"},
		{"server.port", "PORT"},
	}

	for _, m := range mappings {
		if err := v.BindEnv(m.key, m.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", m.env, err)
		}
	}

	v.SetDefault("provider", "gemini")
	v.SetDefault("review.temperature", 0.0)
	v.SetDefault("review.transcription_timeout", 70*time.Second)
	v.SetDefault("review.consistency_timeout", 90*time.Second)
	v.SetDefault("watch.dir", "stage")
	v.SetDefault("server.port", 8888)

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicit:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			// optional
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
