package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CHECKDECK_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY",
		"OPENAI_BASE_URL", "OPENAI_MODEL", "OLLAMA_URL", "OLLAMA_MODEL",
		"VERTEX_PROJECT", "VERTEX_LOCATION", "VERTEX_MODEL", "CHECKDECK_TEMPERATURE",
		"CHECKDECK_TRANSCRIPTION_TIMEOUT", "CHECKDECK_CONSISTENCY_TIMEOUT", "DB_URL",
		"CHECKDECK_WATCH_DIR", "CHECKDECK_DONE_DIR", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "gemini" {
		t.Errorf("Expected gemini provider, got %s", cfg.Provider)
	}
	if cfg.Review.TranscriptionTimeout != 70*time.Second {
		t.Errorf("Expected 70s transcription timeout, got %s", cfg.Review.TranscriptionTimeout)
	}
	if cfg.Review.ConsistencyTimeout != 90*time.Second {
		t.Errorf("Expected 90s consistency timeout, got %s", cfg.Review.ConsistencyTimeout)
	}
	if cfg.Server.Port != 8888 {
		t.Errorf("Expected port 8888, got %d", cfg.Server.Port)
	}
	if cfg.Database.Enabled() {
		t.Error("Database should be disabled without DB_URL")
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("CHECKDECK_PROVIDER", "ollama")
	t.Setenv("OLLAMA_URL", "http://ollama:11434")
	t.Setenv("OLLAMA_MODEL", "llava")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("CHECKDECK_TRANSCRIPTION_TIMEOUT", "15s")
	t.Setenv("DB_URL", "postgres://localhost/checkdeck")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"provider", cfg.Provider, "ollama"},
		{"ollama endpoint", cfg.Ollama.Endpoint, "http://ollama:11434"},
		{"ollama model", cfg.Model("ollama"), "llava"},
		{"gemini key", cfg.Gemini.Key, "secret"},
		{"transcription timeout", cfg.Review.TranscriptionTimeout, 15 * time.Second},
		{"database enabled", cfg.Database.Enabled(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `provider: openai
openai:
  model: gpt-4o-mini
review:
  consistency_timeout: 2m
watch:
  dir: incoming
  done: processed
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("OPENAI_MODEL", "gpt-4.1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider != "openai" {
		t.Errorf("Expected openai, got %s", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4.1" {
		t.Errorf("Environment should override file, got %s", cfg.OpenAI.Model)
	}
	if cfg.Review.ConsistencyTimeout != 2*time.Minute {
		t.Errorf("Expected 2m, got %s", cfg.Review.ConsistencyTimeout)
	}
	if cfg.Watch.Dir != "incoming" || cfg.Watch.Done != "processed" {
		t.Errorf("Unexpected watch config %+v", cfg.Watch)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing explicit config file")
	}
}

func TestModelUnknownProvider(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Model("anthropic"); got != "" {
		t.Errorf("Expected empty model, got %s", got)
	}
}
