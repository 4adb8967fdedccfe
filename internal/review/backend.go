package review

import (
	"fmt"
	"log/slog"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/config"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/gemini"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/ollama"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/openai"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/providers"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/vertex"
)

// ProviderNames lists the backends NewProvider accepts.
var ProviderNames = []string{"gemini", "vertex", "openai", "ollama"}

// NewProvider builds the named backend from cfg.
func NewProvider(name string, cfg *config.Config) (providers.Provider, error) {
	switch name {
	case "gemini":
		return gemini.New(cfg.Gemini.Key), nil
	case "vertex":
		return vertex.New(cfg.Vertex.Project, cfg.Vertex.Location), nil
	case "openai":
		return openai.New(cfg.OpenAI.Key, cfg.OpenAI.Endpoint), nil
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// NewServiceFromConfig resolves the provider and model (falling back to cfg
// when empty) and applies the configured temperature and timeouts.
func NewServiceFromConfig(cfg *config.Config, provider, model string, logger *slog.Logger) (*Service, string, error) {
	if provider == "" {
		provider = cfg.Provider
	}
	if model == "" {
		model = cfg.Model(provider)
	}

	p, err := NewProvider(provider, cfg)
	if err != nil {
		return nil, "", err
	}

	return NewService(p,
		WithModel(model),
		WithTemperature(cfg.Review.Temperature),
		WithTimeouts(cfg.Review.TranscriptionTimeout, cfg.Review.ConsistencyTimeout),
		WithLogger(logger),
	), provider, nil
}
