package providers

import (
	"context"
	"errors"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Request is one prompt sent to an LLM provider
type Request struct {
	Model       string
	Temperature float64
	Prompt      string
	// Images are attached inline after the prompt, in order.
	Images []models.EncodedImage
	// JSON asks the provider for a JSON response when it supports one.
	JSON bool
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Func adapts a plain function to the Provider interface.
type Func func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
