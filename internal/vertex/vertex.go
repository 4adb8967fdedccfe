// Package vertex talks to Gemini models hosted on Vertex AI using
// application default credentials instead of an API key.
package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/providers"
)

const (
	DefaultModel    = "gemini-2.5-flash"
	DefaultLocation = "us-central1"
)

// Vertex is a provider for Gemini on Vertex AI
type Vertex struct {
	project  string
	location string
}

// New returns a new Vertex provider. An empty location selects DefaultLocation.
func New(project, location string) *Vertex {
	if location == "" {
		location = DefaultLocation
	}
	return &Vertex{project: project, location: location}
}

// Generate sends the prompt and any images to the Vertex AI model
func (v *Vertex) Generate(ctx context.Context, req providers.Request) (string, error) {
	if v.project == "" {
		return "", fmt.Errorf("VERTEX_PROJECT environment variable not set")
	}

	client, err := genai.NewClient(ctx, v.project, v.location)
	if err != nil {
		return "", fmt.Errorf("genai.NewClient: %w", err)
	}
	defer client.Close()

	modelName := req.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	model := client.GenerativeModel(modelName)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.JSON {
		model.GenerationConfig.ResponseMIMEType = "application/json"
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	for i, img := range req.Images {
		data, err := img.Bytes()
		if err != nil {
			return "", fmt.Errorf("failed to decode image %d: %w", i, err)
		}
		parts = append(parts, genai.Blob{MIMEType: img.MIMEType(), Data: data})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			texts = append(texts, string(txt))
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
