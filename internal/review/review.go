// Package review sends extracted slides to an LLM for transcription and
// cross-slide consistency checking. Every failure resolves to a fallback
// value so a run always produces a report.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/providers"
)

const (
	DefaultTranscriptionTimeout = 70 * time.Second
	DefaultConsistencyTimeout   = 90 * time.Second
)

type Service struct {
	provider             providers.Provider
	model                string
	temperature          float64
	transcriptionTimeout time.Duration
	consistencyTimeout   time.Duration
	logger               *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithModel sets the model name passed to the provider.
func WithModel(model string) Option {
	return func(s *Service) {
		s.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(s *Service) {
		s.temperature = temperature
	}
}

// WithTimeouts bounds each transcription and consistency call. Zero keeps the default.
func WithTimeouts(transcription, consistency time.Duration) Option {
	return func(s *Service) {
		if transcription > 0 {
			s.transcriptionTimeout = transcription
		}
		if consistency > 0 {
			s.consistencyTimeout = consistency
		}
	}
}

// WithLogger sets the logger for fallback diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(provider providers.Provider, opts ...Option) *Service {
	s := &Service{
		provider:             provider,
		transcriptionTimeout: DefaultTranscriptionTimeout,
		consistencyTimeout:   DefaultConsistencyTimeout,
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the model name requests are sent with.
func (s *Service) Model() string {
	return s.model
}

// TranscribeSlide asks the model for a normalized transcription of one
// slide. It returns rawText unchanged when the model cannot be reached or
// answers with nothing.
func (s *Service) TranscribeSlide(ctx context.Context, rawText string, images []models.EncodedImage) string {
	ctx, cancel := context.WithTimeout(ctx, s.transcriptionTimeout)
	defer cancel()

	out, err := s.provider.Generate(ctx, providers.Request{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      transcriptionPrompt + "\n\n" + rawText,
		Images:      images,
		JSON:        true,
	})
	if err != nil {
		s.logger.Warn("Transcription failed, using extracted text", "error", err)
		return rawText
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return rawText
	}

	if text, ok := parseSlideText(out); ok {
		return text
	}

	s.logger.Debug("Transcription was not JSON, using plain output", "length", len(out))
	return out
}

// TranscribeDeck transcribes every slide in order, one call at a time.
func (s *Service) TranscribeDeck(ctx context.Context, deck *models.DeckExtraction) []models.Transcript {
	transcripts := make([]models.Transcript, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		raw := slide.CombinedText
		if raw == "" && len(slide.RawTextLines) > 0 {
			raw = strings.Join(slide.RawTextLines, " ")
		}

		s.logger.Info("Transcribing slide", "slide", slide.SlideNumber, "images", len(slide.Images))
		transcripts = append(transcripts, models.Transcript{
			SlideNumber: slide.SlideNumber,
			SlideText:   s.TranscribeSlide(ctx, raw, slide.Images),
		})
	}
	return transcripts
}

// CheckConsistency asks the model for intra-slide and cross-slide problems.
// It never fails; unusable answers become a single fallback suggestion.
func (s *Service) CheckConsistency(ctx context.Context, transcripts []models.Transcript) models.ConsistencyResult {
	ctx, cancel := context.WithTimeout(ctx, s.consistencyTimeout)
	defer cancel()

	out, err := s.provider.Generate(ctx, providers.Request{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      consistencyPrompt + "\n\n" + SlidesPayload(transcripts),
		JSON:        true,
	})
	if err != nil {
		s.logger.Warn("Consistency check failed", "error", err)
		return fallback(SuggestionUnreachable)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return fallback(SuggestionNoOutput)
	}

	result, err := parseConsistency(out)
	if err != nil {
		s.logger.Warn("Could not parse consistency result", "error", err)
		return fallback(SuggestionUnparsed)
	}
	return result
}

// SlidesPayload renders transcripts as "--- SLIDE n ---" blocks.
func SlidesPayload(transcripts []models.Transcript) string {
	blocks := make([]string, len(transcripts))
	for i, t := range transcripts {
		blocks[i] = fmt.Sprintf("--- SLIDE %d ---\n%s\n", t.SlideNumber, t.SlideText)
	}
	return strings.Join(blocks, "\n")
}

func fallback(suggestion string) models.ConsistencyResult {
	return models.ConsistencyResult{
		Issues:      []models.Issue{},
		Suggestions: []string{suggestion},
	}
}

// jsonSpan returns the text between the first '{' and the last '}'.
func jsonSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parseSlideText(out string) (string, bool) {
	span, ok := jsonSpan(out)
	if !ok {
		return "", false
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return "", false
	}
	raw, ok := parsed["slide_text"]
	if !ok {
		return "", false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// non-string values are kept as their JSON text
		return string(raw), true
	}
	return text, true
}

// parseConsistency keeps whatever part of the answer fits the result shape.
// Only output without a JSON object is an error; malformed issues, slide
// numbers, and suggestions are skipped one by one.
func parseConsistency(out string) (models.ConsistencyResult, error) {
	span, ok := jsonSpan(out)
	if !ok {
		return models.ConsistencyResult{}, fmt.Errorf("no JSON object in model output")
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return models.ConsistencyResult{}, fmt.Errorf("failed to unmarshal consistency result: %w", err)
	}

	result := models.ConsistencyResult{
		Issues:      []models.Issue{},
		Suggestions: []string{},
	}

	for _, raw := range rawList(parsed["issues"]) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		result.Issues = append(result.Issues, models.Issue{
			Slides:      slideNumbers(fields["slides"]),
			Description: rawText(fields["description"]),
			Suggestion:  rawText(fields["suggestion"]),
		})
	}

	for _, raw := range rawList(parsed["suggestions"]) {
		if text := rawText(raw); text != "" {
			result.Suggestions = append(result.Suggestions, text)
		}
	}

	return result, nil
}

// rawList returns the elements of a JSON array. A lone non-null value is
// treated as a one-element list.
func rawList(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []json.RawMessage{raw}
	}
	return items
}

// rawText returns a JSON string's value, or the JSON text of anything else.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return string(raw)
	}
	return text
}

// slideNumbers accepts integers, integral floats, and numeric strings.
func slideNumbers(raw json.RawMessage) []int {
	slides := []int{}
	for _, item := range rawList(raw) {
		var f float64
		if err := json.Unmarshal(item, &f); err != nil {
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				continue
			}
			f, err = strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				continue
			}
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			continue
		}
		slides = append(slides, int(f))
	}
	return slides
}
