package pptx

import (
	"errors"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

type extractOptions struct {
	ns     Namespaces
	logger *slog.Logger
}

// Option configures Extract.
type Option func(*extractOptions)

// WithNamespaces overrides the prefix map used to match slide and manifest markup.
func WithNamespaces(ns Namespaces) Option {
	return func(o *extractOptions) {
		o.ns = ns
	}
}

// WithLogger sets the logger that receives per-slide diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *extractOptions) {
		o.logger = logger
	}
}

// Extract reads every slide of the deck at filename and returns the records
// ordered by slide number. Only failures to open the package are returned;
// broken slides, manifests, and media degrade to empty content.
func Extract(filename string, opts ...Option) (*models.DeckExtraction, error) {
	o := extractOptions{
		ns:     DefaultNamespaces(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	a, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	deck := &models.DeckExtraction{Slides: []models.SlideRecord{}}
	seen := make(map[int]bool)

	for _, part := range a.SlideParts() {
		number := SlideNumber(part)
		if seen[number] {
			o.logger.Debug("Dropping duplicate slide number", "part", part, "slide", number)
			continue
		}
		seen[number] = true

		deck.Slides = append(deck.Slides, extractSlide(a, part, number, o))
	}

	sort.SliceStable(deck.Slides, func(i, j int) bool {
		return deck.Slides[i].SlideNumber < deck.Slides[j].SlideNumber
	})

	return deck, nil
}

func extractSlide(a *Archive, part string, number int, o extractOptions) models.SlideRecord {
	record := models.SlideRecord{
		SlideNumber:  number,
		RawTextLines: []string{},
		Tables:       []models.Table{},
		Images:       []models.EncodedImage{},
	}

	data, err := a.ReadFile(part)
	if err != nil {
		o.logger.Warn("Failed to read slide part", "part", part, "error", err)
		return record
	}

	result := ParseSlide(data, o.ns)
	if result.Degraded {
		var malformed *MalformedSlideError
		if errors.As(result.Err, &malformed) {
			malformed.Part = part
		}
		o.logger.Warn("Slide markup could not be parsed, treating as empty", "error", result.Err)
		return record
	}
	if result.Value.Lines != nil {
		record.RawTextLines = result.Value.Lines
	}
	if result.Value.Tables != nil {
		record.Tables = result.Value.Tables
	}
	record.CombinedText = strings.Join(record.RawTextLines, " ")

	images, err := resolveMedia(a, path.Base(part), o.ns, o.logger)
	if err != nil {
		var missing *MissingManifestError
		if errors.As(err, &missing) {
			o.logger.Debug("No relationship manifest", "part", part)
		} else {
			o.logger.Warn("Skipping images for slide", "part", part, "error", err)
		}
	}
	if images != nil {
		record.Images = images
	}

	return record
}
