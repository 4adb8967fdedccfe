// Package pipeline runs one full check of a deck: extraction,
// transcription, consistency checking, and writing every output file.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pptx"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/results"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/review"
)

// RunSaver records finished runs, e.g. in the Postgres history.
type RunSaver interface {
	SaveRun(ctx context.Context, run *models.Run) (int64, error)
}

// Options control where and how a run's outputs are written.
type Options struct {
	// OutputDir defaults to the deck's directory.
	OutputDir string
	// Format is a report format; empty means plain text.
	Format string
	// ReportPath overrides OutputDir/DefaultFilename(Format).
	ReportPath string
	Parquet    bool
	// RunLog writes a YAML record under OutputDir/runs.
	RunLog bool
}

type Runner struct {
	review   *review.Service
	provider string
	saver    RunSaver
	logger   *slog.Logger
}

// New returns a Runner. saver may be nil.
func New(svc *review.Service, provider string, saver RunSaver, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{review: svc, provider: provider, saver: saver, logger: logger}
}

// Run checks the deck at deckPath. Only extraction and output failures are
// returned; model failures already resolve to fallback values.
func (r *Runner) Run(ctx context.Context, deckPath string, opts Options) (*models.Run, error) {
	deck, err := pptx.Extract(deckPath, pptx.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", deckPath, err)
	}
	r.logger.Info("Extracted deck", "path", deckPath, "slides", len(deck.Slides))

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(deckPath)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	transcripts := r.review.TranscribeDeck(ctx, deck)
	if err := results.SaveTranscripts(filepath.Join(outputDir, results.TranscriptsFile), transcripts); err != nil {
		return nil, err
	}

	result := r.review.CheckConsistency(ctx, transcripts)
	if err := results.SaveConsistency(filepath.Join(outputDir, results.ConsistencyFile), &result); err != nil {
		return nil, err
	}

	reportPath := opts.ReportPath
	if reportPath == "" {
		reportPath = filepath.Join(outputDir, report.DefaultFilename(opts.Format))
	}
	if err := report.WriteFile(reportPath, opts.Format, &result, len(deck.Slides)); err != nil {
		return nil, err
	}

	run := &models.Run{
		DeckPath:    deckPath,
		Provider:    r.provider,
		Model:       r.review.Model(),
		TotalSlides: len(deck.Slides),
		Transcripts: transcripts,
		Result:      &result,
		ReportPath:  reportPath,
		CreatedAt:   time.Now(),
	}

	if opts.Parquet {
		path := filepath.Join(outputDir, "slides.parquet")
		if err := results.SaveParquet(path, deck, transcripts); err != nil {
			return nil, err
		}
		r.logger.Debug("Saved parquet export", "path", path)
	}

	if opts.RunLog {
		path, err := results.SaveRunYAML(outputDir, run)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("Saved run log", "path", path)
	}

	if r.saver != nil {
		id, err := r.saver.SaveRun(ctx, run)
		if err != nil {
			// history is best effort
			r.logger.Warn("Failed to record run", "error", err)
		} else {
			run.ID = fmt.Sprintf("%d", id)
		}
	}

	return run, nil
}
