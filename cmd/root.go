package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/config"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/review"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/store"
	"github.com/spf13/cobra"
)

// app carries state shared by every subcommand once the root pre-run has loaded it.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "checkdeck",
		Short: "Find inconsistencies across the slides of a PowerPoint deck",
		Long: `Checkdeck extracts the text, tables, and images of every slide in a .pptx deck,
asks an LLM to transcribe each slide, and then asks it to compare all slides for
contradictions, impossible numbers, and cross-slide inconsistencies.

Findings are written to a report next to the deck.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default ./"+config.DefaultFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newReportCmd(a))
	cmd.AddCommand(newInspectCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newHistoryCmd(a))

	return cmd
}

func (a *app) init() error {
	logLevel := slog.LevelInfo
	if a.verbose {
		logLevel = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(a.logger)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("Failed to close database", "error", err)
		}
		a.store = nil
	}
}

// runSaver opens the run history database on first use. It returns a nil
// interface when no database is configured.
func (a *app) runSaver(ctx context.Context) pipeline.RunSaver {
	if !a.cfg.Database.Enabled() {
		return nil
	}
	if a.store == nil {
		s, err := store.Open(ctx, a.cfg.Database.URL)
		if err != nil {
			a.logger.Warn("Run history disabled", "error", err)
			return nil
		}
		a.store = s
	}
	return a.store
}

// newRunner builds a pipeline for provider and model, falling back to the config.
func (a *app) newRunner(ctx context.Context, provider, model string) (*pipeline.Runner, error) {
	svc, provider, err := review.NewServiceFromConfig(a.cfg, provider, model, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up provider: %w", err)
	}
	return pipeline.New(svc, provider, a.runSaver(ctx), a.logger), nil
}
