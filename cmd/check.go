package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/picker"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		pick     bool
		dir      string
		provider string
		model    string
		opts     pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "check [deck.pptx]",
		Short: "Check one deck for cross-slide inconsistencies",
		Long: `Extracts every slide of the deck, transcribes each slide with the configured
LLM, checks the transcripts for inconsistencies, and writes the report.

Intermediate results are saved as extracted_slides.json and consistency.json
in the output directory, which defaults to the deck's directory.`,
		Example: `  # Check a deck with the default provider
  checkdeck check quarterly.pptx

  # Choose a deck from the current directory
  checkdeck check --pick

  # Use OpenAI and write an HTML report
  checkdeck check quarterly.pptx --provider openai --format html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deckPath string
			switch {
			case len(args) == 1:
				deckPath = args[0]
			case pick:
				chosen, err := picker.Pick(dir, cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				deckPath = chosen
			default:
				return fmt.Errorf("a deck path or --pick is required")
			}

			if !report.ValidFormat(opts.Format) {
				return fmt.Errorf("unknown format %q (supported: %s)", opts.Format, strings.Join(report.Formats, ", "))
			}
			if _, err := os.Stat(deckPath); err != nil {
				return fmt.Errorf("failed to open deck: %w", err)
			}

			runner, err := a.newRunner(cmd.Context(), provider, model)
			if err != nil {
				return err
			}

			run, err := runner.Run(cmd.Context(), deckPath, opts)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(run.ReportPath)
			if err != nil {
				abs = run.ReportPath
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Analysis complete: %d issue(s) found.\n", run.IssueCount())
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved at: %s\n", abs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "Choose a deck interactively")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to list decks from with --pick")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider (gemini, vertex, openai, ollama); defaults to config")
	cmd.Flags().StringVar(&model, "model", "", "Model name; defaults to the provider's configured model")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory for results and report (default: the deck's directory)")
	cmd.Flags().StringVar(&opts.Format, "format", report.FormatText, "Report format ("+strings.Join(report.Formats, ", ")+")")
	cmd.Flags().StringVarP(&opts.ReportPath, "output", "o", "", "Report path (default: <output-dir>/reports.txt or the format's file name)")
	cmd.Flags().BoolVar(&opts.Parquet, "parquet", false, "Also write slides.parquet")
	cmd.Flags().BoolVar(&opts.RunLog, "run-log", false, "Also write a YAML run log under <output-dir>/runs")

	return cmd
}
