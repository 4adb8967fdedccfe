package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/results"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		resultsPath string
		runPath     string
		slidesPath  string
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a report from saved results",
		Long: `Renders a report again from a saved consistency.json or a YAML run log,
without calling an LLM. Use it to produce another format from an earlier check.`,
		Example: `  # Print the plain-text report for saved results
  checkdeck report --results consistency.json --slides extracted_slides.json

  # Render a markdown report from a run log
  checkdeck report --run runs/quarterly-2025-01-02_10-00-00.yaml --format markdown -o report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *models.ConsistencyResult
			totalSlides := 0

			switch {
			case runPath != "":
				log, err := results.LoadRunYAML(runPath)
				if err != nil {
					return err
				}
				result = log.Result()
				totalSlides = log.TotalSlides
			case resultsPath != "":
				r, err := results.LoadConsistency(resultsPath)
				if err != nil {
					return err
				}
				result = r
				if slidesPath == "" {
					slidesPath = filepath.Join(filepath.Dir(resultsPath), results.TranscriptsFile)
				}
				transcripts, err := results.LoadTranscripts(slidesPath)
				if err != nil {
					a.logger.Warn("Slide count unavailable", "path", slidesPath, "error", err)
				}
				totalSlides = len(transcripts)
			default:
				return fmt.Errorf("--results or --run is required")
			}

			if output == "" {
				if format != "" && format != report.FormatText && format != report.FormatMarkdown {
					return fmt.Errorf("--output is required for %s reports", format)
				}
				if format == report.FormatMarkdown {
					_, err := fmt.Fprint(cmd.OutOrStdout(), report.Markdown(result, totalSlides))
					return err
				}
				return report.WriteText(cmd.OutOrStdout(), result, totalSlides)
			}

			if err := report.WriteFile(output, format, result, totalSlides); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report saved at: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to consistency.json")
	cmd.Flags().StringVar(&runPath, "run", "", "Path to a YAML run log")
	cmd.Flags().StringVar(&slidesPath, "slides", "", "Path to extracted_slides.json (default: next to --results)")
	cmd.Flags().StringVar(&format, "format", report.FormatText, "Report format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("results", "run")

	return cmd
}
