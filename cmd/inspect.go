package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/results"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var limit int
	var interactive bool
	var showTexts bool

	cmd := &cobra.Command{
		Use:   "inspect <slides.parquet>",
		Short: "Inspect the slides of a parquet export",
		Long: `Prints the rows of a slides.parquet file written by "check --parquet":
the extracted text of each slide next to the model's transcript.`,
		Example: `  # Show the first 5 slides, pausing after each
  checkdeck inspect slides.parquet --limit 5 --interactive

  # Show every slide
  checkdeck inspect slides.parquet --limit 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := results.LoadParquet(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("Loaded parquet export", "path", args[0], "rows", len(rows))

			if limit > 0 && len(rows) > limit {
				rows = rows[:limit]
			}

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			separator := strings.Repeat("=", 80)

			for i, row := range rows {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				fmt.Fprintln(out, separator)
				fmt.Fprintf(out, "Slide %d (%d/%d)  tables: %d  images: %d\n", row.SlideNumber, i+1, len(rows), row.TableCount, row.ImageCount)
				fmt.Fprintln(out, separator)
				if showTexts {
					fmt.Fprintln(out, "\nExtracted text:")
					for _, line := range row.Texts {
						fmt.Fprintf(out, "  %s\n", line)
					}
				}
				fmt.Fprintln(out, "\nTranscript:")
				fmt.Fprintf(out, "  %s\n\n", row.Transcript)

				if interactive && i < len(rows)-1 {
					fmt.Fprint(out, "Press Enter to continue (q to quit): ")
					line, _ := in.ReadString('\n')
					if strings.TrimSpace(line) == "q" {
						return nil
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of slides to show (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each slide (press Enter to continue)")
	cmd.Flags().BoolVar(&showTexts, "texts", true, "Show the extracted text lines")

	return cmd
}
