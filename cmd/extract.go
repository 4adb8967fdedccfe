package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pptx"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/results"
	"github.com/spf13/cobra"
)

func newExtractCmd(a *app) *cobra.Command {
	var output string
	var noImages bool

	cmd := &cobra.Command{
		Use:   "extract <deck.pptx>",
		Short: "Extract slide text, tables, and images without calling an LLM",
		Example: `  # Print the extraction as JSON
  checkdeck extract quarterly.pptx --no-images

  # Save it to a file
  checkdeck extract quarterly.pptx -o deck.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := pptx.Extract(args[0], pptx.WithLogger(a.logger))
			if err != nil {
				return err
			}

			if noImages {
				for i := range deck.Slides {
					deck.Slides[i].Images = []models.EncodedImage{}
				}
			}

			if output != "" {
				if err := results.SaveDeck(output, deck); err != nil {
					return err
				}
				a.logger.Info("Saved extraction", "path", output, "slides", len(deck.Slides))
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(deck); err != nil {
				return fmt.Errorf("failed to encode extraction: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "Leave out base64 image payloads")

	return cmd
}
