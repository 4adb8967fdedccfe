package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		dir      string
		done     string
		scan     bool
		provider string
		model    string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check every deck dropped into a directory",
		Long: `Watches a staging directory and checks each .pptx file once it stops changing.
Results and reports are written next to the deck. Checked decks are moved to
the done directory when one is set.`,
		Example: `  # Watch ./stage and move checked decks to ./done
  checkdeck watch --dir stage --done done

  # Also check decks already waiting in the directory
  checkdeck watch --scan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !report.ValidFormat(format) {
				return fmt.Errorf("unknown format %q (supported: %s)", format, strings.Join(report.Formats, ", "))
			}
			if dir == "" {
				dir = a.cfg.Watch.Dir
			}
			if done == "" {
				done = a.cfg.Watch.Done
			}

			runner, err := a.newRunner(cmd.Context(), provider, model)
			if err != nil {
				return err
			}

			w, err := watcher.New(dir, func(ctx context.Context, path string) error {
				run, err := runner.Run(ctx, path, pipeline.Options{Format: format})
				if err != nil {
					return err
				}
				a.logger.Info("Checked deck", "path", path, "issues", run.IssueCount(), "report", run.ReportPath)
				return nil
			}, watcher.Options{
				DoneDir:      done,
				ScanExisting: scan,
				Logger:       a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer w.Stop()

			return w.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to watch (default from config: watch.dir)")
	cmd.Flags().StringVar(&done, "done", "", "Directory to move checked decks into (default from config: watch.done)")
	cmd.Flags().BoolVar(&scan, "scan", false, "Check decks already in the directory at start")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider; defaults to config")
	cmd.Flags().StringVar(&model, "model", "", "Model name")
	cmd.Flags().StringVar(&format, "format", "", "Report format")

	return cmd
}
