package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/handlers"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port string
	var uploadsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API for checking uploaded decks",
		Long: `Starts an HTTP server that accepts .pptx uploads on /api/check, runs a full
check on each, and keeps the results as sessions under /api/sessions.`,
		Example: `  # Start server on the configured port (default 8888)
  checkdeck serve

  # Check a deck against a running server
  curl -F file=@quarterly.pptx -F provider=ollama http://localhost:8888/api/check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = strconv.Itoa(a.cfg.Server.Port)
			}

			ctx := cmd.Context()
			handler := handlers.New(func(provider, model string) (*pipeline.Runner, error) {
				return a.newRunner(ctx, provider, model)
			}, uploadsDir)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Checkdeck API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-ctx.Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config: server.port)")
	cmd.Flags().StringVar(&uploadsDir, "uploads", "uploads", "Directory for uploaded decks and their results")

	return cmd
}
