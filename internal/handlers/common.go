package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/storage"
)

// maxUploadSize bounds an uploaded deck.
const maxUploadSize = 50 * 1024 * 1024

// RunnerFactory builds a pipeline for the provider and model named in a
// request. Empty values select the configured defaults.
type RunnerFactory func(provider, model string) (*pipeline.Runner, error)

type Handler struct {
	runStore   *storage.RunStore
	newRunner  RunnerFactory
	uploadsDir string
}

func New(newRunner RunnerFactory, uploadsDir string) *Handler {
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &Handler{
		runStore:   storage.New(),
		newRunner:  newRunner,
		uploadsDir: uploadsDir,
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/check", h.HandleCheck)
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getRunOrError(w http.ResponseWriter, sessionID string) (*models.Run, bool) {
	run, exists := h.runStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}

// File operation helpers
func (h *Handler) ensureSessionDir(sessionID string) (string, error) {
	dir := filepath.Join(h.uploadsDir, sessionID)
	return dir, os.MkdirAll(dir, 0755)
}
