package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pipeline"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/pptx"
	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
)

// HandleCheck accepts a multipart deck upload and runs a full check on it.
// The response is sent once the check finishes.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pptx") {
		h.writeError(w, "Only .pptx files are supported", http.StatusBadRequest)
		return
	}

	provider := r.FormValue("provider")
	model := r.FormValue("model")
	format := r.FormValue("format")
	if !report.ValidFormat(format) {
		h.writeError(w, fmt.Sprintf("Unknown format %q (supported: %s)", format, strings.Join(report.Formats, ", ")), http.StatusBadRequest)
		return
	}

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= maxUploadSize {
		h.writeError(w, "File too large (max 50MB)", http.StatusBadRequest)
		return
	}

	runner, err := h.newRunner(provider, model)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Use filename (without extension) as session name, with timestamp for uniqueness
	baseFilename := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	sessionID := fmt.Sprintf("%s_%d", baseFilename, time.Now().UnixNano())

	dir, err := h.ensureSessionDir(sessionID)
	if err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	deckPath := filepath.Join(dir, filepath.Base(header.Filename))
	if err := os.WriteFile(deckPath, fileData, 0644); err != nil {
		h.writeError(w, "Failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	run, err := runner.Run(r.Context(), deckPath, pipeline.Options{Format: format})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pptx.ErrInvalidArchive) {
			code = http.StatusUnprocessableEntity
		} else if errors.Is(err, pptx.ErrNotFound) {
			code = http.StatusNotFound
		}
		h.writeError(w, "Failed to check deck: "+err.Error(), code)
		return
	}

	run.ID = sessionID
	h.runStore.Set(sessionID, run)

	response := map[string]any{
		"session_id":   sessionID,
		"message":      fmt.Sprintf("Analysis complete: %d issue(s) found.", run.IssueCount()),
		"total_slides": run.TotalSlides,
		"issues":       run.IssueCount(),
	}

	h.writeJSON(w, response)
}
