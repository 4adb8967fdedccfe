package handlers

import (
	"net/http"
	"strings"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/report"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.runStore.List())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail serves /api/sessions/{id} as JSON and
// /api/sessions/{id}/report as the plain-text report.
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	sessionID, sub, _ := strings.Cut(path, "/")

	run, ok := h.getRunOrError(w, sessionID)
	if !ok {
		return
	}

	switch {
	case r.Method == "GET" && sub == "":
		h.writeJSON(w, run)
	case r.Method == "GET" && sub == "report":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteText(w, run.Result, run.TotalSlides); err != nil {
			h.writeError(w, "Failed to write report: "+err.Error(), http.StatusInternalServerError)
		}
	case r.Method == "DELETE" && sub == "":
		h.runStore.Delete(sessionID)
		w.WriteHeader(http.StatusNoContent)
	case sub != "" && sub != "report":
		h.writeError(w, "Not found", http.StatusNotFound)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
