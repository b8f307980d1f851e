package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jewelrender/jewelrender/internal/images"
	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/jewelrender/jewelrender/internal/providers"
)

// HandleAnalyze classifies a single jewelry image. Fetch failures are the
// caller's problem (the image URL must be publicly reachable) and come back
// as 400; upstream model failures come back as a generic 500. Once the model
// has replied, normalization guarantees a usable record.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var request models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" || request.UserID == "" {
		h.writeError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	record, err := h.analyzer.AnalyzeImage(r.Context(), request)
	if err != nil {
		var fetchErr *images.FetchError
		if errors.As(err, &fetchErr) {
			h.writeError(w, "Unable to fetch image. Please ensure the image URL is publicly accessible.", http.StatusBadRequest)
			return
		}

		var upstreamErr *providers.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.writeError(w, "Analysis failed", http.StatusInternalServerError)
			return
		}

		message := err.Error()
		if message == "" {
			message = "Analysis failed"
		}
		h.writeError(w, message, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"category":    record.Category,
		"tags":        record.Tags,
		"description": record.Description,
	})
}
