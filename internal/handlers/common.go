package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/jewelrender/jewelrender/internal/storage"
)

// maxBodySize bounds POST bodies. Catalogs can carry large base64 payloads,
// so this is deliberately generous.
const maxBodySize = 50 << 20 // 50MB

// Analyzer runs the image analysis pipeline
type Analyzer interface {
	AnalyzeImage(ctx context.Context, req models.AnalysisRequest) (models.JewelryRecord, error)
}

type Handler struct {
	store    storage.Store
	analyzer Analyzer
}

func New(store storage.Store, analyzer Analyzer) *Handler {
	return &Handler{
		store:    store,
		analyzer: analyzer,
	}
}

// Response helpers

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

// writeError emits the uniform {success:false, error} envelope every
// failure path shares, regardless of status code.
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	h.writeJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
