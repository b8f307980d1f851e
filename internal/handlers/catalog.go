package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jewelrender/jewelrender/internal/models"
	"github.com/jewelrender/jewelrender/internal/storage"
)

// HandlePublish stores a user's catalog snapshot, fully replacing any prior
// one for that user.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var request struct {
		UserID         string            `json:"userId"`
		Catalog        []json.RawMessage `json:"catalog"`
		TotalImages    int               `json:"totalImages"`
		AnalyzedImages int               `json:"analyzedImages"`
		PublishedAt    string            `json:"publishedAt"`
		FolderInfo     json.RawMessage   `json:"folderInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.Catalog == nil {
		h.writeError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	snapshot := &models.CatalogSnapshot{
		Catalog:        request.Catalog,
		TotalImages:    request.TotalImages,
		AnalyzedImages: request.AnalyzedImages,
		PublishedAt:    request.PublishedAt,
		FolderInfo:     request.FolderInfo,
	}
	if err := h.store.Put(r.Context(), request.UserID, snapshot); err != nil {
		slog.Error("Failed to store catalog", "user", request.UserID, "err", err)
		h.writeError(w, "Publishing failed", http.StatusInternalServerError)
		return
	}

	slog.Info("Catalog published", "user", request.UserID, "items", len(request.Catalog))
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Catalog published successfully",
		"itemCount": len(request.Catalog),
	})
}

// HandleCatalogTags returns the stored snapshot for a user
func (h *Handler) HandleCatalogTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeError(w, "Missing userId", http.StatusBadRequest)
		return
	}

	snapshot, err := h.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, "No catalog found for user", http.StatusNotFound)
			return
		}
		slog.Error("Failed to load catalog", "user", userID, "err", err)
		h.writeError(w, "Fetch failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    snapshot,
	})
}

// HandleHealth reports liveness and the number of stored catalogs
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count(r.Context())
	if err != nil {
		slog.Error("Failed to count catalogs", "err", err)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"catalogCount": count,
	})
}

// HandleRoot describes the API surface
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.writeError(w, "Not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "JewelRender API",
		"endpoints": map[string]string{
			"analyze": "POST /api/analyze-jewelry",
			"publish": "POST /api/publish-catalog",
			"getTags": "GET /api/catalog-tags",
			"health":  "GET /health",
		},
	})
}
