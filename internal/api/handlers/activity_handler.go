package handlers

import (
	"net/http"
	"strconv"

	"github.com/naresh-2026/warehouseProducts/internal/services"
	"github.com/rs/zerolog/log"
)

// ActivityHandler handles HTTP requests related to the activity log.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent handles the request to get recent activity entries.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	entries, err := h.service.GetRecent(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve activity")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
