package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatusHandler reports a health snapshot of the service and its host.
type StatusHandler struct {
	db        *sql.DB
	startedAt time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(db *sql.DB) *StatusHandler {
	return &StatusHandler{db: db, startedAt: time.Now()}
}

// Get handles the status request.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(h.startedAt).Seconds()),
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("Database ping failed")
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		status["cpuPercent"] = percentages[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memoryUsedPercent"] = vm.UsedPercent
	}

	writeJSON(w, http.StatusOK, status)
}
