package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/naresh-2026/warehouseProducts/internal/apperr"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage writes a plain message body, the shape every client-visible
// failure and status message uses.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps an error kind to its HTTP status and responds with the
// client-safe message. Internal detail never reaches the response body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	case apperr.IsConflict(err):
		status = http.StatusConflict
	}
	writeMessage(w, status, apperr.PublicMessage(err))
}
