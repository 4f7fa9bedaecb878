package models

import "time"

// Activity represents a loggable inventory or account action.
type Activity struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "item.add", "item.delete"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	Username  *string   `json:"username,omitempty"` // Nullable for system-wide entries
	CreatedAt time.Time `json:"createdAt"`
}
