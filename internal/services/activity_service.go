package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/models"
)

// ActivityServiceProvider defines the interface for activity logging.
type ActivityServiceProvider interface {
	Record(activityType, level, message string, username *string) error
	GetRecent(limit int) ([]models.Activity, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// ActivityService records inventory and account actions for later review.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record logs a new activity entry.
func (s *ActivityService) Record(activityType, level, message string, username *string) error {
	entry := models.Activity{
		ID:       uuid.New().String(),
		Type:     activityType,
		Level:    level,
		Message:  message,
		Username: username,
	}

	stmt, err := s.db.Prepare("INSERT INTO activity (id, type, level, message, username) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return apperr.Storage(err, "could not record activity")
	}
	defer stmt.Close()

	if _, err = stmt.Exec(entry.ID, entry.Type, entry.Level, entry.Message, entry.Username); err != nil {
		return apperr.Storage(err, "could not record activity")
	}
	return nil
}

// GetRecent retrieves the most recent activity entries.
func (s *ActivityService) GetRecent(limit int) ([]models.Activity, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, username, created_at FROM activity ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, apperr.Storage(err, "could not list activity")
	}
	defer rows.Close()

	var entries []models.Activity
	for rows.Next() {
		var entry models.Activity
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Level, &entry.Message, &entry.Username, &entry.CreatedAt); err != nil {
			return nil, apperr.Storage(err, "could not list activity")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PruneOlderThan deletes entries created before the cutoff and reports how
// many were removed.
func (s *ActivityService) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM activity WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, apperr.Storage(err, "could not prune activity")
	}
	return res.RowsAffected()
}
