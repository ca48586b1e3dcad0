package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ReviewData is the per-device record behind the review-prompt heuristic.
type ReviewData struct {
	DeviceID      string        `db:"device_id"`
	GoalsCreated  int           `db:"goals_created"`
	HasReviewed   bool          `db:"has_reviewed"`
	PromptShownAt sql.NullInt64 `db:"prompt_shown_at"` // unix millis
}

// ReviewData returns the record for a device, or a zero-value default when
// the device has no record yet.
func (s *Store) ReviewData(deviceID string) (ReviewData, error) {
	var d ReviewData
	err := s.db.Get(&d, `SELECT device_id, goals_created, has_reviewed, prompt_shown_at FROM review_data WHERE device_id = ?`, deviceID)
	if errors.Is(err, sql.ErrNoRows) {
		return ReviewData{DeviceID: deviceID}, nil
	}
	if err != nil {
		return ReviewData{}, fmt.Errorf("failed to read review data: %v", err)
	}
	return d, nil
}

// IncrementGoalsCreated bumps the device's created-goals counter.
func (s *Store) IncrementGoalsCreated(deviceID string) error {
	_, err := s.db.Exec(`
		INSERT INTO review_data (device_id, goals_created) VALUES (?, 1)
		ON CONFLICT(device_id) DO UPDATE SET goals_created = goals_created + 1`,
		deviceID)
	if err != nil {
		return fmt.Errorf("failed to increment goals created: %v", err)
	}
	return nil
}

// MarkPromptShown records that the review prompt was displayed now.
func (s *Store) MarkPromptShown(deviceID string, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO review_data (device_id, prompt_shown_at) VALUES (?, ?)
		ON CONFLICT(device_id) DO UPDATE SET prompt_shown_at = excluded.prompt_shown_at`,
		deviceID, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to mark prompt shown: %v", err)
	}
	return nil
}

// MarkReviewed records that the user left a review; the prompt is never
// shown again for this device.
func (s *Store) MarkReviewed(deviceID string, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO review_data (device_id, has_reviewed, prompt_shown_at) VALUES (?, 1, ?)
		ON CONFLICT(device_id) DO UPDATE SET has_reviewed = 1, prompt_shown_at = excluded.prompt_shown_at`,
		deviceID, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to mark reviewed: %v", err)
	}
	return nil
}
