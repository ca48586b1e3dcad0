package localstore

import (
	"fmt"
	"time"
)

// HasCompletedOnboarding reports whether a device finished onboarding.
func (s *Store) HasCompletedOnboarding(deviceID string) (bool, error) {
	var count int
	err := s.db.Get(&count, `SELECT COUNT(*) FROM onboarding WHERE device_id = ?`, deviceID)
	if err != nil {
		return false, fmt.Errorf("failed to read onboarding flag: %v", err)
	}
	return count > 0, nil
}

// SetOnboardingComplete marks onboarding as finished for a device.
// Calling it again is a no-op.
func (s *Store) SetOnboardingComplete(deviceID string, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO onboarding (device_id, completed_at) VALUES (?, ?)
		ON CONFLICT(device_id) DO NOTHING`,
		deviceID, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set onboarding complete: %v", err)
	}
	return nil
}

// ResetOnboarding clears the flag. Used by debug tooling.
func (s *Store) ResetOnboarding(deviceID string) error {
	_, err := s.db.Exec(`DELETE FROM onboarding WHERE device_id = ?`, deviceID)
	if err != nil {
		return fmt.Errorf("failed to reset onboarding: %v", err)
	}
	return nil
}
