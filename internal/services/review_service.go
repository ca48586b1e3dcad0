package services

import (
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/localstore"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
)

// ReviewService decides when a device becomes eligible for the app-store
// review prompt. The threshold and cooldown are product configuration, not
// part of the lifecycle contract.
type ReviewService struct {
	store    *localstore.Store
	minGoals int
	cooldown time.Duration
}

// NewReviewService creates a ReviewService with the given eligibility
// thresholds.
func NewReviewService(store *localstore.Store, minGoals, cooldownDays int) *ReviewService {
	return &ReviewService{
		store:    store,
		minGoals: minGoals,
		cooldown: time.Duration(cooldownDays) * 24 * time.Hour,
	}
}

// IncrementGoalsCreated records another created goal for the device.
// Satisfies the GoalService's ReviewRecorder collaborator.
func (s *ReviewService) IncrementGoalsCreated(deviceID string) error {
	return s.store.IncrementGoalsCreated(deviceID)
}

// ShouldShowReviewPrompt reports whether the device is eligible: enough
// goals created, never reviewed, and outside the cooldown window since the
// prompt was last shown.
func (s *ReviewService) ShouldShowReviewPrompt(deviceID string, now time.Time) (bool, error) {
	d, err := s.store.ReviewData(deviceID)
	if err != nil {
		return false, err
	}

	if d.HasReviewed {
		return false, nil
	}
	if d.GoalsCreated < s.minGoals {
		return false, nil
	}
	if d.PromptShownAt.Valid {
		last := time.UnixMilli(d.PromptShownAt.Int64)
		if now.Sub(last) < s.cooldown {
			return false, nil
		}
	}
	return true, nil
}

// MarkPromptShown starts the cooldown window for the device.
func (s *ReviewService) MarkPromptShown(deviceID string, now time.Time) error {
	if err := s.store.MarkPromptShown(deviceID, now); err != nil {
		return err
	}
	logger.Log.WithField("device_id", deviceID).Info("Review prompt shown")
	return nil
}

// MarkReviewed permanently retires the prompt for the device.
func (s *ReviewService) MarkReviewed(deviceID string, now time.Time) error {
	if err := s.store.MarkReviewed(deviceID, now); err != nil {
		return err
	}
	logger.Log.WithField("device_id", deviceID).Info("User completed a review")
	return nil
}
