package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/lifeplanapp/lifeplan-backend/internal/repository"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
)

// UserService encapsulates the business logic for user profiles.
type UserService struct {
	repo     repository.UserRepository
	goalRepo repository.GoalRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, goalRepo repository.GoalRepository) *UserService {
	return &UserService{
		repo:     repo,
		goalRepo: goalRepo,
	}
}

// GetProfile retrieves a user profile. Missing profiles are created on the
// fly from the auth claims, since identity lives in the hosted auth service
// and the first authenticated request may arrive before any profile write.
func (s *UserService) GetProfile(ctx context.Context, userID, email string) (*models.UserProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return s.createDefaultProfile(ctx, userID, email)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) createDefaultProfile(ctx context.Context, userID, email string) (*models.UserProfile, error) {
	displayName := email
	if at := strings.Index(email, "@"); at > 0 {
		displayName = email[:at]
	}

	profile := &models.UserProfile{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
		LastLogin:   time.Now(),
		Preferences: models.DefaultPreferences(),
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", userID).Info("Created default profile on first access")
	return profile, nil
}

// ProfileUpdate carries the user-editable profile fields. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	DisplayName *string             `json:"display_name,omitempty"`
	Avatar      *string             `json:"avatar,omitempty"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// UpdateProfile applies a partial edit to a profile. Stats and identity are
// not user-settable.
func (s *UserService) UpdateProfile(ctx context.Context, userID, email string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, apperror.MissingField("display_name")
		}
		profile.DisplayName = name
	}
	if update.Avatar != nil {
		profile.Avatar = *update.Avatar
	}
	if update.Preferences != nil {
		profile.Preferences = *update.Preferences
	}

	return s.repo.UpdateProfile(ctx, userID, profile)
}

// RecomputeStats recounts the user's goals from the goals collection and
// rewrites the aggregate counters, repairing any drift from best-effort
// bookkeeping. Streak counters are preserved.
func (s *UserService) RecomputeStats(ctx context.Context, userID string) (*models.UserStats, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, completed, err := s.goalRepo.CountUserGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := profile.Stats
	stats.TotalGoals = total
	stats.CompletedGoals = completed

	if err := s.repo.SetStats(ctx, userID, stats); err != nil {
		return nil, err
	}

	if stats != profile.Stats {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":       userID,
			"was_total":     profile.Stats.TotalGoals,
			"was_completed": profile.Stats.CompletedGoals,
			"now_total":     total,
			"now_completed": completed,
		}).Info("Repaired stats drift")
	}

	return &stats, nil
}

// DeleteAccount removes every goal owned by the user and then the profile
// itself. Callers must have already collected an explicit confirmation.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.goalRepo.DeleteUserGoals(ctx, userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to delete user goals during account deletion")
		return err
	}

	if err := s.repo.DeleteProfile(ctx, userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to delete profile during account deletion")
		return err
	}

	logger.Log.WithField("user_id", userID).Info("Account deleted")
	return nil
}

// ListUserIDs returns the IDs of all known profiles. Used by the nightly
// reconciliation job.
func (s *UserService) ListUserIDs(ctx context.Context) ([]string, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
