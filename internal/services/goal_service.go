package services

import (
	"context"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/lifecycle"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/lifeplanapp/lifeplan-backend/internal/repository"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRecorder is the device-scoped collaborator fed by goal creation.
// Recording is best-effort and never fails the primary mutation.
type ReviewRecorder interface {
	IncrementGoalsCreated(deviceID string) error
}

// GoalService encapsulates the business logic of the goal lifecycle.
type GoalService struct {
	repo     repository.GoalRepository
	userRepo repository.UserRepository
	review   ReviewRecorder
}

// NewGoalService creates a new GoalService. The review recorder may be nil
// when no local store is configured.
func NewGoalService(repo repository.GoalRepository, userRepo repository.UserRepository, review ReviewRecorder) *GoalService {
	return &GoalService{
		repo:     repo,
		userRepo: userRepo,
		review:   review,
	}
}

// CreateGoal validates raw input and persists a new goal for the user. All
// validation happens before any store call; nothing is partially written on
// a validation failure. The aggregate total-goals counter and the device's
// created-goals counter are adjusted best-effort afterwards.
func (s *GoalService) CreateGoal(ctx context.Context, userID, deviceID string, input lifecycle.NewGoalInput) (*models.Goal, error) {
	goal, err := lifecycle.ValidateNewGoal(input)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Goal creation rejected by validation")
		return nil, err
	}
	goal.UserID = userID

	created, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, err
	}

	if err := s.userRepo.AdjustTotalGoals(ctx, userID, 1); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Best-effort total goals increment failed")
	}

	if s.review != nil && deviceID != "" {
		if err := s.review.IncrementGoalsCreated(deviceID); err != nil {
			logger.Log.WithError(err).WithField("device_id", deviceID).Warn("Best-effort review counter increment failed")
		}
	}

	logger.Log.WithField("goal_id", created.ID.Hex()).Info("Goal created in service layer")
	return created, nil
}

// GetGoal retrieves a goal by its ID.
func (s *GoalService) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("goal_id", id).Warn("Invalid goal ID in GetGoal")
		return nil, apperror.ErrNotFound
	}
	return s.repo.GetGoalByID(ctx, objID)
}

// ListGoals returns a user's goals newest first, narrowed by an optional
// status filter and date window. An empty result is a successful outcome.
func (s *GoalService) ListGoals(ctx context.Context, userID, statusFilter string, window lifecycle.Window) ([]models.Goal, error) {
	goals, err := s.repo.GetUserGoals(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch user goals in service")
		return nil, err
	}
	return lifecycle.Filter(goals, statusFilter, window), nil
}

// ListGoalsByTimeline returns goals in a legacy fixed-year bucket, soonest
// due first. This path filters by the exact bucket value; it never uses the
// date-window overlap semantics.
func (s *GoalService) ListGoalsByTimeline(ctx context.Context, userID string, years int, statusFilter string) ([]models.Goal, error) {
	goals, err := s.repo.GetGoalsByTimelineYears(ctx, userID, years)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch timeline goals in service")
		return nil, err
	}
	return lifecycle.Filter(goals, statusFilter, lifecycle.Window{}), nil
}

// UpdateGoal applies a full-field edit to an existing goal. Identity,
// ownership and creation time are immutable; status is recomputed from the
// submitted progress.
func (s *GoalService) UpdateGoal(ctx context.Context, id string, input lifecycle.NewGoalInput, progress int) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	existing, err := s.repo.GetGoalByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	validated, err := lifecycle.ValidateNewGoal(input)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckProgress(progress); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Title = validated.Title
	updated.Description = validated.Description
	updated.Category = validated.Category
	updated.StartDate = validated.StartDate
	updated.EndDate = validated.EndDate
	// A dated edit moves the goal off the legacy timeline representation.
	updated.TimelineYears = 0
	updated.Priority = validated.Priority
	updated.Notes = validated.Notes
	updated.Progress = progress
	updated.Status = lifecycle.DeriveStatus(progress)

	result, err := s.repo.UpdateGoal(ctx, objID, &updated)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id).Error("Failed to update goal")
		return nil, err
	}

	logger.Log.WithField("goal_id", id).Info("Goal updated in service layer")
	return result, nil
}

// UpdateProgress sets a goal's progress, persisting the derived status and
// progress together in a single write. Idempotent: repeating the same value
// yields the same state.
func (s *GoalService) UpdateProgress(ctx context.Context, id string, progress int) error {
	if err := lifecycle.CheckProgress(progress); err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	return s.repo.UpdateGoalProgress(ctx, objID, progress, lifecycle.DeriveStatus(progress))
}

// MarkComplete completes a goal by forcing progress to 100 through the same
// update path as any other progress change, then bumps the completed-goals
// counter best-effort. There is no way to complete a goal without its
// progress reaching 100.
func (s *GoalService) MarkComplete(ctx context.Context, id, userID string) error {
	if err := s.UpdateProgress(ctx, id, 100); err != nil {
		return err
	}

	if err := s.userRepo.IncrementCompletedGoals(ctx, userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Best-effort completed goals increment failed")
	}
	return nil
}

// DeleteGoal permanently removes a goal and adjusts the owner's aggregate
// counter best-effort. Hard delete; there is no recovery path.
func (s *GoalService) DeleteGoal(ctx context.Context, id, userID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	if err := s.repo.DeleteGoal(ctx, objID); err != nil {
		logger.Log.WithError(err).WithField("goal_id", id).Error("Failed to delete goal")
		return err
	}

	if err := s.userRepo.AdjustTotalGoals(ctx, userID, -1); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Best-effort total goals decrement failed")
	}

	logger.Log.WithField("goal_id", id).Info("Goal deleted in service layer")
	return nil
}
