package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository defines database operations related to goals.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error)
	GetUserGoals(ctx context.Context, userID string) ([]models.Goal, error)
	GetGoalsByTimelineYears(ctx context.Context, userID string, years int) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error)
	UpdateGoalProgress(ctx context.Context, id primitive.ObjectID, progress int, status string) error
	DeleteGoal(ctx context.Context, id primitive.ObjectID) error
	DeleteUserGoals(ctx context.Context, userID string) error
	CountUserGoals(ctx context.Context, userID string) (total int, completed int, err error)
}

type goalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new GoalRepository backed by MongoDB.
func NewGoalRepository(db *mongo.Database) GoalRepository {
	return &goalRepository{
		collection: db.Collection("goals"),
	}
}

// CreateGoal inserts a new goal and assigns its server-side identity.
func (r *goalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, fmt.Errorf("%w: insert goal: %v", apperror.ErrUnavailable, err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted goal ID")
		return nil, fmt.Errorf("%w: unexpected inserted ID type", apperror.ErrUnavailable)
	}
	goal.ID = insertedID

	logger.Log.WithField("goal_id", goal.ID.Hex()).Info("Goal created")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID.
func (r *goalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to find goal by ID")
		return nil, fmt.Errorf("%w: find goal: %v", apperror.ErrUnavailable, err)
	}

	return &goal, nil
}

// GetUserGoals fetches all goals for a user, newest first.
func (r *goalRepository) GetUserGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch user goals")
		return nil, fmt.Errorf("%w: find goals: %v", apperror.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	return r.decodeGoals(ctx, cursor)
}

// GetGoalsByTimelineYears fetches goals on the legacy fixed-year horizon,
// soonest-due first. This path filters by the exact bucket value and is
// kept separate from date-window filtering.
func (r *goalRepository) GetGoalsByTimelineYears(ctx context.Context, userID string, years int) ([]models.Goal, error) {
	filter := bson.M{
		"user_id":        userID,
		"timeline_years": years,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "end_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to fetch timeline goals")
		return nil, fmt.Errorf("%w: find timeline goals: %v", apperror.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	return r.decodeGoals(ctx, cursor)
}

// UpdateGoal replaces the mutable fields of an existing goal.
func (r *goalRepository) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal *models.Goal) (*models.Goal, error) {
	goal.UpdatedAt = time.Now()

	update := bson.M{"$set": goal}
	if goal.TimelineYears == 0 {
		// omitempty keeps a zero out of $set, so drop any stored value
		// explicitly. A dated goal must not keep a timeline bucket.
		update["$unset"] = bson.M{"timeline_years": ""}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		update,
	)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal")
		return nil, fmt.Errorf("%w: update goal: %v", apperror.ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return nil, apperror.ErrNotFound
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal updated")
	return goal, nil
}

// UpdateGoalProgress persists progress, its derived status and a refreshed
// updated_at in a single write, so the two fields can never drift apart.
func (r *goalRepository) UpdateGoalProgress(ctx context.Context, id primitive.ObjectID, progress int, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"progress":   progress,
			"status":     status,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to update goal progress")
		return fmt.Errorf("%w: update progress: %v", apperror.ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return apperror.ErrNotFound
	}

	logger.Log.WithFields(map[string]interface{}{
		"goal_id":  id.Hex(),
		"progress": progress,
		"status":   status,
	}).Info("Goal progress updated")
	return nil
}

// DeleteGoal permanently removes a goal. Hard delete, no tombstone.
func (r *goalRepository) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
		return fmt.Errorf("%w: delete goal: %v", apperror.ErrUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return apperror.ErrNotFound
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal deleted")
	return nil
}

// DeleteUserGoals removes every goal owned by a user. Used by account deletion.
func (r *goalRepository) DeleteUserGoals(ctx context.Context, userID string) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to delete user goals")
		return fmt.Errorf("%w: delete user goals: %v", apperror.ErrUnavailable, err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   result.DeletedCount,
	}).Info("User goals deleted")
	return nil
}

// CountUserGoals counts a user's goals and how many are completed. Used by
// stats reconciliation.
func (r *goalRepository) CountUserGoals(ctx context.Context, userID string) (int, int, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: count goals: %v", apperror.ErrUnavailable, err)
	}

	completed, err := r.collection.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  models.StatusCompleted,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: count completed goals: %v", apperror.ErrUnavailable, err)
	}

	return int(total), int(completed), nil
}

func (r *goalRepository) decodeGoals(ctx context.Context, cursor *mongo.Cursor) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			logger.Log.WithError(err).Error("Failed to decode goal")
			return nil, fmt.Errorf("%w: decode goal: %v", apperror.ErrUnavailable, err)
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
