package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines database operations related to user profiles.
type UserRepository interface {
	GetProfile(ctx context.Context, id string) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
	UpdateProfile(ctx context.Context, id string, profile *models.UserProfile) (*models.UserProfile, error)
	AdjustTotalGoals(ctx context.Context, id string, delta int) error
	IncrementCompletedGoals(ctx context.Context, id string) error
	SetStats(ctx context.Context, id string, stats models.UserStats) error
	DeleteProfile(ctx context.Context, id string) error
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository backed by MongoDB.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// GetProfile retrieves a user profile by its auth-service subject ID.
func (r *userRepository) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to find user profile")
		return nil, fmt.Errorf("%w: find profile: %v", apperror.ErrUnavailable, err)
	}
	return &profile, nil
}

// UpsertProfile creates the profile if it does not exist yet, so first
// login never hits a missing-document error.
func (r *userRepository) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", profile.ID).Error("Failed to upsert user profile")
		return fmt.Errorf("%w: upsert profile: %v", apperror.ErrUnavailable, err)
	}

	logger.Log.WithField("user_id", profile.ID).Info("User profile upserted")
	return nil
}

// UpdateProfile replaces the mutable fields of an existing profile.
func (r *userRepository) UpdateProfile(ctx context.Context, id string, profile *models.UserProfile) (*models.UserProfile, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": profile})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to update user profile")
		return nil, fmt.Errorf("%w: update profile: %v", apperror.ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return nil, apperror.ErrNotFound
	}

	logger.Log.WithField("user_id", id).Info("User profile updated")
	return profile, nil
}

// AdjustTotalGoals shifts the total-goals counter by delta, flooring at
// zero. Best-effort bookkeeping: callers log and continue on failure.
func (r *userRepository) AdjustTotalGoals(ctx context.Context, id string, delta int) error {
	profile, err := r.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	total := profile.Stats.TotalGoals + delta
	if total < 0 {
		total = 0
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"stats.total_goals": total},
	})
	if err != nil {
		return fmt.Errorf("%w: adjust total goals: %v", apperror.ErrUnavailable, err)
	}
	return nil
}

// IncrementCompletedGoals bumps the completed-goals counter. Best-effort.
func (r *userRepository) IncrementCompletedGoals(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"stats.completed_goals": 1},
	})
	if err != nil {
		return fmt.Errorf("%w: increment completed goals: %v", apperror.ErrUnavailable, err)
	}
	return nil
}

// SetStats overwrites the aggregate counters. Used by reconciliation.
func (r *userRepository) SetStats(ctx context.Context, id string, stats models.UserStats) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"stats": stats},
	})
	if err != nil {
		return fmt.Errorf("%w: set stats: %v", apperror.ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// DeleteProfile permanently removes a user profile.
func (r *userRepository) DeleteProfile(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to delete user profile")
		return fmt.Errorf("%w: delete profile: %v", apperror.ErrUnavailable, err)
	}

	logger.Log.WithField("user_id", id).Info("User profile deleted")
	return nil
}

// ListProfiles returns every user profile. Used by the reconciliation job.
func (r *userRepository) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list profiles: %v", apperror.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	profiles := make([]models.UserProfile, 0)
	for cursor.Next(ctx) {
		var profile models.UserProfile
		if err := cursor.Decode(&profile); err != nil {
			return nil, fmt.Errorf("%w: decode profile: %v", apperror.ErrUnavailable, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
