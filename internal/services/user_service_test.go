package services

import (
	"context"
	"testing"

	"github.com/lifeplanapp/lifeplan-backend/internal/lifecycle"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*UserService, *GoalService, *fakeGoalRepo, *fakeUserRepo) {
	goalRepo := newFakeGoalRepo()
	userRepo := newFakeUserRepo()
	userRepo.profiles["user-1"] = &models.UserProfile{ID: "user-1", Email: "ada@example.com"}
	return NewUserService(userRepo, goalRepo), NewGoalService(goalRepo, userRepo, nil), goalRepo, userRepo
}

func TestGetProfileCreatesDefaultOnFirstAccess(t *testing.T) {
	svc, _, _, userRepo := newTestUserService()

	profile, err := svc.GetProfile(context.Background(), "user-2", "grace@example.com")
	require.NoError(t, err)

	assert.Equal(t, "user-2", profile.ID)
	assert.Equal(t, "grace", profile.DisplayName)
	assert.Equal(t, models.DefaultPreferences(), profile.Preferences)
	assert.Contains(t, userRepo.profiles, "user-2")
}

func TestUpdateProfilePartialEdit(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	name := "Ada L."
	updated, err := svc.UpdateProfile(context.Background(), "user-1", "ada@example.com", ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)
	assert.Equal(t, "ada@example.com", updated.Email)

	blank := "   "
	_, err = svc.UpdateProfile(context.Background(), "user-1", "ada@example.com", ProfileUpdate{DisplayName: &blank})
	require.Error(t, err)
}

func TestRecomputeStatsRepairsDrift(t *testing.T) {
	svc, goalSvc, _, userRepo := newTestUserService()
	userRepo.failCounter = true // force drift: goal writes succeed, counters don't

	g1, err := goalSvc.CreateGoal(context.Background(), "user-1", "", lifecycle.NewGoalInput{
		Title: "one", StartDate: "2025-01-01", EndDate: "2025-02-01",
	})
	require.NoError(t, err)
	_, err = goalSvc.CreateGoal(context.Background(), "user-1", "", lifecycle.NewGoalInput{
		Title: "two", StartDate: "2025-01-01", EndDate: "2025-02-01",
	})
	require.NoError(t, err)
	require.NoError(t, goalSvc.UpdateProgress(context.Background(), g1.ID.Hex(), 100))

	assert.Equal(t, 0, userRepo.profiles["user-1"].Stats.TotalGoals)

	userRepo.failCounter = false
	stats, err := svc.RecomputeStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalGoals)
	assert.Equal(t, 1, stats.CompletedGoals)
	assert.Equal(t, 2, userRepo.profiles["user-1"].Stats.TotalGoals)
}

func TestDeleteAccountRemovesGoalsAndProfile(t *testing.T) {
	svc, goalSvc, goalRepo, userRepo := newTestUserService()

	_, err := goalSvc.CreateGoal(context.Background(), "user-1", "", lifecycle.NewGoalInput{
		Title: "gone", StartDate: "2025-01-01", EndDate: "2025-02-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), "user-1"))
	assert.Empty(t, goalRepo.goals)
	assert.NotContains(t, userRepo.profiles, "user-1")
}

func TestListUserIDs(t *testing.T) {
	svc, _, _, userRepo := newTestUserService()
	userRepo.profiles["user-2"] = &models.UserProfile{ID: "user-2"}

	ids, err := svc.ListUserIDs(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)
}
