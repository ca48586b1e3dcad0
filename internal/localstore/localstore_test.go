package localstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReviewDataDefaults(t *testing.T) {
	s := openTestStore(t)

	d, err := s.ReviewData("device-1")
	require.NoError(t, err)
	assert.Equal(t, 0, d.GoalsCreated)
	assert.False(t, d.HasReviewed)
	assert.False(t, d.PromptShownAt.Valid)
}

func TestIncrementGoalsCreated(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.IncrementGoalsCreated("device-1"))
	}
	require.NoError(t, s.IncrementGoalsCreated("device-2"))

	d, err := s.ReviewData("device-1")
	require.NoError(t, err)
	assert.Equal(t, 3, d.GoalsCreated)

	d, err = s.ReviewData("device-2")
	require.NoError(t, err)
	assert.Equal(t, 1, d.GoalsCreated)
}

func TestMarkPromptShownAndReviewed(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.MarkPromptShown("device-1", now))
	d, err := s.ReviewData("device-1")
	require.NoError(t, err)
	require.True(t, d.PromptShownAt.Valid)
	assert.Equal(t, now.UnixMilli(), d.PromptShownAt.Int64)
	assert.False(t, d.HasReviewed)

	require.NoError(t, s.MarkReviewed("device-1", now.Add(time.Hour)))
	d, err = s.ReviewData("device-1")
	require.NoError(t, err)
	assert.True(t, d.HasReviewed)
}

func TestOnboardingFlag(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	done, err := s.HasCompletedOnboarding("device-1")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, s.SetOnboardingComplete("device-1", now))
	// Second call is a no-op, not an error.
	require.NoError(t, s.SetOnboardingComplete("device-1", now))

	done, err = s.HasCompletedOnboarding("device-1")
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, s.ResetOnboarding("device-1"))
	done, err = s.HasCompletedOnboarding("device-1")
	require.NoError(t, err)
	assert.False(t, done)
}
