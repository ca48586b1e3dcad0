package ads

import (
	"context"
	"testing"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(Config{Enabled: true, BannerUnitID: "unit-1"})

	// Uninitialized session is unavailable, not broken.
	_, err := s.Units()
	assert.ErrorIs(t, err, apperror.ErrUnavailable)

	require.NoError(t, s.Initialize(context.Background()))
	// Initialize is idempotent.
	require.NoError(t, s.Initialize(context.Background()))

	units, err := s.Units()
	require.NoError(t, err)
	assert.True(t, units.Enabled)
	assert.Equal(t, "unit-1", units.BannerUnitID)

	s.Dispose()
	s.Dispose() // safe to repeat

	_, err = s.Units()
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
	assert.Error(t, s.Initialize(context.Background()))
}

func TestSessionRejectsEnabledWithoutUnits(t *testing.T) {
	s := NewSession(Config{Enabled: true})
	assert.Error(t, s.Initialize(context.Background()))
}

func TestSessionDisabledNeedsNoUnits(t *testing.T) {
	s := NewSession(Config{})
	require.NoError(t, s.Initialize(context.Background()))

	units, err := s.Units()
	require.NoError(t, err)
	assert.False(t, units.Enabled)
}
