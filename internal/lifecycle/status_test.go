package lifecycle

import (
	"testing"

	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatusExhaustive(t *testing.T) {
	for p := 0; p <= 100; p++ {
		got := DeriveStatus(p)
		switch {
		case p == 0:
			assert.Equal(t, models.StatusNotStarted, got, "progress %d", p)
		case p == 100:
			assert.Equal(t, models.StatusCompleted, got, "progress %d", p)
		default:
			assert.Equal(t, models.StatusInProgress, got, "progress %d", p)
		}
	}
}

func TestCheckProgress(t *testing.T) {
	require.NoError(t, CheckProgress(0))
	require.NoError(t, CheckProgress(50))
	require.NoError(t, CheckProgress(100))
	require.Error(t, CheckProgress(-1))
	require.Error(t, CheckProgress(101))
	require.Error(t, CheckProgress(1000))
}
