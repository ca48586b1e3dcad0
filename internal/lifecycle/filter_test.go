package lifecycle

import (
	"testing"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func datedGoal(title, start, end string) models.Goal {
	return models.Goal{Title: title, StartDate: date(start), EndDate: date(end)}
}

func TestInWindowOverlapSemantics(t *testing.T) {
	a := datedGoal("A", "2025-01-01", "2025-01-31")
	b := datedGoal("B", "2025-02-01", "2025-02-28")

	// Window overlaps A at its tail and B at its head: both pass.
	w := Window{Start: date("2025-01-15"), End: date("2025-02-10")}
	assert.True(t, InWindow(a, w))
	assert.True(t, InWindow(b, w))

	// Window entirely after both: neither passes.
	w = Window{Start: date("2025-03-01"), End: date("2025-03-31")}
	assert.False(t, InWindow(a, w))
	assert.False(t, InWindow(b, w))
}

func TestInWindowSingleBounds(t *testing.T) {
	g := datedGoal("G", "2025-05-01", "2025-05-31")

	// Only an end bound: goal excluded when it starts strictly after it.
	assert.False(t, InWindow(g, Window{End: date("2025-04-30")}))
	assert.True(t, InWindow(g, Window{End: date("2025-05-01")}))

	// Only a start bound: goal excluded when it ends strictly before it.
	assert.False(t, InWindow(g, Window{Start: date("2025-06-01")}))
	assert.True(t, InWindow(g, Window{Start: date("2025-05-31")}))
}

func TestInWindowExcludesLegacyGoals(t *testing.T) {
	legacy := models.Goal{Title: "legacy", TimelineYears: 10}
	w := Window{Start: date("2000-01-01"), End: date("2100-01-01")}

	// No date information to test, so never included in window filtering.
	assert.False(t, InWindow(legacy, w))
}

func TestMatchesStatus(t *testing.T) {
	notStarted := models.Goal{Status: models.StatusNotStarted}
	inProgress := models.Goal{Status: models.StatusInProgress}
	completed := models.Goal{Status: models.StatusCompleted}

	assert.True(t, MatchesStatus(notStarted, FilterActive))
	assert.True(t, MatchesStatus(inProgress, FilterActive))
	assert.False(t, MatchesStatus(completed, FilterActive))

	assert.False(t, MatchesStatus(notStarted, FilterCompleted))
	assert.False(t, MatchesStatus(inProgress, FilterCompleted))
	assert.True(t, MatchesStatus(completed, FilterCompleted))

	assert.True(t, MatchesStatus(completed, ""))
}

func TestFilterComposesByAND(t *testing.T) {
	a := datedGoal("A", "2025-01-01", "2025-01-31")
	a.Status = models.StatusInProgress
	b := datedGoal("B", "2025-02-01", "2025-02-28")
	b.Status = models.StatusCompleted

	goals := []models.Goal{a, b}
	w := Window{Start: date("2025-01-15"), End: date("2025-02-10")}

	got := Filter(goals, FilterActive, w)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)

	got = Filter(goals, FilterCompleted, w)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestFilterEmptyResultIsNotError(t *testing.T) {
	got := Filter(nil, FilterActive, Window{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDurationLabel(t *testing.T) {
	assert.Equal(t, "1 day", DurationLabel(datedGoal("", "2025-01-01", "2025-01-02")))
	assert.Equal(t, "0 days", DurationLabel(datedGoal("", "2025-01-01", "2025-01-01")))
	assert.Equal(t, "30 days", DurationLabel(datedGoal("", "2025-01-01", "2025-01-31")))

	legacy := models.Goal{TimelineYears: 5}
	assert.Equal(t, "1825 days", DurationLabel(legacy))

	assert.Equal(t, "Duration N/A", DurationLabel(models.Goal{}))
}
