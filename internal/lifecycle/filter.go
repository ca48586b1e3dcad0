package lifecycle

import (
	"fmt"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/models"
)

// Status filter values accepted by the goal list query.
const (
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// Window is an optional date range applied to goal lists. Either bound may
// be nil independently.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Empty reports whether the window carries no bounds at all.
func (w Window) Empty() bool {
	return w.Start == nil && w.End == nil
}

// InWindow reports whether a goal's [start, end] interval overlaps the
// window. Overlap, not containment: touching the window at either edge is
// enough. Legacy timeline-only goals carry no dates and are excluded from
// any window filtering.
func InWindow(g models.Goal, w Window) bool {
	if g.StartDate == nil || g.EndDate == nil {
		return false
	}
	gStart := dateOnly(*g.StartDate)
	gEnd := dateOnly(*g.EndDate)
	if w.Start != nil && gEnd.Before(dateOnly(*w.Start)) {
		return false
	}
	if w.End != nil && gStart.After(dateOnly(*w.End)) {
		return false
	}
	return true
}

// MatchesStatus applies the status filter. "active" covers everything that
// is not completed; an empty filter matches all goals.
func MatchesStatus(g models.Goal, filter string) bool {
	switch filter {
	case FilterCompleted:
		return g.Status == models.StatusCompleted
	case FilterActive:
		return g.Status != models.StatusCompleted
	default:
		return true
	}
}

// Filter narrows a goal list by a status filter and a date window. The two
// predicates are independent and compose by AND; order of application does
// not matter. An empty window applies no date filtering.
func Filter(goals []models.Goal, statusFilter string, w Window) []models.Goal {
	filtered := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if !MatchesStatus(g, statusFilter) {
			continue
		}
		if !w.Empty() && !InWindow(g, w) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

// DurationLabel renders the display duration of a goal. Dated goals show
// whole days between start and end; legacy goals approximate from their
// year horizon. Goals with neither get a placeholder, not an error.
func DurationLabel(g models.Goal) string {
	if g.StartDate != nil && g.EndDate != nil {
		diff := dateOnly(*g.EndDate).Sub(dateOnly(*g.StartDate))
		days := int(diff.Round(24*time.Hour).Hours() / 24)
		if days < 0 {
			days = 0
		}
		return pluralDays(days)
	}
	if g.TimelineYears > 0 {
		return pluralDays(g.TimelineYears * 365)
	}
	return "Duration N/A"
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
