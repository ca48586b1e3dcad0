package lifecycle

import (
	"strings"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
)

// NewGoalInput is the raw user input for goal creation. Dates arrive as
// YYYY-MM-DD strings. Any status or progress the caller supplies is ignored:
// new goals always start at progress 0.
type NewGoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
}

// ValidateNewGoal applies the creation rules in order, short-circuiting on
// the first failure, and returns the goal ready for persistence. The caller
// sets ownership and timestamps.
func ValidateNewGoal(input NewGoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.MissingField("title")
	}

	startStr := strings.TrimSpace(input.StartDate)
	endStr := strings.TrimSpace(input.EndDate)
	if startStr == "" || endStr == "" {
		return nil, apperror.MissingField("dates")
	}

	start, err := ParseDate(startStr)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return nil, err
	}

	// Equal dates are allowed: a single-day goal is valid.
	if end.Before(start) {
		return nil, apperror.ErrInvalidDateRange
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, apperror.InvalidArgument("priority must be one of low, medium, high")
	}

	return &models.Goal{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		StartDate:   &start,
		EndDate:     &end,
		Priority:    priority,
		Status:      models.StatusNotStarted,
		Progress:    0,
		Notes:       strings.TrimSpace(input.Notes),
	}, nil
}

// dateOnly strips any time-of-day component, normalizing to UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
