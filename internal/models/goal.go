package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal status values. Status is always derived from progress and never set
// independently by the user.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Goal priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultCategory is applied when the user leaves the category blank.
const DefaultCategory = "General"

// Goal represents a long-horizon goal owned by a single user.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`

	// Date-based scheduling. Calendar dates only, stored at UTC midnight.
	StartDate *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	// Legacy field for older goals created against fixed year horizons
	// (5/10/15/20/25). Zero when the goal carries explicit dates.
	TimelineYears int `bson:"timeline_years,omitempty" json:"timeline_years,omitempty"`

	Priority string `bson:"priority" json:"priority"`
	Status   string `bson:"status" json:"status"`
	Progress int    `bson:"progress" json:"progress"`

	Notes      string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Milestones []Milestone `bson:"milestones,omitempty" json:"milestones,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Milestone is an optional checkpoint within a goal.
type Milestone struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// ValidPriority reports whether p is one of the allowed priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
