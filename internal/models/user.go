package models

import (
	"time"
)

// UserProfile represents a user account in LifePlan. The ID is the subject
// identifier issued by the hosted authentication service, not a Mongo
// ObjectID, so profiles can be upserted on first login.
type UserProfile struct {
	ID          string    `bson:"_id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"display_name" json:"display_name"`
	Avatar      string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	LastLogin   time.Time `bson:"last_login" json:"last_login"`

	Preferences Preferences `bson:"preferences" json:"preferences"`
	Stats       UserStats   `bson:"stats" json:"stats"`
}

// Preferences holds per-user display and reminder settings.
type Preferences struct {
	Theme             string `bson:"theme" json:"theme"` // light | dark | auto
	Notifications     bool   `bson:"notifications" json:"notifications"`
	ReminderFrequency string `bson:"reminder_frequency" json:"reminder_frequency"` // daily | weekly | monthly
}

// UserStats holds aggregate goal counters. These are best-effort bookkeeping
// kept alongside goal mutations and may drift; the reconciliation job
// recomputes them from the goals collection.
type UserStats struct {
	TotalGoals     int `bson:"total_goals" json:"total_goals"`
	CompletedGoals int `bson:"completed_goals" json:"completed_goals"`
	CurrentStreak  int `bson:"current_streak" json:"current_streak"`
	LongestStreak  int `bson:"longest_streak" json:"longest_streak"`
}

// DefaultPreferences returns the preferences assigned to a new profile.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:             "auto",
		Notifications:     true,
		ReminderFrequency: "weekly",
	}
}
