package jobs

import (
	"context"
	"fmt"

	"github.com/lifeplanapp/lifeplan-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// StatsReconciler repairs drift in the best-effort aggregate goal counters
// by recounting each user's goals from the goals collection.
type StatsReconciler struct {
	UserService *services.UserService
}

// NewStatsReconciler creates a new instance of StatsReconciler.
func NewStatsReconciler(userService *services.UserService) *StatsReconciler {
	return &StatsReconciler{
		UserService: userService,
	}
}

// Run recomputes stats for every known user. Individual failures are logged
// and skipped so one bad profile cannot stall the whole scan.
func (r *StatsReconciler) Run(ctx context.Context) error {
	ids, err := r.UserService.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %v", err)
	}

	var failures int
	for _, id := range ids {
		if _, err := r.UserService.RecomputeStats(ctx, id); err != nil {
			logrus.WithError(err).WithField("user_id", id).Warn("Stats reconciliation failed for user")
			failures++
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":    len(ids),
		"failures": failures,
	}).Info("Stats reconciliation scan finished")
	return nil
}
