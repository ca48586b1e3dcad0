package cron

import (
	"context"

	"github.com/lifeplanapp/lifeplan-backend/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCronJobs schedules the recurring background work: a nightly stats
// reconciliation scan at midnight.
func StartCronJobs(reconciler *jobs.StatsReconciler) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 0 * * *", func() {
		if err := reconciler.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Stats reconciliation run failed")
		}
	})

	c.Start()
	return c
}
