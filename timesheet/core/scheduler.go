package core

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tempora.io/tempora/directory"
)

// monthlyRunDue reports whether the monthly jobs should fire now, given
// the month they last ran in. The window is any tick on the 1st from
// 02:00 onwards, so a process that was down at 02:00 sharp still runs
// once it comes back, but a single restart never runs the month twice.
func monthlyRunDue(now, lastRun time.Time) bool {
	if now.Day() != 1 || now.Hour() < 2 {
		return false
	}
	return now.Year() != lastRun.Year() || now.Month() != lastRun.Month()
}

// StartScheduler starts the background job loop for deployments without an
// external cron trigger. On the first day of each month it generates the
// new month's weeks and runs the holiday batch for the month just ended.
func StartScheduler(db *gorm.DB, users directory.UserDirectory, holidays directory.HolidayDirectory, onBatchDone func(BatchStats)) {
	go func() {
		logrus.Info("scheduler started")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		var lastRun time.Time
		for range ticker.C {
			now := time.Now()
			if !monthlyRunDue(now, lastRun) {
				continue
			}
			lastRun = now

			logrus.Infof("running monthly jobs for %s", now.Format("2006-01"))

			if err := GenerateWeeksForMonth(db, now.Year(), int(now.Month())); err != nil {
				logrus.Errorf("week generation failed: %v", err)
			}

			stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
			if err != nil {
				logrus.Errorf("holiday batch failed: %v", err)
				continue
			}
			logrus.Infof("holiday batch done: %d weeks resolved, %d failures", stats.WeeksResolved, stats.Failures)
			if onBatchDone != nil {
				onBatchDone(stats)
			}
		}
	}()
}
