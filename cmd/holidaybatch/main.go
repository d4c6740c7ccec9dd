package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tempora.io/tempora/core"
	"tempora.io/tempora/directory"
	tscore "tempora.io/tempora/timesheet/core"
)

// Runs the monthly holiday batch once, for the month before now. Meant for
// local runs and backfills; production uses the lambda or the scheduler.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DSN")
	if dsn == "" {
		logrus.Fatal("DSN is not set")
	}

	db := core.ConnectDB(dsn)
	if err := core.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	token := os.Getenv("DIRECTORY_TOKEN")
	users := directory.NewUserClient(os.Getenv("USER_DIRECTORY_URL"), token)

	var holidays directory.HolidayDirectory
	if url := os.Getenv("HOLIDAY_DIRECTORY_URL"); url != "" {
		holidays = directory.NewHolidayClient(url, token)
	} else {
		holidays = directory.NewLocalHolidayDirectory(db)
	}

	stats, err := tscore.RunMonthlyHolidayBatch(db, users, holidays, time.Now())
	if err != nil {
		logrus.Fatalf("holiday batch failed: %v", err)
	}

	logrus.Infof("batch %d-%02d: %d users, %d weeks resolved, %d failures",
		stats.Year, stats.Month, stats.Users, stats.WeeksResolved, stats.Failures)
}
