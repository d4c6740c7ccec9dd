package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tempora.io/tempora/core"
	tscore "tempora.io/tempora/timesheet/core"
)

func main() {
	now := time.Now()
	year := flag.Int("year", now.Year(), "year to generate weeks for")
	month := flag.Int("month", int(now.Month()), "month to generate weeks for (1-12)")
	flag.Parse()

	_ = godotenv.Load()

	dsn := os.Getenv("DSN")
	if dsn == "" {
		logrus.Fatal("DSN is not set")
	}

	db := core.ConnectDB(dsn)
	if err := core.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if err := tscore.GenerateWeeksForMonth(db, *year, *month); err != nil {
		logrus.Fatalf("week generation failed: %v", err)
	}

	weeks, err := tscore.WeeksForMonth(db, *year, *month)
	if err != nil {
		logrus.Fatal(err)
	}
	for _, w := range weeks {
		logrus.Infof("week %d: %s - %s (incomplete=%v)",
			w.WeekNumber, w.StartDate.Format("2006-01-02"), w.EndDate.Format("2006-01-02"), w.Incomplete)
	}
}
