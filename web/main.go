package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tempora.io/tempora/core"
	"tempora.io/tempora/directory"
	"tempora.io/tempora/infrastructure/communication"
	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/web/handlers/timesheet"
	"tempora.io/tempora/web/middlewares"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file: %v", err)
	}

	dsn := os.Getenv("DSN")
	if dsn == "" {
		logrus.Fatal("DSN is not set")
	}

	dm, err := core.New(dsn, 10)
	if err != nil {
		logrus.Fatal(err)
	}
	defer dm.Close()

	ctx := context.Background()
	db, err := dm.GetDB(ctx)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := core.Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	base64Secret := os.Getenv("TEMPORA_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		logrus.Fatalf("failed to decode JWT secret: %v", err)
	}

	serviceToken := os.Getenv("DIRECTORY_TOKEN")
	projects := directory.NewProjectClient(os.Getenv("PROJECT_DIRECTORY_URL"), serviceToken)
	users := directory.NewUserClient(os.Getenv("USER_DIRECTORY_URL"), serviceToken)

	// holiday calendar: external system when configured, else the imported
	// local table
	var holidays directory.HolidayDirectory
	if url := os.Getenv("HOLIDAY_DIRECTORY_URL"); url != "" {
		holidays = directory.NewHolidayClient(url, serviceToken)
	} else {
		holidays = directory.NewLocalHolidayDirectory(db)
	}

	mailer := communication.NewSESMailer(os.Getenv("MAIL_FROM"))
	slack := communication.ConnectSlack()

	tscore.StartScheduler(db, users, holidays, func(stats tscore.BatchStats) {
		msg := fmt.Sprintf("holiday batch %d-%02d: %d users, %d weeks resolved, %d failures",
			stats.Year, stats.Month, stats.Users, stats.WeeksResolved, stats.Failures)
		if stats.Failures > 0 {
			if err := slack.Error(msg); err != nil {
				logrus.Warnf("failed to post to slack: %v", err)
			}
			return
		}
		if err := slack.Info(msg); err != nil {
			logrus.Warnf("failed to post to slack: %v", err)
		}
	})

	r := gin.Default()
	r.Use(middlewares.RequestID())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		timesheet.Register(protected, dm, projects, users, holidays, mailer)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8090"
	}
	r.Run(addr)
}
