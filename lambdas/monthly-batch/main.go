package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"

	"tempora.io/tempora/core"
	"tempora.io/tempora/directory"
	"tempora.io/tempora/infrastructure/communication"
	"tempora.io/tempora/infrastructure/devops"
	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/utils"
)

type BatchEvent struct {
	// Now overrides the reference time, e.g. "2025-11-01", to re-run a
	// past month. Empty means the wall clock.
	Now    string `json:"now"`
	DryRun bool   `json:"dryRun"`
}

func resolveDSN(ctx context.Context) (string, error) {
	if dsn := os.Getenv("DSN"); dsn != "" {
		return dsn, nil
	}

	fmt.Printf("[INFO] Loading database configuration from SSM parameter store\n")
	entries, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return "", err
	}

	entry := utils.Find(entries, func(e devops.DBEntry) bool {
		return e.Name == "tempora"
	})
	if entry == nil {
		return "", fmt.Errorf("tempora database parameter not found")
	}
	return entry.GetDSN(entry.Name), nil
}

func HandleRequest(ctx context.Context, event interface{}) (interface{}, error) {
	runID := uuid.NewString()
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Run %s, event: %s\n", runID, string(eventJson))

	var batchEvent BatchEvent
	if err := json.Unmarshal(eventJson, &batchEvent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch event: %w", err)
	}

	now := time.Now()
	if batchEvent.Now != "" {
		parsed, err := utils.ParseISOTime(batchEvent.Now)
		if err != nil {
			return nil, fmt.Errorf("invalid now override: %w", err)
		}
		now = *parsed
	}

	dsn, err := resolveDSN(ctx)
	if err != nil {
		return nil, err
	}

	db := core.ConnectDB(dsn)

	if err := tscore.GenerateWeeksForMonth(db, now.Year(), int(now.Month())); err != nil {
		fmt.Printf("[ERROR] week generation failed: %v\n", err)
	}

	if batchEvent.DryRun {
		fmt.Printf("[INFO] Dry run, skipping holiday batch\n")
		return map[string]string{"message": "dry run"}, nil
	}

	token := os.Getenv("DIRECTORY_TOKEN")
	users := directory.NewUserClient(os.Getenv("USER_DIRECTORY_URL"), token)

	var holidays directory.HolidayDirectory
	if url := os.Getenv("HOLIDAY_DIRECTORY_URL"); url != "" {
		holidays = directory.NewHolidayClient(url, token)
	} else {
		holidays = directory.NewLocalHolidayDirectory(db)
	}

	stats, err := tscore.RunMonthlyHolidayBatch(db, users, holidays, now)
	if err != nil {
		return nil, err
	}

	fmt.Printf("[INFO] Run %s finished: %d weeks resolved, %d failures\n", runID, stats.WeeksResolved, stats.Failures)

	slack := communication.ConnectSlack()
	msg := fmt.Sprintf("holiday batch %d-%02d: %d users, %d weeks resolved, %d failures",
		stats.Year, stats.Month, stats.Users, stats.WeeksResolved, stats.Failures)
	if stats.Failures > 0 {
		if err := slack.Error(msg); err != nil {
			fmt.Printf("[ERROR] failed to post to slack: %v\n", err)
		}
	} else if err := slack.Info(msg); err != nil {
		fmt.Printf("[ERROR] failed to post to slack: %v\n", err)
	}

	return stats, nil
}

func main() {
	lambda.Start(HandleRequest)
}
