package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"tempora.io/tempora/core"
	"tempora.io/tempora/infrastructure/devops"
	"tempora.io/tempora/utils"
)

const defaultBucket = "tempora-holiday-calendars"

type ImportEvent struct {
	Bucket string `json:"bucket"`
	DryRun bool   `json:"dryRun"`
}

func HandleRequest(ctx context.Context, event interface{}) (interface{}, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	var importEvent ImportEvent
	if err := json.Unmarshal(eventJson, &importEvent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal import event: %w", err)
	}

	bucket := importEvent.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}

	days, err := FetchHolidayWorkbooks(ctx, bucket)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[INFO] Parsed %d holiday rows\n", len(days))

	dsn := os.Getenv("DSN")
	if dsn == "" {
		entries, err := devops.LoadDBConfig(ctx)
		if err != nil {
			return nil, err
		}
		entry := utils.Find(entries, func(e devops.DBEntry) bool {
			return e.Name == "tempora"
		})
		if entry == nil {
			return nil, fmt.Errorf("tempora database parameter not found")
		}
		dsn = entry.GetDSN(entry.Name)
	}

	db := core.ConnectDB(dsn)

	stats, err := SyncHolidayDays(db, days, importEvent.DryRun)
	if err != nil {
		return nil, err
	}

	fmt.Printf("[INFO] Finished: %d created, %d updated, %d unchanged\n",
		stats.Created, stats.Updated, stats.Skipped)
	return stats, nil
}

func main() {
	lambda.Start(HandleRequest)
}
