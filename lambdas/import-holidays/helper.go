package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"tempora.io/tempora/infrastructure/filesystem"
	"tempora.io/tempora/timesheet/model"
)

type ImportStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

func parseExcelDate(dateStr string) (time.Time, error) {
	// Try parsing as ISO date first
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, nil
	}
	// Try other common formats
	formats := []string{"01-02-06", "1/2/06", "02/01/2006", "2/1/2006", "2006/01/02", "02-Jan-2006", "2006-01-02T15:04:05Z"}
	for _, fmtStr := range formats {
		if t, err := time.Parse(fmtStr, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %s", dateStr)
}

// FetchHolidayWorkbooks pulls every leave workbook from the bucket and
// flattens them into holiday rows. Expected sheet layout: header row with
// `user`, `date`, `name`, `description`, `submitRequired`; one row per
// (user, date). A malformed file or row is logged and skipped.
func FetchHolidayWorkbooks(ctx context.Context, bucket string) ([]model.HolidayDay, error) {
	fmt.Printf("[INFO] Fetching files from bucket: %s\n", bucket)

	keys, err := filesystem.ListWorkbooks(bucket, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workbooks: %w", err)
	}

	var result []model.HolidayDay

	for _, key := range keys {
		fmt.Printf("[INFO] Processing file: %s\n", key)
		var buf bytes.Buffer
		if err := filesystem.ReadFile(bucket, key, ctx, &buf); err != nil {
			fmt.Printf("[ERROR] failed to read file %s: %v\n", key, err)
			continue
		}

		f, err := excelize.OpenReader(&buf)
		if err != nil {
			fmt.Printf("[ERROR] failed to open excel file %s: %v\n", key, err)
			continue
		}

		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			if err != nil {
				fmt.Printf("[ERROR] failed to get rows from sheet %s in file %s: %v\n", sheet, key, err)
				continue
			}
			if len(rows) < 2 {
				continue
			}

			cols := columnIndex(rows[0])
			for i, row := range rows[1:] {
				day, err := parseHolidayRow(row, cols)
				if err != nil {
					fmt.Printf("[WARN] %s row %d skipped: %v\n", key, i+2, err)
					continue
				}
				result = append(result, day)
			}
		}
		f.Close()
	}

	return result, nil
}

func columnIndex(headers []string) map[string]int {
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func cellValue(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseHolidayRow(row []string, cols map[string]int) (model.HolidayDay, error) {
	userStr := cellValue(row, cols, "user")
	if userStr == "" {
		return model.HolidayDay{}, fmt.Errorf("missing user")
	}
	userID, err := strconv.Atoi(userStr)
	if err != nil {
		return model.HolidayDay{}, fmt.Errorf("invalid user %q", userStr)
	}

	dateStr := cellValue(row, cols, "date")
	if dateStr == "" {
		return model.HolidayDay{}, fmt.Errorf("missing date")
	}
	date, err := parseExcelDate(dateStr)
	if err != nil {
		return model.HolidayDay{}, err
	}

	submitRequired := false
	if v := cellValue(row, cols, "submitrequired"); v != "" {
		submitRequired, _ = strconv.ParseBool(v)
	}

	return model.HolidayDay{
		UserID:                  int32(userID),
		Date:                    date,
		Name:                    cellValue(row, cols, "name"),
		Description:             cellValue(row, cols, "description"),
		SubmitTimesheetRequired: submitRequired,
		Source:                  "MASTER",
	}, nil
}

// SyncHolidayDays reconciles the imported rows against the table. Existing
// MASTER rows for the same (user, date) are updated in place; rows from
// other sources are left alone.
func SyncHolidayDays(db *gorm.DB, imported []model.HolidayDay, dryRun bool) (ImportStats, error) {
	stats := ImportStats{}
	if len(imported) == 0 {
		return stats, nil
	}

	var existing []model.HolidayDay
	if err := db.Where("source = ?", "MASTER").Find(&existing).Error; err != nil {
		return stats, fmt.Errorf("failed to fetch existing holiday days: %w", err)
	}

	key := func(userID int32, date time.Time) string {
		return fmt.Sprintf("%d/%s", userID, date.Format("2006-01-02"))
	}

	existingByKey := make(map[string]*model.HolidayDay, len(existing))
	for i := range existing {
		existingByKey[key(existing[i].UserID, existing[i].Date)] = &existing[i]
	}

	for _, day := range imported {
		cur, ok := existingByKey[key(day.UserID, day.Date)]
		if !ok {
			stats.Created++
			if dryRun {
				continue
			}
			if err := db.Create(&day).Error; err != nil {
				return stats, fmt.Errorf("failed to create holiday day: %w", err)
			}
			continue
		}

		if cur.Name == day.Name &&
			cur.Description == day.Description &&
			cur.SubmitTimesheetRequired == day.SubmitTimesheetRequired {
			stats.Skipped++
			continue
		}

		stats.Updated++
		if dryRun {
			continue
		}
		cur.Name = day.Name
		cur.Description = day.Description
		cur.SubmitTimesheetRequired = day.SubmitTimesheetRequired
		if err := db.Save(cur).Error; err != nil {
			return stats, fmt.Errorf("failed to update holiday day: %w", err)
		}
	}

	return stats, nil
}
