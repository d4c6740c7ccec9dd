package core

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tempora.io/tempora/timesheet/model"
)

// maxWeeksPerMonth bounds the generator's stride loop.
const maxWeeksPerMonth = 5

// GenerateWeeksForMonth creates the WeekInfo rows covering one calendar
// month. Weeks are Monday-anchored and clipped to the month's first and
// last day; a clipped week is flagged incomplete. Each candidate window is
// checked against the table before creation, so re-running the generator
// for the same month is a no-op: pre-existing rows are logged and skipped,
// never overwritten.
func GenerateWeeksForMonth(db *gorm.DB, year, month int) error {
	if month < 1 || month > 12 {
		return validationErrorf("invalid month: %d", month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// Monday on/before the 1st.
	offset := (int(first.Weekday()) + 6) % 7
	monday := first.AddDate(0, 0, -offset)

	weekNumber := 0
	for i := 0; i < maxWeeksPerMonth; i++ {
		windowStart := monday.AddDate(0, 0, 7*i)
		windowEnd := windowStart.AddDate(0, 0, 6)

		if windowStart.After(last) {
			break
		}

		start := windowStart
		end := windowEnd
		incomplete := false
		if start.Before(first) {
			start = first
			incomplete = true
		}
		if end.After(last) {
			end = last
			incomplete = true
		}

		weekNumber++

		var count int64
		if err := db.Model(&model.WeekInfo{}).
			Where("start_date = ? AND end_date = ?", start, end).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing week: %w", err)
		}
		if count > 0 {
			logrus.Warnf("week %s - %s already exists, skipping",
				start.Format("2006-01-02"), end.Format("2006-01-02"))
			continue
		}

		week := model.WeekInfo{
			StartDate:  start,
			EndDate:    end,
			WeekNumber: weekNumber,
			Month:      month,
			Year:       year,
			Incomplete: incomplete,
		}
		if err := db.Create(&week).Error; err != nil {
			return fmt.Errorf("failed to create week %s - %s: %w",
				start.Format("2006-01-02"), end.Format("2006-01-02"), err)
		}
	}

	return nil
}

// WeeksForMonth returns the generated weeks of a month ordered by start.
func WeeksForMonth(db *gorm.DB, year, month int) ([]model.WeekInfo, error) {
	var weeks []model.WeekInfo
	err := db.Where("year = ? AND month = ?", year, month).
		Order("start_date").
		Find(&weeks).Error
	return weeks, err
}
