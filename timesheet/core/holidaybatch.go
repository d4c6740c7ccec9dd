package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

const dateKeyLayout = "2006-01-02"

// BatchStats summarizes one monthly holiday batch run.
type BatchStats struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	Users         int `json:"users"`
	WeeksResolved int `json:"weeksResolved"`
	Failures      int `json:"failures"`
}

// RunMonthlyHolidayBatch auto-resolves full-holiday weeks of the month
// before now. For every known user and every week of that month it creates
// approved placeholder timesheets plus an approved weekly review when each
// day of the week is a non-working holiday. Weeks a human has already
// touched are skipped, which also makes interrupted runs safe to repeat.
// Failures are isolated per (user, week): one bad calendar fetch or save
// never stops the rest of the run.
func RunMonthlyHolidayBatch(db *gorm.DB, users directory.UserDirectory, holidays directory.HolidayDirectory, now time.Time) (BatchStats, error) {
	// step back via the 1st of the month: AddDate on a day-of-month like
	// the 31st normalizes past short months and lands in the wrong one
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	year, month := prev.Year(), int(prev.Month())
	stats := BatchStats{Year: year, Month: month}

	weeks, err := WeeksForMonth(db, year, month)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch weeks for %d-%02d: %w", year, month, err)
	}
	if len(weeks) == 0 {
		logrus.Warnf("no weeks generated for %d-%02d, nothing to resolve", year, month)
		return stats, nil
	}

	allUsers, err := users.AllUsers()
	if err != nil {
		return stats, fmt.Errorf("failed to fetch users: %w", err)
	}
	stats.Users = len(allUsers)

	for userID := range allUsers {
		calendar, err := holidays.HolidaysFor(userID, month, year)
		if err != nil {
			logrus.Errorf("failed to fetch holiday calendar for user %d: %v", userID, err)
			stats.Failures += len(weeks)
			continue
		}

		holidayByDate := make(map[string]directory.Holiday, len(calendar))
		for _, h := range calendar {
			holidayByDate[h.Date.Format(dateKeyLayout)] = h
		}

		for _, week := range weeks {
			resolved, err := ensureWeekResolved(db, userID, week, holidayByDate, now)
			if err != nil {
				logrus.Errorf("failed to resolve week %d for user %d: %v", week.ID, userID, err)
				stats.Failures++
				continue
			}
			if resolved {
				stats.WeeksResolved++
			}
		}
	}

	return stats, nil
}

// ensureWeekResolved is the repeatable unit of the batch: it either leaves
// the (user, week) pair alone or brings it to the fully-resolved state.
// Reports whether it wrote anything.
func ensureWeekResolved(db *gorm.DB, userID int32, week model.WeekInfo, holidayByDate map[string]directory.Holiday, now time.Time) (bool, error) {
	var existing model.WeeklyTimesheetReview
	err := db.Where("user_id = ? AND week_id = ?", userID, week.ID).First(&existing).Error
	if err == nil {
		// a human (or an earlier run) has touched this week
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if !isFullHolidayWeek(week, holidayByDate) {
		return false, nil
	}

	for d := week.StartDate; !d.After(week.EndDate); d = d.AddDate(0, 0, 1) {
		if err := ensurePlaceholderTimesheet(db, userID, week.ID, d); err != nil {
			return false, err
		}
	}

	weekly := model.WeeklyTimesheetReview{
		UserID:      userID,
		WeekID:      week.ID,
		Status:      model.WeeklyStatusApproved,
		SubmittedAt: now,
		ReviewedAt:  now,
	}
	if err := db.Create(&weekly).Error; err != nil {
		return false, fmt.Errorf("failed to create weekly review: %w", err)
	}

	return true, nil
}

// isFullHolidayWeek requires every calendar date of the week to carry a
// holiday entry that does not ask for a timesheet. A missing day or a day
// still requiring submission disqualifies the week.
func isFullHolidayWeek(week model.WeekInfo, holidayByDate map[string]directory.Holiday) bool {
	for d := week.StartDate; !d.After(week.EndDate); d = d.AddDate(0, 0, 1) {
		h, ok := holidayByDate[d.Format(dateKeyLayout)]
		if !ok || h.SubmitTimesheetRequired {
			return false
		}
	}
	return true
}

// ensurePlaceholderTimesheet creates the approved zero-entry sheet for one
// holiday date unless one already exists, so a rerun after an interrupted
// write does not trip the (user, date) uniqueness.
func ensurePlaceholderTimesheet(db *gorm.DB, userID, weekID int32, date time.Time) error {
	var count int64
	if err := db.Model(&model.Timesheet{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hours := 8.0
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		hours = 0
	}

	ts := model.Timesheet{
		UserID:        userID,
		Date:          date,
		Status:        model.StatusApproved,
		Hours:         hours,
		AutoGenerated: true,
		WeekID:        weekID,
	}
	if err := db.Create(&ts).Error; err != nil {
		return fmt.Errorf("failed to create placeholder timesheet for %s: %w", date.Format(dateKeyLayout), err)
	}
	return nil
}
