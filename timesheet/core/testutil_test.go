package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.WeekInfo{},
		&model.Timesheet{},
		&model.TimesheetEntry{},
		&model.TimesheetReview{},
		&model.WeeklyTimesheetReview{},
		&model.HolidayDay{},
	))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createWeek(t *testing.T, db *gorm.DB, start, end time.Time) model.WeekInfo {
	t.Helper()
	week := model.WeekInfo{
		StartDate:  start,
		EndDate:    end,
		WeekNumber: 1,
		Month:      int(start.Month()),
		Year:       start.Year(),
	}
	require.NoError(t, db.Create(&week).Error)
	return week
}

func createTimesheet(t *testing.T, db *gorm.DB, userID int32, day time.Time, weekID int32, status model.TimesheetStatus, projectIDs ...int32) model.Timesheet {
	t.Helper()
	ts := model.Timesheet{
		UserID: userID,
		Date:   day,
		Status: status,
		WeekID: weekID,
	}
	for _, pid := range projectIDs {
		ts.Entries = append(ts.Entries, model.TimesheetEntry{
			ProjectID: pid,
			Hours:     8,
		})
	}
	require.NoError(t, db.Create(&ts).Error)
	return ts
}

// fakeProjectDirectory maps project ids to owning managers.
type fakeProjectDirectory struct {
	owners map[int32]int32
	err    error
}

func (f *fakeProjectDirectory) ProjectsOwnedBy(managerID int32) ([]int32, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []int32
	for pid, owner := range f.owners {
		if owner == managerID {
			ids = append(ids, pid)
		}
	}
	return ids, nil
}

func (f *fakeProjectDirectory) AllProjects() ([]directory.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	var projects []directory.Project
	for pid, owner := range f.owners {
		projects = append(projects, directory.Project{
			ID:    pid,
			Owner: directory.ProjectOwner{ID: owner},
		})
	}
	return projects, nil
}

type fakeUserDirectory struct {
	users map[int32]directory.User
	err   error
}

func (f *fakeUserDirectory) AllUsers() (map[int32]directory.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

// fakeHolidayDirectory serves per-user calendars; errFor simulates a
// broken fetch for one user.
type fakeHolidayDirectory struct {
	holidays map[int32][]directory.Holiday
	errFor   map[int32]error
}

func (f *fakeHolidayDirectory) HolidaysFor(userID int32, month, year int) ([]directory.Holiday, error) {
	if err, ok := f.errFor[userID]; ok {
		return nil, err
	}
	return f.holidays[userID], nil
}

// fullHolidayRange marks every date of [start, end] as a non-working
// holiday.
func fullHolidayRange(start, end time.Time) []directory.Holiday {
	var holidays []directory.Holiday
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		holidays = append(holidays, directory.Holiday{
			Date: d,
			Name: "Shutdown",
		})
	}
	return holidays
}
