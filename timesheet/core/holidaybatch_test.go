package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

func TestRunMonthlyHolidayBatch(t *testing.T) {
	db := newTestDB(t)
	// the batch resolves the previous month, so with now in November it
	// targets October's weeks
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{
		7: fullHolidayRange(week.StartDate, week.EndDate),
	}}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, 10, stats.Month)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 1, stats.WeeksResolved)
	assert.Zero(t, stats.Failures)

	var sheets []model.Timesheet
	require.NoError(t, db.Where("user_id = ?", 7).Order("date").Find(&sheets).Error)
	require.Len(t, sheets, 7)

	for i, ts := range sheets {
		assert.Equal(t, model.StatusApproved, ts.Status)
		assert.True(t, ts.AutoGenerated)
		assert.Equal(t, week.ID, ts.WeekID)
		if i < 5 {
			assert.EqualValues(t, 8, ts.Hours, "weekdays carry eight placeholder hours")
		} else {
			assert.Zero(t, ts.Hours, "weekend days carry zero hours")
		}
	}

	var weekly model.WeeklyTimesheetReview
	require.NoError(t, db.Where("user_id = ? AND week_id = ?", 7, week.ID).First(&weekly).Error)
	assert.Equal(t, model.WeeklyStatusApproved, weekly.Status)
}

func TestRunMonthlyHolidayBatchIsRepeatable(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{
		7: fullHolidayRange(week.StartDate, week.EndDate),
	}}

	_, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Zero(t, stats.WeeksResolved, "second run finds nothing left to do")

	var count int64
	require.NoError(t, db.Model(&model.Timesheet{}).Where("user_id = ?", 7).Count(&count).Error)
	assert.EqualValues(t, 7, count)
}

func TestRunMonthlyHolidayBatchSkipsTouchedWeeks(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	// the user already submitted this week; the batch must not rewrite it
	require.NoError(t, db.Create(&model.WeeklyTimesheetReview{
		UserID: 7,
		WeekID: week.ID,
		Status: model.WeeklyStatusSubmitted,
	}).Error)

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{
		7: fullHolidayRange(week.StartDate, week.EndDate),
	}}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Zero(t, stats.WeeksResolved)

	var count int64
	require.NoError(t, db.Model(&model.Timesheet{}).Where("user_id = ?", 7).Count(&count).Error)
	assert.Zero(t, count, "no placeholder sheets for a touched week")
}

func TestRunMonthlyHolidayBatchPartialHolidayWeek(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	// Wednesday still requires a timesheet, so the week stays unresolved
	calendar := fullHolidayRange(week.StartDate, week.EndDate)
	calendar[2].SubmitTimesheetRequired = true

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{7: calendar}}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Zero(t, stats.WeeksResolved)
	assert.Zero(t, stats.Failures)

	var count int64
	require.NoError(t, db.Model(&model.Timesheet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunMonthlyHolidayBatchMissingDayDisqualifies(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	// calendar covers only Monday through Saturday
	calendar := fullHolidayRange(week.StartDate, date(2025, 10, 11))

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{7: calendar}}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Zero(t, stats.WeeksResolved)
}

func TestRunMonthlyHolidayBatchIsolatesUserFailures(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	now := date(2025, 11, 15)

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
		8: {Name: "Bob"},
	}}
	holidays := &fakeHolidayDirectory{
		holidays: map[int32][]directory.Holiday{
			7: fullHolidayRange(week.StartDate, week.EndDate),
		},
		errFor: map[int32]error{8: errors.New("calendar service down")},
	}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.WeeksResolved, "the healthy user still resolves")
	assert.Equal(t, 1, stats.Failures, "one failed calendar fetch over one week")
}

func TestRunMonthlyHolidayBatchAtMonthEnd(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2026, 2, 2), date(2026, 2, 8))

	users := &fakeUserDirectory{users: map[int32]directory.User{
		7: {Name: "Alice"},
	}}
	holidays := &fakeHolidayDirectory{holidays: map[int32][]directory.Holiday{
		7: fullHolidayRange(week.StartDate, week.EndDate),
	}}

	// March 31 has no February 31 counterpart; the batch must still
	// target February, not normalize into March
	stats, err := RunMonthlyHolidayBatch(db, users, holidays, date(2026, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, 2026, stats.Year)
	assert.Equal(t, 2, stats.Month)
	assert.Equal(t, 1, stats.WeeksResolved)
}

func TestRunMonthlyHolidayBatchNoWeeks(t *testing.T) {
	db := newTestDB(t)

	users := &fakeUserDirectory{users: map[int32]directory.User{7: {Name: "Alice"}}}
	holidays := &fakeHolidayDirectory{}

	stats, err := RunMonthlyHolidayBatch(db, users, holidays, date(2025, 11, 15))
	require.NoError(t, err)
	assert.Zero(t, stats.WeeksResolved)
	assert.Zero(t, stats.Failures)
}
