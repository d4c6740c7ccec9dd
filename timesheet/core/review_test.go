package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.io/tempora/timesheet/model"
)

func TestReviewWeek(t *testing.T) {
	db := newTestDB(t)
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	week := createWeek(t, db, start, end)
	mon := createTimesheet(t, db, 7, start, week.ID, model.StatusSubmitted, 100)
	tue := createTimesheet(t, db, 7, start.AddDate(0, 0, 1), week.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	msg, err := ReviewWeek(db, projects, 1, []int32{mon.ID, tue.ID}, model.DecisionApproved, "")
	require.NoError(t, err)
	assert.Contains(t, msg, "Reviewed 2 timesheets")

	for _, id := range []int32{mon.ID, tue.ID} {
		var ts model.Timesheet
		require.NoError(t, db.First(&ts, id).Error)
		assert.Equal(t, model.StatusApproved, ts.Status)
	}
}

func TestReviewWeekRejectsWholeBatchOnBadState(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	ok := createTimesheet(t, db, 7, date(2025, 10, 6), week.ID, model.StatusSubmitted, 100)
	bad := createTimesheet(t, db, 7, date(2025, 10, 7), week.ID, model.StatusDraft, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	_, err := ReviewWeek(db, projects, 1, []int32{ok.ID, bad.ID}, model.DecisionApproved, "")
	require.Error(t, err)

	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)

	// validation runs before any write: neither sheet changed, no reviews
	var fresh model.Timesheet
	require.NoError(t, db.First(&fresh, ok.ID).Error)
	assert.Equal(t, model.StatusSubmitted, fresh.Status)

	var count int64
	require.NoError(t, db.Model(&model.TimesheetReview{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewWeekRejectsWholeBatchOnForeignSheet(t *testing.T) {
	db := newTestDB(t)
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	week := createWeek(t, db, start, end)
	mine := createTimesheet(t, db, 7, start, week.ID, model.StatusSubmitted, 100)
	foreign := createTimesheet(t, db, 7, start.AddDate(0, 0, 1), week.ID, model.StatusSubmitted, 200)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1, 200: 2}}

	// manager 1 owns project 100 but not 200; the batch must fail before
	// the first sheet's review lands
	_, err := ReviewWeek(db, projects, 1, []int32{mine.ID, foreign.ID}, model.DecisionApproved, "")
	assert.ErrorIs(t, err, ErrNotApprover)

	var count int64
	require.NoError(t, db.Model(&model.TimesheetReview{}).Count(&count).Error)
	assert.Zero(t, count)

	var fresh model.Timesheet
	require.NoError(t, db.First(&fresh, mine.ID).Error)
	assert.Equal(t, model.StatusSubmitted, fresh.Status)
}

func TestReviewWeekRejectsWholeBatchOnDirectoryFailure(t *testing.T) {
	db := newTestDB(t)
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	week := createWeek(t, db, start, end)
	a := createTimesheet(t, db, 7, start, week.ID, model.StatusSubmitted, 100)
	b := createTimesheet(t, db, 7, start.AddDate(0, 0, 1), week.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{err: errors.New("directory unreachable")}

	_, err := ReviewWeek(db, projects, 1, []int32{a.ID, b.ID}, model.DecisionApproved, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory unreachable")

	var count int64
	require.NoError(t, db.Model(&model.TimesheetReview{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewWeekMixedWeeks(t *testing.T) {
	db := newTestDB(t)
	week1 := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	week2 := createWeek(t, db, date(2025, 10, 13), date(2025, 10, 19))
	a := createTimesheet(t, db, 7, date(2025, 10, 6), week1.ID, model.StatusSubmitted, 100)
	b := createTimesheet(t, db, 7, date(2025, 10, 13), week2.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	_, err := ReviewWeek(db, projects, 1, []int32{a.ID, b.ID}, model.DecisionApproved, "")
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReviewWeekStaleWeek(t *testing.T) {
	db := newTestDB(t)
	end := time.Now().AddDate(0, 0, -45)
	start := end.AddDate(0, 0, -6)
	week := createWeek(t, db, start, end)
	ts := createTimesheet(t, db, 7, start, week.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	_, err := ReviewWeek(db, projects, 1, []int32{ts.ID}, model.DecisionApproved, "")
	require.Error(t, err)

	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "older than 30 days")
}

func TestReviewWeekRejectionNeedsComment(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	ts := createTimesheet(t, db, 7, date(2025, 10, 6), week.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	_, err := ReviewWeek(db, projects, 1, []int32{ts.ID}, model.DecisionRejected, "")
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReviewWeekForUsersIsolatesFailures(t *testing.T) {
	db := newTestDB(t)
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -6)
	week := createWeek(t, db, start, end)
	good := createTimesheet(t, db, 7, start, week.ID, model.StatusSubmitted, 100)
	bad := createTimesheet(t, db, 8, start, week.ID, model.StatusDraft, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	summary := ReviewWeekForUsers(db, projects, 1, []UserReviewGroup{
		{UserID: 7, TimesheetIDs: []int32{good.ID}, Decision: model.DecisionApproved},
		{UserID: 8, TimesheetIDs: []int32{bad.ID}, Decision: model.DecisionApproved},
	})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Messages, 2)

	// the failing group did not block the good one
	var fresh model.Timesheet
	require.NoError(t, db.First(&fresh, good.ID).Error)
	assert.Equal(t, model.StatusApproved, fresh.Status)
}
