package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.io/tempora/timesheet/model"
)

func TestPendingReviewSheets(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))

	mine := createTimesheet(t, db, 7, date(2025, 10, 6), week.ID, model.StatusSubmitted, 100)
	// someone else's project, and a sheet not submitted yet
	createTimesheet(t, db, 7, date(2025, 10, 7), week.ID, model.StatusSubmitted, 200)
	createTimesheet(t, db, 7, date(2025, 10, 8), week.ID, model.StatusDraft, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1, 200: 2}}

	pending, err := PendingReviewSheets(db, projects, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, mine.ID, pending[0].ID)
}

func TestPendingReviewSheetsExcludesAlreadyReviewed(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	ts := createTimesheet(t, db, 7, date(2025, 10, 6), week.ID, model.StatusSubmitted, 100, 200)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1, 200: 2}}

	_, err := ReviewTimesheet(db, projects, 1, ts.ID, model.DecisionApproved, "")
	require.NoError(t, err)

	// manager 1 has decided, manager 2 has not; the half-reviewed sheet
	// sits at PENDING and still shows up for manager 2 only
	pending, err := PendingReviewSheets(db, projects, 1)
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = PendingReviewSheets(db, projects, 2)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ts.ID, pending[0].ID)
}

func TestPendingReviewSheetsNoOwnedProjects(t *testing.T) {
	db := newTestDB(t)
	week := createWeek(t, db, date(2025, 10, 6), date(2025, 10, 12))
	createTimesheet(t, db, 7, date(2025, 10, 6), week.ID, model.StatusSubmitted, 100)

	projects := &fakeProjectDirectory{owners: map[int32]int32{100: 1}}

	pending, err := PendingReviewSheets(db, projects, 99)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
