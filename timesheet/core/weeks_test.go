package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tempora.io/tempora/timesheet/model"
)

func TestGenerateWeeksForMonth(t *testing.T) {
	db := newTestDB(t)

	// October 2025 starts on a Wednesday
	require.NoError(t, GenerateWeeksForMonth(db, 2025, 10))

	weeks, err := WeeksForMonth(db, 2025, 10)
	require.NoError(t, err)
	require.Len(t, weeks, 5)

	tests := []struct {
		name       string
		start      time.Time
		end        time.Time
		incomplete bool
	}{
		{"clipped leading week", date(2025, 10, 1), date(2025, 10, 5), true},
		{"full week", date(2025, 10, 6), date(2025, 10, 12), false},
		{"full week", date(2025, 10, 13), date(2025, 10, 19), false},
		{"full week", date(2025, 10, 20), date(2025, 10, 26), false},
		{"clipped trailing week", date(2025, 10, 27), date(2025, 10, 31), true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, weeks[i].StartDate.Equal(tt.start), "week %d start: got %s", i+1, weeks[i].StartDate)
			assert.True(t, weeks[i].EndDate.Equal(tt.end), "week %d end: got %s", i+1, weeks[i].EndDate)
			assert.Equal(t, tt.incomplete, weeks[i].Incomplete)
			assert.Equal(t, i+1, weeks[i].WeekNumber)
			assert.Equal(t, 10, weeks[i].Month)
			assert.Equal(t, 2025, weeks[i].Year)
			assert.True(t, weeks[i].Contains(tt.start))
			assert.True(t, weeks[i].Contains(tt.end))
			assert.False(t, weeks[i].Contains(tt.end.AddDate(0, 0, 1)))
		})
	}
}

func TestGenerateWeeksForMonthMondayStart(t *testing.T) {
	db := newTestDB(t)

	// December 2025 starts on a Monday, no leading clip
	require.NoError(t, GenerateWeeksForMonth(db, 2025, 12))

	weeks, err := WeeksForMonth(db, 2025, 12)
	require.NoError(t, err)
	require.Len(t, weeks, 5)

	assert.True(t, weeks[0].StartDate.Equal(date(2025, 12, 1)))
	assert.False(t, weeks[0].Incomplete)
	assert.True(t, weeks[4].EndDate.Equal(date(2025, 12, 31)))
	assert.True(t, weeks[4].Incomplete)
}

func TestGenerateWeeksForMonthIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, GenerateWeeksForMonth(db, 2025, 10))
	require.NoError(t, GenerateWeeksForMonth(db, 2025, 10))

	var count int64
	require.NoError(t, db.Model(&model.WeekInfo{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestGenerateWeeksForMonthInvalidMonth(t *testing.T) {
	db := newTestDB(t)

	err := GenerateWeeksForMonth(db, 2025, 13)
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
