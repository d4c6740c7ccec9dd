package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyRunDue(t *testing.T) {
	at := func(year int, month time.Month, day, hour, min int) time.Time {
		return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	}

	var never time.Time
	assert.False(t, monthlyRunDue(at(2026, 3, 2, 2, 0), never), "not the 1st")
	assert.False(t, monthlyRunDue(at(2026, 3, 1, 1, 59), never), "before the window")
	assert.True(t, monthlyRunDue(at(2026, 3, 1, 2, 0), never))

	// a restart during the 02:00 minute must not skip the month
	assert.True(t, monthlyRunDue(at(2026, 3, 1, 2, 7), never))
	assert.True(t, monthlyRunDue(at(2026, 3, 1, 14, 30), never))

	// once run, later ticks in the same month stay quiet
	ran := at(2026, 3, 1, 2, 7)
	assert.False(t, monthlyRunDue(at(2026, 3, 1, 2, 8), ran))
	assert.False(t, monthlyRunDue(at(2026, 3, 1, 23, 59), ran))
	assert.True(t, monthlyRunDue(at(2026, 4, 1, 2, 0), ran))
}
