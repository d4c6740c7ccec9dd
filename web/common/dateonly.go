package common

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02" // yyyy-MM-dd

// DateOnly is a time.Time that marshals as a bare yyyy-MM-dd string. Used
// in DTOs where the calendar date is the whole value, like holiday days.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}
