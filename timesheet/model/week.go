package model

import "time"

// WeekInfo is a Monday-anchored 7-day span clipped to a calendar month.
// Rows are created by the week generator and read-only to everything else;
// the same (start, end) pair is never written twice.
type WeekInfo struct {
	ID         int32     `gorm:"primaryKey;column:id" json:"id"`
	StartDate  time.Time `gorm:"column:start_date;type:date;not null" json:"startDate"`
	EndDate    time.Time `gorm:"column:end_date;type:date;not null" json:"endDate"`
	WeekNumber int       `gorm:"column:week_number;not null" json:"weekNumber"`
	Month      int       `gorm:"column:month;not null;index:idx_week_year_month" json:"month"`
	Year       int       `gorm:"column:year;not null;index:idx_week_year_month" json:"year"`
	Incomplete bool      `gorm:"column:incomplete;not null;default:false" json:"incomplete"`
}

func (WeekInfo) TableName() string {
	return "week_infos"
}

// Contains reports whether d falls inside [StartDate, EndDate].
func (w *WeekInfo) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.StartDate) && !day.After(w.EndDate)
}
