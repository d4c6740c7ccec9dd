package model

import "time"

// HolidayDay is one imported holiday/leave calendar row for a user. Rows
// come from the finance workbook import (source MASTER) or from ad-hoc API
// writes; the holiday directory serves them when no external directory is
// configured.
type HolidayDay struct {
	ID                      int32     `gorm:"primaryKey;column:id" json:"id"`
	UserID                  int32     `gorm:"column:user_id;not null;index:idx_holiday_user_date" json:"userId"`
	Date                    time.Time `gorm:"column:date;type:date;not null;index:idx_holiday_user_date" json:"date"`
	Name                    string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Description             string    `gorm:"column:description;type:text" json:"description"`
	SubmitTimesheetRequired bool      `gorm:"column:submit_timesheet_required;not null;default:false" json:"submitTimesheetRequired"`
	Source                  string    `gorm:"column:source;type:varchar(50);not null;default:MASTER" json:"source"`
}

func (HolidayDay) TableName() string {
	return "holiday_days"
}
