package directory

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"tempora.io/tempora/timesheet/model"
)

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// LocalHolidayDirectory serves holiday calendars from the holiday_days
// table, which the workbook importer keeps in sync. Used when no external
// holiday system is configured.
type LocalHolidayDirectory struct {
	DB *gorm.DB
}

func NewLocalHolidayDirectory(db *gorm.DB) *LocalHolidayDirectory {
	return &LocalHolidayDirectory{DB: db}
}

func (d *LocalHolidayDirectory) HolidaysFor(userID int32, month, year int) ([]Holiday, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var rows []model.HolidayDay
	err := d.DB.Where("user_id = ? AND date BETWEEN ? AND ?", userID, first, last).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday days: %w", err)
	}

	holidays := make([]Holiday, 0, len(rows))
	for _, r := range rows {
		holidays = append(holidays, Holiday{
			Date:                    r.Date,
			SubmitTimesheetRequired: r.SubmitTimesheetRequired,
			Name:                    r.Name,
			Description:             r.Description,
		})
	}
	return holidays, nil
}
