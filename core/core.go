package core

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"tempora.io/tempora/timesheet/model"
)

func ConnectDB(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to DB from GORM: %v", err))
	}
	return db
}

// Migrate creates/updates the review engine's tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.WeekInfo{},
		&model.Timesheet{},
		&model.TimesheetEntry{},
		&model.TimesheetReview{},
		&model.WeeklyTimesheetReview{},
		&model.HolidayDay{},
	)
}
