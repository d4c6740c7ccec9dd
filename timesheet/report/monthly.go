// Package report builds the finance-facing exports over the review data.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	tscore "tempora.io/tempora/timesheet/core"
	"tempora.io/tempora/timesheet/model"
	"tempora.io/tempora/utils"
)

// MonthlyReviewWorkbook renders one month's timesheets and their review
// states into an xlsx workbook for payroll. The user directory supplies
// display names; when it is unreachable the export falls back to raw ids
// rather than failing (read path degrades, per the collaborator policy).
func MonthlyReviewWorkbook(db *gorm.DB, users directory.UserDirectory, year, month int) (*bytes.Buffer, error) {
	weeks, err := tscore.WeeksForMonth(db, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weeks: %w", err)
	}

	weekIDs := utils.Map(weeks, func(w model.WeekInfo) int32 { return w.ID })

	var sheets []model.Timesheet
	if len(weekIDs) > 0 {
		if err := db.Preload("Entries").
			Where("week_id IN ?", weekIDs).
			Order("user_id, date").
			Find(&sheets).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch timesheets: %w", err)
		}
	}

	names := map[int32]string{}
	if users != nil {
		if all, err := users.AllUsers(); err == nil {
			for id, u := range all {
				names[id] = u.Name
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("%d-%02d", year, month)
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"User", "Date", "Status", "Hours", "Auto generated"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	byUser := utils.GroupBy(sheets, func(ts model.Timesheet) int32 { return ts.UserID })
	userIDs := make([]int32, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	row := 2
	for _, userID := range userIDs {
		name := names[userID]
		if name == "" {
			name = fmt.Sprintf("user %d", userID)
		}

		for _, ts := range byUser[userID] {
			hours := ts.Hours
			if !ts.AutoGenerated {
				hours = 0
				for i := range ts.Entries {
					hours += ts.Entries[i].WorkedHours()
				}
			}

			values := []interface{}{
				name,
				ts.Date.Format("2006-01-02"),
				string(ts.Status),
				hours,
				ts.AutoGenerated,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheetName, cell, v)
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}
