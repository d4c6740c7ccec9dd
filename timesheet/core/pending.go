package core

import (
	"fmt"

	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
	"tempora.io/tempora/utils"
)

// PendingReviewSheets returns the submitted timesheets still waiting on the
// manager's decision: sheets whose entries reference one of the manager's
// projects and that carry no review row from this manager yet.
func PendingReviewSheets(db *gorm.DB, projects directory.ProjectDirectory, managerID int32) ([]model.Timesheet, error) {
	owned, err := projects.ProjectsOwnedBy(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owned projects: %w", err)
	}
	if len(owned) == 0 {
		return nil, nil
	}

	ownedSet := make(map[int32]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}

	// a partially reviewed sheet recomputes to PENDING, so both states are
	// still awaiting decisions
	var sheets []model.Timesheet
	if err := db.Preload("Entries").Preload("Reviews").
		Where("status IN ?", []model.TimesheetStatus{model.StatusSubmitted, model.StatusPending}).
		Order("date").
		Find(&sheets).Error; err != nil {
		return nil, err
	}

	return utils.Filter(sheets, func(ts model.Timesheet) bool {
		mine := false
		for _, e := range ts.Entries {
			if ownedSet[e.ProjectID] {
				mine = true
				break
			}
		}
		if !mine {
			return false
		}
		for _, r := range ts.Reviews {
			if r.ManagerID == managerID {
				return false
			}
		}
		return true
	}), nil
}
