package core

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

// staleReviewWindow is how long after a week ends its sheets stay
// reviewable.
const staleReviewWindow = 30 * 24 * time.Hour

// ReviewWeek lets one manager apply one decision to a batch of submitted
// timesheets from the same week. Validation covers the whole batch before
// anything is written: one sheet in the wrong state rejects the call with
// no status change for any sheet.
func ReviewWeek(db *gorm.DB, projects directory.ProjectDirectory, managerID int32, timesheetIDs []int32, decision model.ReviewDecision, comment string) (string, error) {
	if len(timesheetIDs) == 0 {
		return "", validationErrorf("no timesheet ids given")
	}
	if err := validateDecision(decision, comment); err != nil {
		return "", err
	}

	var sheets []model.Timesheet
	if err := db.Preload("Entries").Where("id IN ?", timesheetIDs).Find(&sheets).Error; err != nil {
		return "", err
	}
	if len(sheets) != len(timesheetIDs) {
		return "", notFoundErrorf("%d of %d timesheets not found", len(timesheetIDs)-len(sheets), len(timesheetIDs))
	}

	weekID := sheets[0].WeekID
	for _, ts := range sheets {
		if ts.WeekID != weekID {
			return "", validationErrorf("timesheets belong to different weeks")
		}
		if ts.Status != model.StatusSubmitted {
			return "", stateErrorf("timesheet %d is %s, only submitted timesheets can be reviewed", ts.ID, ts.Status)
		}
	}

	var week model.WeekInfo
	if err := db.First(&week, weekID).Error; err != nil {
		return "", notFoundErrorf("week %d not found", weekID)
	}
	if time.Since(week.EndDate) > staleReviewWindow {
		return "", stateErrorf("week ending %s is older than 30 days and can no longer be reviewed",
			week.EndDate.Format("2006-01-02"))
	}

	// authorization is part of the whole-batch validation: the manager
	// must be an approver of every sheet before anything is written
	owners, err := ownersByProject(projects)
	if err != nil {
		return "", err
	}
	approversBySheet := make([][]int32, len(sheets))
	for i := range sheets {
		approversBySheet[i] = approversFromOwners(owners, &sheets[i])
		if !isApprover(approversBySheet[i], managerID) {
			return "", ErrNotApprover
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range sheets {
			if _, err := reviewOne(tx, managerID, &sheets[i], approversBySheet[i], decision, comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Reviewed %d timesheets for week %d", len(sheets), weekID), nil
}

// UserReviewGroup is one user's slice of a multi-user bulk review.
type UserReviewGroup struct {
	UserID       int32
	TimesheetIDs []int32
	Decision     model.ReviewDecision
	Comment      string
}

// BulkReviewSummary aggregates a multi-user bulk review call.
type BulkReviewSummary struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Messages  []string `json:"messages"`
}

// ReviewWeekForUsers processes each user's group independently through
// ReviewWeek. A failing group is recorded and does not abort the rest.
func ReviewWeekForUsers(db *gorm.DB, projects directory.ProjectDirectory, managerID int32, groups []UserReviewGroup) BulkReviewSummary {
	summary := BulkReviewSummary{Total: len(groups)}

	for _, group := range groups {
		msg, err := ReviewWeek(db, projects, managerID, group.TimesheetIDs, group.Decision, group.Comment)
		if err != nil {
			logrus.Warnf("bulk review failed for user %d: %v", group.UserID, err)
			summary.Failed++
			summary.Messages = append(summary.Messages, fmt.Sprintf("user %d: %v", group.UserID, err))
			continue
		}
		summary.Succeeded++
		summary.Messages = append(summary.Messages, fmt.Sprintf("user %d: %s", group.UserID, msg))
	}

	return summary
}
