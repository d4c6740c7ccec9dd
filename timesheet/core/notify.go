package core

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

// Mailer is the outbound notification collaborator. Sending is
// fire-and-forget: callers log failures and move on, a broken mail path
// never blocks a review.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// NotifyWeekSubmitted emails the managers who will need to review the
// user's freshly submitted week.
func NotifyWeekSubmitted(ctx context.Context, db *gorm.DB, mailer Mailer, users directory.UserDirectory, projects directory.ProjectDirectory, userID, weekID int32) {
	if mailer == nil {
		return
	}

	var sheets []model.Timesheet
	if err := db.Preload("Entries").
		Where("user_id = ? AND week_id = ?", userID, weekID).
		Find(&sheets).Error; err != nil {
		logrus.Warnf("submission notification skipped, failed to load timesheets: %v", err)
		return
	}

	managerIDs := make(map[int32]bool)
	for i := range sheets {
		approvers, err := ApproversFor(projects, &sheets[i])
		if err != nil {
			logrus.Warnf("submission notification skipped, failed to resolve approvers: %v", err)
			return
		}
		for _, id := range approvers {
			managerIDs[id] = true
		}
	}
	if len(managerIDs) == 0 {
		return
	}

	allUsers, err := users.AllUsers()
	if err != nil {
		logrus.Warnf("submission notification skipped, failed to fetch users: %v", err)
		return
	}

	var recipients []string
	for id := range managerIDs {
		if u, ok := allUsers[id]; ok && u.Email != "" {
			recipients = append(recipients, u.Email)
		}
	}
	if len(recipients) == 0 {
		return
	}

	employee := allUsers[userID].Name
	if employee == "" {
		employee = fmt.Sprintf("user %d", userID)
	}

	subject := fmt.Sprintf("Timesheets submitted by %s", employee)
	body := fmt.Sprintf("%s has submitted %d timesheet(s) for review.", employee, len(sheets))
	if err := mailer.Send(ctx, recipients, subject, body); err != nil {
		logrus.Warnf("failed to send submission notification: %v", err)
	}
}

// NotifyDecision emails the timesheet owner about a manager's decision.
func NotifyDecision(ctx context.Context, mailer Mailer, users directory.UserDirectory, ts *model.Timesheet, decision model.ReviewDecision, comment string) {
	if mailer == nil {
		return
	}

	allUsers, err := users.AllUsers()
	if err != nil {
		logrus.Warnf("decision notification skipped, failed to fetch users: %v", err)
		return
	}

	owner, ok := allUsers[ts.UserID]
	if !ok || owner.Email == "" {
		return
	}

	subject := fmt.Sprintf("Timesheet for %s was %s", ts.Date.Format("2006-01-02"), decision)
	body := fmt.Sprintf("Your timesheet for %s was %s.", ts.Date.Format("2006-01-02"), decision)
	if comment != "" {
		body += "\n\nComment: " + comment
	}
	if err := mailer.Send(ctx, []string{owner.Email}, subject, body); err != nil {
		logrus.Warnf("failed to send decision notification: %v", err)
	}
}
