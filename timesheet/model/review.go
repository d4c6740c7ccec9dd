package model

import "time"

type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "APPROVED"
	DecisionRejected ReviewDecision = "REJECTED"
	// DecisionPending marks an approver who has not reviewed yet. It is
	// never stored; absence of a row means pending.
	DecisionPending ReviewDecision = "PENDING"
)

// TimesheetReview is one manager's decision on one timesheet. The composite
// key (timesheet_id, manager_id) is the upsert key: a manager reviewing the
// same sheet again overwrites, never duplicates.
type TimesheetReview struct {
	ID          int32          `gorm:"primaryKey;column:id" json:"id"`
	TimesheetID int32          `gorm:"column:timesheet_id;not null;uniqueIndex:uq_review_sheet_manager" json:"timesheetId"`
	ManagerID   int32          `gorm:"column:manager_id;not null;uniqueIndex:uq_review_sheet_manager" json:"managerId"`
	Decision    ReviewDecision `gorm:"column:decision;type:varchar(50);not null" json:"decision"`
	Comment     string         `gorm:"column:comment;type:text" json:"comment"`
	ReviewedAt  time.Time      `gorm:"column:reviewed_at;type:timestamp;not null" json:"reviewedAt"`
}

func (TimesheetReview) TableName() string {
	return "timesheet_reviews"
}
