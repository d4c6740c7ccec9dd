package model

import "time"

type WeeklyReviewStatus string

const (
	WeeklyStatusDraft             WeeklyReviewStatus = "DRAFT"
	WeeklyStatusPending           WeeklyReviewStatus = "PENDING"
	WeeklyStatusSubmitted         WeeklyReviewStatus = "SUBMITTED"
	WeeklyStatusApproved          WeeklyReviewStatus = "APPROVED"
	WeeklyStatusPartiallyApproved WeeklyReviewStatus = "PARTIALLY_APPROVED"
	WeeklyStatusPartiallyRejected WeeklyReviewStatus = "PARTIALLY_REJECTED"
	WeeklyStatusRejected          WeeklyReviewStatus = "REJECTED"
)

// WeeklyTimesheetReview is the submission/review envelope for one user's
// whole week. Created on first submission for that (user, week), updated
// ever after; the unique index keeps it one row per pair.
type WeeklyTimesheetReview struct {
	ID          int32              `gorm:"primaryKey;column:id" json:"id"`
	UserID      int32              `gorm:"column:user_id;not null;uniqueIndex:uq_weekly_user_week" json:"userId"`
	WeekID      int32              `gorm:"column:week_id;not null;uniqueIndex:uq_weekly_user_week" json:"weekId"`
	Status      WeeklyReviewStatus `gorm:"column:status;type:varchar(50);not null" json:"status"`
	SubmittedAt time.Time          `gorm:"column:submitted_at;type:timestamp;null" json:"submittedAt"`
	ReviewedAt  time.Time          `gorm:"column:reviewed_at;type:timestamp;null" json:"reviewedAt"`

	Week WeekInfo `gorm:"foreignKey:WeekID" json:"-"`
}

func (WeeklyTimesheetReview) TableName() string {
	return "weekly_timesheet_reviews"
}
