package model

import "time"

type TimesheetStatus string

const (
	StatusDraft             TimesheetStatus = "DRAFT"
	StatusPending           TimesheetStatus = "PENDING"
	StatusSubmitted         TimesheetStatus = "SUBMITTED"
	StatusApproved          TimesheetStatus = "APPROVED"
	StatusPartiallyApproved TimesheetStatus = "PARTIALLY_APPROVED"
	StatusPartiallyRejected TimesheetStatus = "PARTIALLY_REJECTED"
	StatusRejected          TimesheetStatus = "REJECTED"
)

// Timesheet is one user's logged work for one calendar date. There is at
// most one row per (user, date); the unique index enforces it.
type Timesheet struct {
	ID     int32           `gorm:"primaryKey;column:id" json:"id"`
	UserID int32           `gorm:"column:user_id;not null;uniqueIndex:uq_timesheet_user_date" json:"userId"`
	Date   time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_timesheet_user_date" json:"date"`
	Status TimesheetStatus `gorm:"column:status;type:varchar(50);not null;default:DRAFT" json:"status"`

	// Hours carries the day total for auto-generated sheets; for normal
	// sheets the total comes from the entries.
	Hours         float64 `gorm:"column:hours;type:decimal(10,2)" json:"hours"`
	AutoGenerated bool    `gorm:"column:auto_generated;not null;default:false" json:"autoGenerated"`

	WeekID int32 `gorm:"column:week_id;not null" json:"weekId"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	Entries []TimesheetEntry  `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE" json:"entries"`
	Reviews []TimesheetReview `gorm:"foreignKey:TimesheetID" json:"reviews"`
	Week    WeekInfo          `gorm:"foreignKey:WeekID" json:"-"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// ProjectIDs returns the distinct projects referenced by the sheet's entries.
func (t *Timesheet) ProjectIDs() []int32 {
	seen := make(map[int32]bool)
	var ids []int32
	for _, e := range t.Entries {
		if !seen[e.ProjectID] {
			seen[e.ProjectID] = true
			ids = append(ids, e.ProjectID)
		}
	}
	return ids
}

// TimesheetEntry is one line item within a Timesheet, tied to a project and
// task. Entries are owned by their sheet and go away with it.
type TimesheetEntry struct {
	ID          int32  `gorm:"primaryKey;column:id" json:"id"`
	TimesheetID int32  `gorm:"column:timesheet_id;not null;index" json:"timesheetId"`
	ProjectID   int32  `gorm:"column:project_id;not null" json:"projectId"`
	TaskID      int32  `gorm:"column:task_id" json:"taskId"`
	Description string `gorm:"column:description;type:text" json:"description"`
	WorkType    string `gorm:"column:work_type;type:varchar(50)" json:"workType"`
	Billable    bool   `gorm:"column:billable;not null;default:false" json:"billable"`

	Hours    float64    `gorm:"column:hours;type:decimal(10,2)" json:"hours"`
	FromTime *time.Time `gorm:"column:from_time;type:timestamp;null" json:"fromTime"`
	ToTime   *time.Time `gorm:"column:to_time;type:timestamp;null" json:"toTime"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// WorkedHours prefers the from/to span when both ends are present, else the
// explicit hours value.
func (e *TimesheetEntry) WorkedHours() float64 {
	if e.FromTime != nil && e.ToTime != nil {
		return e.ToTime.Sub(*e.FromTime).Hours()
	}
	return e.Hours
}
