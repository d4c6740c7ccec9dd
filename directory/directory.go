// Package directory defines the external collaborator contracts the review
// engine consumes: project ownership, the user catalog and holiday/leave
// calendars. The engine only sees these interfaces so tests can inject
// deterministic fakes and retry policy can live at the boundary.
package directory

import "time"

type ProjectOwner struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type ProjectMember struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Project struct {
	ID      int32           `json:"id"`
	Owner   ProjectOwner    `json:"owner"`
	Members []ProjectMember `json:"members"`
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Holiday struct {
	Date                    time.Time `json:"date"`
	SubmitTimesheetRequired bool      `json:"submitTimesheetRequired"`
	Name                    string    `json:"name"`
	Description             string    `json:"description"`
}

// ProjectDirectory resolves project ownership. Used to turn a timesheet's
// referenced projects into the set of managers allowed to review it.
type ProjectDirectory interface {
	ProjectsOwnedBy(managerID int32) ([]int32, error)
	AllProjects() ([]Project, error)
}

// UserDirectory serves the user catalog, keyed by user id. Display and
// notification only, never control flow.
type UserDirectory interface {
	AllUsers() (map[int32]User, error)
}

// HolidayDirectory serves holiday/leave calendars for one user and month.
type HolidayDirectory interface {
	HolidaysFor(userID int32, month, year int) ([]Holiday, error)
}
