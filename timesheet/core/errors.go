package core

import (
	"errors"
	"fmt"
)

// ErrNotApprover signals an authorization failure: the acting manager owns
// none of the projects the timesheet's entries reference.
var ErrNotApprover = errors.New("manager is not an approver for this timesheet")

// ValidationError rejects bad input before anything is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StateError rejects an operation the current entity state does not allow,
// like reviewing a sheet that was never submitted.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func stateErrorf(format string, args ...any) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unresolvable timesheet or week id.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func notFoundErrorf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
