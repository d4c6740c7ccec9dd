package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tempora.io/tempora/directory"
	"tempora.io/tempora/timesheet/model"
)

// approverOutcome is one approver's effective decision on a timesheet. An
// approver with no review row counts as pending.
type approverOutcome int

const (
	outcomePending approverOutcome = iota
	outcomeApproved
	outcomeRejected
)

// ResolveOverallStatus folds the per-approver outcomes into one timesheet
// status:
//
//	any rejected          -> REJECTED
//	all approved          -> APPROVED
//	all pending           -> PENDING
//	mixed approved/pending -> PENDING
//
// The last row is deliberate: the enum offers PARTIALLY_APPROVED but the
// product has always collapsed the mixed case to PENDING, and changing that
// silently would change what reviewers see. Kept as an explicit branch so a
// future correction is a one-line, reviewed change.
func ResolveOverallStatus(outcomes []approverOutcome) model.TimesheetStatus {
	if len(outcomes) == 0 {
		return model.StatusPending
	}

	approved := 0
	for _, o := range outcomes {
		switch o {
		case outcomeRejected:
			return model.StatusRejected
		case outcomeApproved:
			approved++
		}
	}

	switch approved {
	case len(outcomes):
		return model.StatusApproved
	case 0:
		return model.StatusPending
	default:
		// mixed approved/pending collapses to pending
		return model.StatusPending
	}
}

// ownersByProject fetches the project catalog once and maps each project
// to its owning manager. Batch paths reuse the map across sheets.
func ownersByProject(projects directory.ProjectDirectory) (map[int32]int32, error) {
	all, err := projects.AllProjects()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project owners: %w", err)
	}

	owners := make(map[int32]int32, len(all))
	for _, p := range all {
		owners[p.ID] = p.Owner.ID
	}
	return owners, nil
}

func approversFromOwners(owners map[int32]int32, ts *model.Timesheet) []int32 {
	seen := make(map[int32]bool)
	var approvers []int32
	for _, pid := range ts.ProjectIDs() {
		owner, ok := owners[pid]
		if !ok {
			continue
		}
		if !seen[owner] {
			seen[owner] = true
			approvers = append(approvers, owner)
		}
	}
	return approvers
}

func isApprover(approvers []int32, managerID int32) bool {
	for _, id := range approvers {
		if id == managerID {
			return true
		}
	}
	return false
}

// ApproversFor resolves the managers allowed to review a timesheet: the
// owners of the projects its entries reference.
func ApproversFor(projects directory.ProjectDirectory, ts *model.Timesheet) ([]int32, error) {
	if len(ts.ProjectIDs()) == 0 {
		return nil, nil
	}

	owners, err := ownersByProject(projects)
	if err != nil {
		return nil, err
	}
	return approversFromOwners(owners, ts), nil
}

// upsertReview writes the manager's decision on a timesheet, keyed on the
// (timesheet, manager) pair. A repeated review overwrites the prior row.
func upsertReview(db *gorm.DB, timesheetID, managerID int32, decision model.ReviewDecision, comment string, now time.Time) error {
	var review model.TimesheetReview
	err := db.Where("timesheet_id = ? AND manager_id = ?", timesheetID, managerID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		review = model.TimesheetReview{
			TimesheetID: timesheetID,
			ManagerID:   managerID,
			Decision:    decision,
			Comment:     comment,
			ReviewedAt:  now,
		}
		return db.Create(&review).Error
	}
	if err != nil {
		return err
	}

	review.Decision = decision
	review.Comment = comment
	review.ReviewedAt = now
	return db.Save(&review).Error
}

// recomputeOverallStatus derives the timesheet's status from the full
// current review set and persists it. Pure in the review set: running it
// again without new reviews yields the same status.
func recomputeOverallStatus(db *gorm.DB, ts *model.Timesheet, approvers []int32) (model.TimesheetStatus, error) {
	var reviews []model.TimesheetReview
	if err := db.Where("timesheet_id = ?", ts.ID).Find(&reviews).Error; err != nil {
		return "", fmt.Errorf("failed to fetch reviews: %w", err)
	}

	decisionByManager := make(map[int32]model.ReviewDecision, len(reviews))
	for _, r := range reviews {
		decisionByManager[r.ManagerID] = r.Decision
	}

	outcomes := make([]approverOutcome, 0, len(approvers))
	for _, managerID := range approvers {
		switch decisionByManager[managerID] {
		case model.DecisionApproved:
			outcomes = append(outcomes, outcomeApproved)
		case model.DecisionRejected:
			outcomes = append(outcomes, outcomeRejected)
		default:
			outcomes = append(outcomes, outcomePending)
		}
	}

	overall := ResolveOverallStatus(outcomes)
	if err := db.Model(ts).Update("status", overall).Error; err != nil {
		return "", fmt.Errorf("failed to update timesheet status: %w", err)
	}
	ts.Status = overall
	return overall, nil
}

func validateDecision(decision model.ReviewDecision, comment string) error {
	if decision != model.DecisionApproved && decision != model.DecisionRejected {
		return validationErrorf("invalid review decision: %s", decision)
	}
	if decision == model.DecisionRejected && strings.TrimSpace(comment) == "" {
		return validationErrorf("a comment is required when rejecting a timesheet")
	}
	return nil
}

// ReviewTimesheet records one manager's decision on one timesheet and
// recomputes the sheet's overall status from all approvers' decisions.
// The acting manager must own at least one project the sheet's entries
// reference; otherwise ErrNotApprover.
func ReviewTimesheet(db *gorm.DB, projects directory.ProjectDirectory, managerID, timesheetID int32, decision model.ReviewDecision, comment string) (model.TimesheetStatus, error) {
	if err := validateDecision(decision, comment); err != nil {
		return "", err
	}

	var ts model.Timesheet
	err := db.Preload("Entries").First(&ts, timesheetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", notFoundErrorf("timesheet %d not found", timesheetID)
	}
	if err != nil {
		return "", err
	}

	approvers, err := ApproversFor(projects, &ts)
	if err != nil {
		return "", err
	}
	if !isApprover(approvers, managerID) {
		return "", ErrNotApprover
	}

	return reviewOne(db, managerID, &ts, approvers, decision, comment)
}

// reviewOne writes one manager's decision on an already-authorized
// timesheet and recomputes its status from the given approver set.
func reviewOne(db *gorm.DB, managerID int32, ts *model.Timesheet, approvers []int32, decision model.ReviewDecision, comment string) (model.TimesheetStatus, error) {
	if err := upsertReview(db, ts.ID, managerID, decision, comment, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save review: %w", err)
	}

	return recomputeOverallStatus(db, ts, approvers)
}
