package viewmodel

import (
	"errors"
	"fmt"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/google/uuid"
)

// tempIDPrefix marks milestones created locally and not yet saved. The
// server assigns real IDs on save.
const tempIDPrefix = "tmp-"

// PlanEditor is the pre-lock milestone editing view-model. It holds a
// draft plan alongside the last-saved server state so approval can be
// gated on the two being identical.
type PlanEditor struct {
	projectID string
	bid       domain.Amount // zero when no proposal accepted yet
	approval  domain.ApprovalState
	saved     []domain.Milestone
	draft     []domain.Milestone
}

// NewPlanEditor builds an editor seeded from the server's plan.
func NewPlanEditor(projectID string, bid domain.Amount, milestones []domain.Milestone, approval domain.ApprovalState) *PlanEditor {
	e := &PlanEditor{
		projectID: projectID,
		bid:       bid,
		approval:  approval,
	}
	e.ApplySaved(milestones, approval)
	return e
}

// ApplySaved resets both the baseline and the draft to fresh server
// state, discarding local edits. Called after every save/re-fetch.
func (e *PlanEditor) ApplySaved(milestones []domain.Milestone, approval domain.ApprovalState) {
	e.approval = approval
	e.saved = cloneMilestones(milestones)
	domain.Renumber(e.saved)
	e.draft = cloneMilestones(e.saved)
}

// Milestones returns the current draft.
func (e *PlanEditor) Milestones() []domain.Milestone {
	return e.draft
}

// Approval returns the project-level approval flags.
func (e *PlanEditor) Approval() domain.ApprovalState {
	return e.approval
}

// Locked reports whether the plan is read-only (both parties
// approved).
func (e *PlanEditor) Locked() bool {
	return e.approval.MilestonesLocked
}

// Add appends a milestone to the draft with a temporary client ID.
func (e *PlanEditor) Add(m domain.Milestone) error {
	if e.Locked() {
		return errLocked
	}
	m.ID = tempIDPrefix + uuid.New().String()
	m.Status = ""
	e.draft = append(e.draft, m)
	domain.Renumber(e.draft)
	return nil
}

// Update replaces the editable fields of the draft milestone at index
// i.
func (e *PlanEditor) Update(i int, m domain.Milestone) error {
	if e.Locked() {
		return errLocked
	}
	if i < 0 || i >= len(e.draft) {
		return fmt.Errorf("milestone index %d out of range", i)
	}
	e.draft[i].Title = m.Title
	e.draft[i].Description = m.Description
	e.draft[i].Amount = m.Amount
	e.draft[i].DueDate = m.DueDate
	domain.Renumber(e.draft)
	return nil
}

// Remove deletes the draft milestone at index i.
func (e *PlanEditor) Remove(i int) error {
	if e.Locked() {
		return errLocked
	}
	if i < 0 || i >= len(e.draft) {
		return fmt.Errorf("milestone index %d out of range", i)
	}
	e.draft = append(e.draft[:i], e.draft[i+1:]...)
	domain.Renumber(e.draft)
	return nil
}

var errLocked = errors.New("milestones are locked and can no longer be edited")

// Validate checks the draft before save. Field problems are reported
// per milestone; a plan total that does not equal the bid amount is
// one aggregate error, and the check is exact, not a tolerance.
func (e *PlanEditor) Validate(now time.Time) error {
	var errs []error
	today := domain.Date{Time: now.UTC().Truncate(24 * time.Hour)}

	if len(e.draft) == 0 {
		errs = append(errs, errors.New("at least one milestone is required"))
	}
	for i, m := range e.draft {
		label := fmt.Sprintf("milestone %d", i+1)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", label))
		}
		if m.Description == "" {
			errs = append(errs, fmt.Errorf("%s: description is required", label))
		}
		if m.DueDate.IsZero() {
			errs = append(errs, fmt.Errorf("%s: due date is required", label))
		} else if m.DueDate.Before(today) {
			errs = append(errs, fmt.Errorf("%s: due date %s is in the past", label, m.DueDate))
		}
	}

	if e.bid > 0 {
		if total := domain.PlanTotal(e.draft); total != e.bid {
			errs = append(errs, fmt.Errorf("milestone amounts total %s but must equal the accepted bid of %s", total, e.bid))
		}
	}
	return errors.Join(errs...)
}

// Dirty reports whether the draft differs from the last-saved server
// state, comparing editable fields after sequence normalization.
func (e *PlanEditor) Dirty() bool {
	if len(e.draft) != len(e.saved) {
		return true
	}
	for i := range e.draft {
		a, b := e.draft[i], e.saved[i]
		if a.Title != b.Title || a.Description != b.Description ||
			a.Amount != b.Amount || a.DueDate.String() != b.DueDate.String() {
			return true
		}
	}
	return false
}

// CanApprove reports whether the approve action should be enabled for
// the given role: only on a clean, unlocked draft this party has not
// already approved. Approving unsaved edits is never offered.
func (e *PlanEditor) CanApprove(role domain.Role) bool {
	if e.Locked() || e.Dirty() || len(e.saved) == 0 {
		return false
	}
	switch role {
	case domain.RoleCompany, domain.RoleAdmin:
		return !e.approval.CompanyApproved
	case domain.RoleProvider:
		return !e.approval.ProviderApproved
	}
	return false
}

func cloneMilestones(ms []domain.Milestone) []domain.Milestone {
	out := make([]domain.Milestone, len(ms))
	copy(out, ms)
	return out
}
