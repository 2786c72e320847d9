// Package viewmodel derives UI-visible state from backend payloads.
// Nothing here is authoritative: the server owns every transition, and
// the view-models are re-derived from fresh payloads after each write.
package viewmodel

import "github.com/danialarif/gigdesk/internal/domain"

// Action is a UI action offered against a milestone. Which actions
// appear is pure display gating; the server re-validates everything.
type Action string

const (
	ActionStart          Action = "start"
	ActionSubmit         Action = "submit"
	ActionApprove        Action = "approve"  // company: accept submitted work
	ActionRequestChanges Action = "request_changes"
	ActionPay            Action = "pay"
	ActionDispute        Action = "dispute"
)

// MilestoneGates is the project-level context needed to gate actions.
type MilestoneGates struct {
	Approval domain.ApprovalState
	// DisputeOpen is true while a non-final dispute exists for the
	// project; it freezes every status-changing action.
	DisputeOpen bool
}

// AllowedActions returns the actions to offer for one milestone, given
// the full ordered plan it belongs to.
func AllowedActions(role domain.Role, m domain.Milestone, plan []domain.Milestone, gates MilestoneGates) []Action {
	if gates.DisputeOpen || m.Status == domain.MilestoneDisputed {
		return nil
	}

	var actions []Action
	switch role {
	case domain.RoleProvider:
		switch m.Status {
		case domain.MilestoneLocked:
			if canStart(m, plan, gates.Approval) {
				actions = append(actions, ActionStart)
			}
		case domain.MilestoneInProgress:
			actions = append(actions, ActionSubmit)
		}
		if activeStatus(m.Status) {
			actions = append(actions, ActionDispute)
		}
	case domain.RoleCompany, domain.RoleAdmin:
		switch m.Status {
		case domain.MilestoneSubmitted:
			actions = append(actions, ActionApprove, ActionRequestChanges)
		case domain.MilestoneApproved:
			actions = append(actions, ActionPay)
		}
		if activeStatus(m.Status) {
			actions = append(actions, ActionDispute)
		}
	}
	return actions
}

// canStart applies the ordering gate: the plan must be locked, and the
// previous milestone by sequence must be approved (or paid) unless
// this is the first milestone.
func canStart(m domain.Milestone, plan []domain.Milestone, approval domain.ApprovalState) bool {
	if !approval.MilestonesLocked {
		return false
	}
	if m.Sequence <= 1 {
		return true
	}
	for _, prev := range plan {
		if prev.Sequence == m.Sequence-1 {
			return prev.Status == domain.MilestoneApproved || prev.Status == domain.MilestonePaid
		}
	}
	return false
}

func activeStatus(s domain.MilestoneStatus) bool {
	switch s {
	case domain.MilestoneLocked, domain.MilestoneInProgress, domain.MilestoneSubmitted, domain.MilestoneApproved:
		return true
	}
	return false
}
