package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/upload"
)

// WorkflowBackend is the slice of the API client the workflow uses.
type WorkflowBackend interface {
	GetProject(ctx context.Context, role domain.Role, id string) (*domain.Project, error)
	GetMilestones(ctx context.Context, role domain.Role, projectID string) (*api.MilestonePlan, error)
	SaveMilestones(ctx context.Context, role domain.Role, projectID string, ms []domain.Milestone) (*api.MilestonePlan, error)
	ApproveMilestones(ctx context.Context, role domain.Role, projectID string) (*domain.ApprovalState, error)
	UpdateMilestoneStatus(ctx context.Context, milestoneID string, update api.StatusUpdate) (*domain.Milestone, error)
	GetProjectDispute(ctx context.Context, projectID string) (*domain.Dispute, error)
}

// ProjectState is one consistent snapshot of everything a project
// screen renders. It is re-fetched wholesale after every mutation
// because server-side writes can cascade (approving may lock the
// plan, submitting may move project counters).
type ProjectState struct {
	Project *domain.Project
	Plan    *api.MilestonePlan
	Dispute *domain.Dispute // nil when none exists
}

// Gates derives the action-gating context from the snapshot.
func (s *ProjectState) Gates() MilestoneGates {
	g := MilestoneGates{}
	if s.Plan != nil {
		g.Approval = s.Plan.Approval
	}
	if s.Dispute != nil && !s.Dispute.Status.Final() {
		g.DisputeOpen = true
	}
	return g
}

// Workflow orchestrates the fetch-mutate-refetch cycle for one role.
type Workflow struct {
	backend  WorkflowBackend
	uploader *upload.Uploader
	role     domain.Role
}

// NewWorkflow creates a Workflow.
func NewWorkflow(backend WorkflowBackend, uploader *upload.Uploader, role domain.Role) *Workflow {
	return &Workflow{backend: backend, uploader: uploader, role: role}
}

// Refresh fetches project, milestone plan, and dispute concurrently.
// The three land in disjoint fields, so completion order is
// irrelevant. A missing dispute is a normal empty state, not an error.
func (w *Workflow) Refresh(ctx context.Context, projectID string) (*ProjectState, error) {
	state := &ProjectState{}
	var projErr, planErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		state.Project, projErr = w.backend.GetProject(ctx, w.role, projectID)
	}()
	go func() {
		defer wg.Done()
		state.Plan, planErr = w.backend.GetMilestones(ctx, w.role, projectID)
	}()
	go func() {
		defer wg.Done()
		d, err := w.backend.GetProjectDispute(ctx, projectID)
		if err == nil {
			state.Dispute = d
		}
		// Best-effort: any failure here leaves Dispute nil.
	}()
	wg.Wait()

	if projErr != nil {
		return nil, fmt.Errorf("fetching project: %w", projErr)
	}
	if planErr != nil && !errors.Is(planErr, api.ErrNotFound) {
		return nil, fmt.Errorf("fetching milestones: %w", planErr)
	}
	if state.Plan == nil {
		state.Plan = &api.MilestonePlan{}
	}
	return state, nil
}

// SavePlan validates the editor's draft, saves it, and returns a fresh
// snapshot. Validation failure blocks the call entirely; the update
// endpoint is never reached with a bad plan.
func (w *Workflow) SavePlan(ctx context.Context, editor *PlanEditor, projectID string) (*ProjectState, error) {
	if err := editor.Validate(time.Now()); err != nil {
		return nil, err
	}
	ms := cloneMilestones(editor.Milestones())
	for i := range ms {
		// Temp IDs are local bookkeeping; the server assigns real ones.
		if len(ms[i].ID) > len(tempIDPrefix) && ms[i].ID[:len(tempIDPrefix)] == tempIDPrefix {
			ms[i].ID = ""
		}
	}
	if _, err := w.backend.SaveMilestones(ctx, w.role, projectID, ms); err != nil {
		return nil, err
	}
	return w.Refresh(ctx, projectID)
}

// ApprovePlan sets this party's approval flag and refreshes. Rejected
// locally while unsaved edits exist.
func (w *Workflow) ApprovePlan(ctx context.Context, editor *PlanEditor, projectID string) (*ProjectState, error) {
	if !editor.CanApprove(w.role) {
		return nil, errors.New("save your changes before approving the milestone plan")
	}
	if _, err := w.backend.ApproveMilestones(ctx, w.role, projectID); err != nil {
		return nil, err
	}
	return w.Refresh(ctx, projectID)
}

// StartMilestone begins work on a locked milestone, recording the
// provider's plan text, then refreshes.
func (w *Workflow) StartMilestone(ctx context.Context, state *ProjectState, milestoneID, planText string) (*ProjectState, error) {
	m, ok := findMilestone(state.Plan, milestoneID)
	if !ok {
		return nil, fmt.Errorf("milestone %s not found", milestoneID)
	}
	if !hasAction(AllowedActions(domain.RoleProvider, m, state.Plan.Milestones, state.Gates()), ActionStart) {
		return nil, errors.New("this milestone cannot be started yet")
	}
	_, err := w.backend.UpdateMilestoneStatus(ctx, milestoneID, api.StatusUpdate{
		Status:       domain.MilestoneInProgress,
		Deliverables: domain.TextPayload{Description: planText},
	})
	if err != nil {
		return nil, err
	}
	return w.Refresh(ctx, state.Project.ID)
}

// Submission is the provider's completed-work package for one
// milestone.
type Submission struct {
	Deliverables string
	Note         string
	Attachment   *upload.File // optional single file
}

// SubmitMilestone uploads the optional attachment privately, requests
// the SUBMITTED transition with the resulting key, and refreshes. On a
// resubmission after requested changes the server increments
// revisionNumber and appends to the submission history.
func (w *Workflow) SubmitMilestone(ctx context.Context, state *ProjectState, milestoneID string, sub Submission) (*ProjectState, error) {
	m, ok := findMilestone(state.Plan, milestoneID)
	if !ok {
		return nil, fmt.Errorf("milestone %s not found", milestoneID)
	}
	if !hasAction(AllowedActions(domain.RoleProvider, m, state.Plan.Milestones, state.Gates()), ActionSubmit) {
		return nil, errors.New("this milestone is not in progress")
	}

	update := api.StatusUpdate{
		Status:         domain.MilestoneSubmitted,
		Deliverables:   domain.TextPayload{Description: sub.Deliverables},
		SubmissionNote: sub.Note,
	}
	if sub.Attachment != nil {
		res := w.uploader.Upload(ctx, *sub.Attachment, upload.Options{
			Prefix:     "milestones/" + state.Project.ID,
			Visibility: domain.VisibilityPrivate,
			Category:   domain.CategoryDocument,
		})
		if res.Err != nil {
			return nil, res.Err
		}
		update.SubmissionAttachmentURL = res.Key
	}

	if _, err := w.backend.UpdateMilestoneStatus(ctx, milestoneID, update); err != nil {
		return nil, err
	}
	return w.Refresh(ctx, state.Project.ID)
}

func findMilestone(plan *api.MilestonePlan, id string) (domain.Milestone, bool) {
	if plan == nil {
		return domain.Milestone{}, false
	}
	for _, m := range plan.Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Milestone{}, false
}

func hasAction(actions []Action, want Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}
