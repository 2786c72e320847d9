package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danialarif/gigdesk/internal/domain"
)

// MilestonePlan is the milestone list plus the project-scoped approval
// flags, always returned together by the milestone endpoints.
type MilestonePlan struct {
	Milestones []domain.Milestone   `json:"milestones"`
	Approval   domain.ApprovalState `json:"approval"`
}

// GetMilestones fetches a project's milestone plan.
func (c *Client) GetMilestones(ctx context.Context, role domain.Role, projectID string) (*MilestonePlan, error) {
	var plan MilestonePlan
	if err := c.get(ctx, fmt.Sprintf("/%s/milestones/%s", role, projectID), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveMilestones replaces a project's milestone plan. Rejected by the
// server once the plan is locked.
func (c *Client) SaveMilestones(ctx context.Context, role domain.Role, projectID string, ms []domain.Milestone) (*MilestonePlan, error) {
	body := struct {
		Milestones []domain.Milestone `json:"milestones"`
	}{ms}
	var plan MilestonePlan
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/milestones/%s", role, projectID), body, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ApproveMilestones sets the calling party's approval flag and returns
// the updated flags. When both parties have approved the server reports
// milestonesLocked true.
func (c *Client) ApproveMilestones(ctx context.Context, role domain.Role, projectID string) (*domain.ApprovalState, error) {
	var state domain.ApprovalState
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/milestones/%s/approve", role, projectID), struct{}{}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// StatusUpdate is the body of a milestone status transition.
type StatusUpdate struct {
	Status                  domain.MilestoneStatus `json:"status"`
	Deliverables            domain.TextPayload     `json:"deliverables,omitzero"`
	SubmissionNote          string                 `json:"submissionNote,omitempty"`
	SubmissionAttachmentURL string                 `json:"submissionAttachmentUrl,omitempty"`
}

// UpdateMilestoneStatus requests a status transition for one milestone.
// The server validates ordering and lock state; out-of-order starts
// come back as an *APIError with the server's message.
func (c *Client) UpdateMilestoneStatus(ctx context.Context, milestoneID string, update StatusUpdate) (*domain.Milestone, error) {
	var m domain.Milestone
	if err := c.do(ctx, http.MethodPut, "/provider/projects/milestones/"+milestoneID+"/status", update, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
