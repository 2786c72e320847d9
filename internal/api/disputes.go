package api

import (
	"context"
	"net/http"

	"github.com/danialarif/gigdesk/internal/domain"
)

// CreateDisputeRequest opens a dispute against a project or one of its
// milestones. Attachments are storage keys, already uploaded.
type CreateDisputeRequest struct {
	ProjectID           string        `json:"projectId"`
	MilestoneID         string        `json:"milestoneId,omitempty"`
	Reason              string        `json:"reason"`
	Description         string        `json:"description"`
	ContestedAmount     domain.Amount `json:"contestedAmount,omitempty"`
	SuggestedResolution string        `json:"suggestedResolution,omitempty"`
	Attachments         []string      `json:"attachments,omitempty"`
}

// CreateDispute opens a dispute. The server freezes the related
// milestone as a side effect; callers must re-fetch project state.
func (c *Client) CreateDispute(ctx context.Context, req CreateDisputeRequest) (*domain.Dispute, error) {
	var d domain.Dispute
	if err := c.do(ctx, http.MethodPost, "/disputes", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDisputeRequest appends material to an open dispute. The
// description carries the full thread text including the new block.
type UpdateDisputeRequest struct {
	Description string   `json:"description"`
	Attachments []string `json:"attachments,omitempty"`
}

// UpdateDispute appends a thread update to a dispute.
func (c *Client) UpdateDispute(ctx context.Context, disputeID string, req UpdateDisputeRequest) (*domain.Dispute, error) {
	var d domain.Dispute
	if err := c.do(ctx, http.MethodPatch, "/disputes/"+disputeID, req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetProjectDispute fetches the dispute for a project. Returns
// ErrNotFound when none exists, which callers treat as a normal empty
// state.
func (c *Client) GetProjectDispute(ctx context.Context, projectID string) (*domain.Dispute, error) {
	var d domain.Dispute
	if err := c.get(ctx, "/disputes/project/"+projectID, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDisputes fetches all disputes for the admin back office.
func (c *Client) ListDisputes(ctx context.Context) ([]domain.Dispute, error) {
	var disputes []domain.Dispute
	if err := c.get(ctx, "/admin/disputes", &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}

// ResolveDisputeRequest closes out a dispute as admin. Note may embed
// the admin-note separator splitting the structured result from the
// free comment.
type ResolveDisputeRequest struct {
	Status domain.DisputeStatus `json:"status"`
	Note   string               `json:"note"`
}

// ResolveDispute sets a dispute's terminal status with a resolution
// note. Admin only.
func (c *Client) ResolveDispute(ctx context.Context, disputeID string, req ResolveDisputeRequest) (*domain.Dispute, error) {
	var d domain.Dispute
	if err := c.do(ctx, http.MethodPost, "/admin/disputes/"+disputeID+"/resolve", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
