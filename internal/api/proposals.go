package api

import (
	"context"
	"net/http"

	"github.com/danialarif/gigdesk/internal/domain"
)

// ListProposals fetches all proposals submitted against a project.
func (c *Client) ListProposals(ctx context.Context, projectID string) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	if err := c.get(ctx, "/admin/projects/"+projectID+"/proposals", &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// GetProposal fetches one proposal with its embedded milestone
// breakdown.
func (c *Client) GetProposal(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := c.get(ctx, "/admin/proposals/"+proposalID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// AcceptProposal accepts a proposal, fixing the project's bid amount
// and seeding its milestone plan from the proposal breakdown.
func (c *Client) AcceptProposal(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := c.do(ctx, http.MethodPost, "/admin/proposals/"+proposalID+"/accept", struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RejectProposal rejects a proposal.
func (c *Client) RejectProposal(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := c.do(ctx, http.MethodPost, "/admin/proposals/"+proposalID+"/reject", struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
