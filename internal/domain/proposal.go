package domain

import "time"

// ProposalMilestone is one line of the milestone breakdown embedded in
// a proposal. Accepting the proposal seeds the project's plan from
// these.
type ProposalMilestone struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
	DueDate     Date   `json:"dueDate,omitzero"`
}

// Proposal is a provider's bid against an open project. Read-only once
// the project stops accepting proposals.
type Proposal struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	Provider    *Party         `json:"provider,omitempty"`
	BidAmount   Amount         `json:"bidAmount"`
	DeliveryDays int           `json:"deliveryTime,omitempty"`
	CoverLetter string         `json:"coverLetter,omitempty"`
	Status      ProposalStatus `json:"status"`

	// Storage references, not necessarily fetchable URLs; run through
	// ResolveAttachmentURL before presenting.
	Attachments []string `json:"attachmentUrls,omitempty"`

	Milestones []ProposalMilestone `json:"milestones,omitempty"`
	CreatedAt  time.Time           `json:"createdAt,omitzero"`
}
