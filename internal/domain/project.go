package domain

import "time"

// Party identifies one side of a project (customer, provider, admin).
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Project is the client-side projection of a marketplace project.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`

	Customer *Party `json:"customer,omitempty"`
	Provider *Party `json:"provider,omitempty"`

	// BidAmount is the accepted proposal's total; zero when no proposal
	// has been accepted yet, in which case the plan-total check is
	// skipped.
	BidAmount          Amount `json:"bidAmount,omitempty"`
	AcceptedProposalID string `json:"acceptedProposalId,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ParticipantName resolves a participant ID to a display name, checking
// customer then provider. Used when rendering legacy dispute threads
// that recorded raw IDs.
func (p *Project) ParticipantName(id string) (string, bool) {
	if p == nil || id == "" {
		return "", false
	}
	if p.Customer != nil && p.Customer.ID == id {
		return p.Customer.Name, true
	}
	if p.Provider != nil && p.Provider.ID == id {
		return p.Provider.Name, true
	}
	return "", false
}
