package domain

import (
	"strings"
	"time"
)

// AdminNoteSeparator splits a resolution note into the structured
// resolution result and the admin's free-text comment.
const AdminNoteSeparator = "\n--- Admin Note ---\n"

// ResolutionNote is one administrator note attached during dispute
// resolution.
type ResolutionNote struct {
	Note      string    `json:"note"`
	AdminName string    `json:"adminName"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Split separates the structured resolution result from the free-text
// admin comment. Notes without the separator are all result.
func (n ResolutionNote) Split() (result, comment string) {
	before, after, found := strings.Cut(n.Note, AdminNoteSeparator)
	if !found {
		return n.Note, ""
	}
	return before, after
}

// Dispute is a frozen-state escalation against a project or one of its
// milestones. The Description field carries the whole update thread as
// delimited text; see viewmodel.ParseDisputeThread.
type Dispute struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"projectId"`
	MilestoneID string        `json:"milestoneId,omitempty"`
	RaisedBy    *Party        `json:"raisedBy,omitempty"`
	Status      DisputeStatus `json:"status"`
	Reason      string        `json:"reason"`
	Description string        `json:"description"`

	ContestedAmount     Amount   `json:"contestedAmount,omitempty"`
	SuggestedResolution string   `json:"suggestedResolution,omitempty"`
	Attachments         []string `json:"attachments,omitempty"`

	ResolutionNotes []ResolutionNote `json:"resolutionNotes,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}
