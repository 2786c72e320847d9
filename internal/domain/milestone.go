package domain

import "time"

// Milestone is a priced, ordered unit of project work. The backend owns
// its lifecycle; this is the client-side projection of what the server
// last reported.
type Milestone struct {
	ID          string          `json:"id,omitempty"`
	ProjectID   string          `json:"projectId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"`
	DueDate     Date            `json:"dueDate"`
	Sequence    int             `json:"order"`
	Status      MilestoneStatus `json:"status,omitempty"`

	// Populated only once work begins.
	StartDeliverables       TextPayload          `json:"startDeliverables,omitzero"`
	SubmitDeliverables      TextPayload          `json:"submitDeliverables,omitzero"`
	SubmissionNote          string               `json:"submissionNote,omitempty"`
	SubmissionAttachmentURL string               `json:"submissionAttachmentUrl,omitempty"`
	SubmittedAt             *time.Time           `json:"submittedAt,omitempty"`
	RevisionNumber          FlexInt              `json:"revisionNumber,omitempty"`
	SubmissionHistory       []SubmissionSnapshot `json:"submissionHistory,omitempty"`
}

// SubmissionSnapshot is one prior submission of a milestone, kept when
// the company requests changes and the provider resubmits.
type SubmissionSnapshot struct {
	Deliverables           TextPayload `json:"deliverables,omitzero"`
	Note                   string      `json:"submissionNote,omitempty"`
	AttachmentURL          string      `json:"submissionAttachmentUrl,omitempty"`
	SubmittedAt            *time.Time  `json:"submittedAt,omitempty"`
	Revision               FlexInt     `json:"revisionNumber,omitempty"`
	RequestedChangesReason string      `json:"requestedChangesReason,omitempty"`
	RequestedChangesAt     *time.Time  `json:"requestedChangesAt,omitempty"`
}

// ApprovalState is the project-scoped milestone approval record. The
// plan locks when both parties have approved; after that only status
// and submission fields may change.
type ApprovalState struct {
	MilestonesLocked     bool       `json:"milestonesLocked"`
	CompanyApproved      bool       `json:"companyApproved"`
	ProviderApproved     bool       `json:"providerApproved"`
	MilestonesApprovedAt *time.Time `json:"milestonesApprovedAt"`
}

// PlanTotal sums milestone amounts.
func PlanTotal(ms []Milestone) Amount {
	var total Amount
	for _, m := range ms {
		total += m.Amount
	}
	return total
}

// Renumber rewrites Sequence values to a contiguous 1..N ordering
// matching slice position.
func Renumber(ms []Milestone) {
	for i := range ms {
		ms[i].Sequence = i + 1
	}
}
