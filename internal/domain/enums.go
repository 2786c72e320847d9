package domain

// MilestoneStatus is the server-reported lifecycle state of a milestone.
// The backend owns the transition rules; the client only gates which
// actions it offers for each status.
type MilestoneStatus string

const (
	MilestoneDraft      MilestoneStatus = "DRAFT"
	MilestonePending    MilestoneStatus = "PENDING"
	MilestoneLocked     MilestoneStatus = "LOCKED"
	MilestoneInProgress MilestoneStatus = "IN_PROGRESS"
	MilestoneSubmitted  MilestoneStatus = "SUBMITTED"
	MilestoneApproved   MilestoneStatus = "APPROVED"
	MilestonePaid       MilestoneStatus = "PAID"
	MilestoneDisputed   MilestoneStatus = "DISPUTED"
	MilestoneRejected   MilestoneStatus = "REJECTED"
)

type DisputeStatus string

const (
	DisputeOpen        DisputeStatus = "OPEN"
	DisputeUnderReview DisputeStatus = "UNDER_REVIEW"
	DisputeResolved    DisputeStatus = "RESOLVED"
	DisputeClosed      DisputeStatus = "CLOSED"
	DisputeRejected    DisputeStatus = "REJECTED"
)

// Final reports whether a dispute can no longer accept party updates.
func (s DisputeStatus) Final() bool {
	return s == DisputeResolved || s == DisputeClosed
}

type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "PENDING"
	ProposalAccepted  ProposalStatus = "ACCEPTED"
	ProposalRejected  ProposalStatus = "REJECTED"
	ProposalWithdrawn ProposalStatus = "WITHDRAWN"
)

// Role selects the role-specific endpoint tree the client talks to.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
	RoleCompany  Role = "company"
)

// Visibility controls whether an uploaded object is served by public URL
// or requires a signed-download exchange.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// FileCategory selects the client-side size ceiling for an upload.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryDocument FileCategory = "document"
	CategoryVideo    FileCategory = "video"
)
