package testutil

import (
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
)

// Well-known IDs shared across test fixtures.
const (
	ProjectID  = "p-1001"
	CustomerID = "11111111-1111-1111-1111-111111111111"
	ProviderID = "22222222-2222-2222-2222-222222222222"
	ProposalID = "pp-3001"
)

// SampleProject returns a project in active delivery between Aina Binti
// Rahman (customer) and Wei Jian Tan (provider).
func SampleProject() domain.Project {
	return domain.Project{
		ID:     ProjectID,
		Title:  "Corporate Website Revamp",
		Status: "IN_PROGRESS",
		Customer: &domain.Party{
			ID:    CustomerID,
			Name:  "Aina Binti Rahman",
			Email: "aina@nusatech.example",
		},
		Provider: &domain.Party{
			ID:    ProviderID,
			Name:  "Wei Jian Tan",
			Email: "weijian@example.com",
		},
		BidAmount:          domain.AmountFromRM(1000),
		AcceptedProposalID: ProposalID,
	}
}

// SampleMilestones returns a two-milestone plan summing to the sample
// project's bid, due comfortably in the future.
func SampleMilestones() []domain.Milestone {
	due1, _ := domain.ParseDate(time.Now().AddDate(0, 1, 0).Format("2006-01-02"))
	due2, _ := domain.ParseDate(time.Now().AddDate(0, 2, 0).Format("2006-01-02"))
	return []domain.Milestone{
		{
			ID:          "m-1",
			ProjectID:   ProjectID,
			Title:       "Design mockups",
			Description: "Homepage and two inner page designs",
			Amount:      domain.AmountFromRM(400),
			DueDate:     due1,
			Sequence:    1,
			Status:      domain.MilestoneDraft,
		},
		{
			ID:          "m-2",
			ProjectID:   ProjectID,
			Title:       "Implementation",
			Description: "Responsive build and deployment",
			Amount:      domain.AmountFromRM(600),
			DueDate:     due2,
			Sequence:    2,
			Status:      domain.MilestoneDraft,
		},
	}
}

// LockedApproval returns an approval record with both parties approved.
func LockedApproval() domain.ApprovalState {
	now := time.Now()
	return domain.ApprovalState{
		MilestonesLocked:     true,
		CompanyApproved:      true,
		ProviderApproved:     true,
		MilestonesApprovedAt: &now,
	}
}

// LockedMilestones returns the sample plan with statuses advanced to
// LOCKED, ready for the provider to start work.
func LockedMilestones() []domain.Milestone {
	ms := SampleMilestones()
	for i := range ms {
		ms[i].Status = domain.MilestoneLocked
	}
	return ms
}
