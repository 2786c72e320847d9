package formatter

import (
	"strings"

	"github.com/danialarif/gigdesk/internal/domain"
)

// FormatProject renders the project header panel.
func FormatProject(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(Header(p.Title))
	b.WriteString("\n\n")
	b.WriteString(TruncID(p.ID) + "  " + StylePurple.Render(p.Status) + "\n")
	if p.Customer != nil {
		b.WriteString(Dim("customer  ") + StyleFg.Render(p.Customer.Name) + "\n")
	}
	if p.Provider != nil {
		b.WriteString(Dim("provider  ") + StyleFg.Render(p.Provider.Name) + "\n")
	}
	if p.BidAmount > 0 {
		b.WriteString(Dim("accepted bid  ") + Money(p.BidAmount) + "\n")
	}
	if p.Description != "" {
		b.WriteString("\n" + StyleFg.Render(Truncate(p.Description, 400)) + "\n")
	}
	return b.String()
}

// FormatProjectList renders a project table.
func FormatProjectList(projects []domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		provider := ""
		if p.Provider != nil {
			provider = p.Provider.Name
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Truncate(p.Title, 40),
			StylePurple.Render(p.Status),
			provider,
			Money(p.BidAmount),
		})
	}
	return RenderTable([]string{"ID", "Title", "Status", "Provider", "Bid"}, rows)
}

// FormatProposalList renders a project's proposals for admin review.
func FormatProposalList(proposals []domain.Proposal) string {
	if len(proposals) == 0 {
		return Dim("No proposals.") + "\n"
	}
	rows := make([][]string, 0, len(proposals))
	for _, p := range proposals {
		rows = append(rows, []string{
			TruncID(p.ID),
			string(p.Status),
			Money(p.BidAmount),
			Truncate(p.CoverLetter, 50),
		})
	}
	return RenderTable([]string{"ID", "Status", "Bid", "Cover Letter"}, rows)
}
