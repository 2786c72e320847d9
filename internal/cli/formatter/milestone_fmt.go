package formatter

import (
	"fmt"
	"strings"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

// FormatMilestonePlan renders the plan as a table followed by the
// total and the approval state.
func FormatMilestonePlan(ms []domain.Milestone, approval domain.ApprovalState, bid domain.Amount) string {
	var b strings.Builder
	b.WriteString(Header("Milestone Plan"))
	b.WriteString("\n\n")

	if len(ms) == 0 {
		b.WriteString(Dim("No milestones yet.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.Sequence),
			Truncate(m.Title, 40),
			Money(m.Amount),
			DueDateStyled(m.DueDate),
			MilestoneStatusBadge(m.Status),
		})
	}
	b.WriteString(RenderTable([]string{"#", "Title", "Amount", "Due", "Status"}, rows))

	b.WriteString("\n")
	total := domain.PlanTotal(ms)
	if bid > 0 && total != bid {
		b.WriteString(StyleRed.Render(fmt.Sprintf("Total %s does not match the accepted bid %s", total, bid)))
	} else {
		b.WriteString(Bold("Total: " + total.String()))
	}
	b.WriteString("\n" + formatApproval(approval) + "\n")
	return b.String()
}

func formatApproval(a domain.ApprovalState) string {
	if a.MilestonesLocked {
		locked := StyleGreen.Render("✔ Locked")
		if a.MilestonesApprovedAt != nil {
			locked += Dim(" since " + HumanDate(*a.MilestonesApprovedAt))
		}
		return locked
	}
	mark := func(ok bool, who string) string {
		if ok {
			return StyleGreen.Render("✔ " + who)
		}
		return StyleDim.Render("○ " + who)
	}
	return mark(a.CompanyApproved, "company") + "  " + mark(a.ProviderApproved, "provider") + Dim("  (locks when both approve)")
}

// FormatTimeline renders the milestone lifecycle vertically, one
// milestone per block, with submission history when present.
func FormatTimeline(ms []domain.Milestone) string {
	if len(ms) == 0 {
		return Dim("No milestones yet.") + "\n"
	}
	var b strings.Builder
	for i, m := range ms {
		connector := "├─"
		if i == len(ms)-1 {
			connector = "└─"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s\n",
			StyleDim.Render(connector),
			MilestoneStatusBadge(m.Status),
			Bold(m.Title),
			Dim(m.Amount.String())))

		indent := "│  "
		if i == len(ms)-1 {
			indent = "   "
		}
		b.WriteString(StyleDim.Render(indent) + Dim("due ") + DueDateStyled(m.DueDate) + "\n")

		if m.SubmittedAt != nil {
			b.WriteString(StyleDim.Render(indent) +
				Dim(fmt.Sprintf("submitted %s (revision %d)", HumanTimestamp(*m.SubmittedAt), int(m.RevisionNumber))) + "\n")
		}
		for _, h := range m.SubmissionHistory {
			line := fmt.Sprintf("revision %d", int(h.Revision))
			if h.RequestedChangesReason != "" {
				line += ": changes requested — " + Truncate(h.RequestedChangesReason, 60)
			}
			b.WriteString(StyleDim.Render(indent) + Dim(line) + "\n")
		}
	}
	return b.String()
}

// FormatActions renders the offered actions for a milestone, or a
// dimmed note when none apply.
func FormatActions(actions []viewmodel.Action) string {
	if len(actions) == 0 {
		return Dim("no actions available")
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = StyleBlue.Render(string(a))
	}
	return strings.Join(labels, Dim(" · "))
}
