package formatter

import (
	"fmt"
	"strings"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

// FormatDispute renders a dispute header, its parsed update thread,
// and any resolution notes.
func FormatDispute(d *domain.Dispute, project *domain.Project) string {
	var b strings.Builder
	b.WriteString(Header("Dispute " + d.ID))
	b.WriteString("\n\n")
	b.WriteString(DisputeStatusBadge(d.Status))
	b.WriteString("  " + StylePurple.Render(d.Reason))
	if d.ContestedAmount > 0 {
		b.WriteString("  " + Dim("contested ") + Money(d.ContestedAmount))
	}
	b.WriteString("\n")
	if d.RaisedBy != nil {
		b.WriteString(Dim("raised by ") + StyleFg.Render(d.RaisedBy.Name))
		if !d.CreatedAt.IsZero() {
			b.WriteString(Dim(" " + HumanTimestamp(d.CreatedAt)))
		}
		b.WriteString("\n")
	}
	if d.SuggestedResolution != "" {
		b.WriteString(Dim("suggested resolution: ") + StyleFg.Render(d.SuggestedResolution) + "\n")
	}

	b.WriteString("\n" + formatThread(viewmodel.ParseDisputeThread(d, project)))

	if len(d.Attachments) > 0 {
		b.WriteString("\n" + Bold("Attachments") + "\n")
		for _, key := range d.Attachments {
			b.WriteString("  " + StyleBlue.Render(key) + "\n")
		}
	}
	if len(d.ResolutionNotes) > 0 {
		b.WriteString("\n" + Header("Resolution") + "\n\n")
		for _, n := range d.ResolutionNotes {
			result, comment := n.Split()
			b.WriteString(Bold(n.AdminName))
			if !n.CreatedAt.IsZero() {
				b.WriteString(Dim(" " + HumanTimestamp(n.CreatedAt)))
			}
			b.WriteString("\n" + StyleFg.Render(result) + "\n")
			if comment != "" {
				b.WriteString(Dim(comment) + "\n")
			}
		}
	}
	return b.String()
}

func formatThread(entries []viewmodel.ThreadEntry) string {
	var b strings.Builder
	for i, e := range entries {
		label := "Original report"
		if i > 0 {
			label = fmt.Sprintf("Update %d", i)
		}
		heading := StylePurple.Render(label)
		if e.Author != "" {
			heading += Dim(" — ") + StyleFg.Render(e.Author)
		}
		if e.Date != "" {
			heading += Dim(" on " + e.Date)
		}
		b.WriteString(heading + "\n")
		b.WriteString(Indent(e.Content, "  ") + "\n")
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Indent prefixes every line of text.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// FormatDisputeList renders admin's dispute queue as a table.
func FormatDisputeList(disputes []domain.Dispute) string {
	if len(disputes) == 0 {
		return Dim("No disputes.") + "\n"
	}
	rows := make([][]string, 0, len(disputes))
	for _, d := range disputes {
		raisedBy := ""
		if d.RaisedBy != nil {
			raisedBy = d.RaisedBy.Name
		}
		rows = append(rows, []string{
			TruncID(d.ID),
			TruncID(d.ProjectID),
			DisputeStatusBadge(d.Status),
			Truncate(d.Reason, 24),
			raisedBy,
			Money(d.ContestedAmount),
		})
	}
	return RenderTable([]string{"ID", "Project", "Status", "Reason", "Raised By", "Contested"}, rows)
}
