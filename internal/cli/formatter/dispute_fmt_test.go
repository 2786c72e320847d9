package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

func TestFormatDisputeRendersThreadAndResolution(t *testing.T) {
	d := &domain.Dispute{
		ID:     "d-1",
		Status: domain.DisputeResolved,
		Reason: "QUALITY",
		Description: "Original report." + viewmodel.ThreadDelimiter +
			"[Update by Wei Jian Tan on 12 Mar 2026]: Revised files uploaded.",
		RaisedBy:        &domain.Party{Name: "Aina Binti Rahman"},
		ContestedAmount: domain.AmountFromRM(400),
		ResolutionNotes: []domain.ResolutionNote{
			{Note: "Partial refund of RM 200.00" + domain.AdminNoteSeparator + "Both parties agreed.", AdminName: "Admin"},
		},
	}

	out := stripAnsi(FormatDispute(d, nil))
	assert.Contains(t, out, "RESOLVED")
	assert.Contains(t, out, "raised by Aina Binti Rahman")
	assert.Contains(t, out, "Original report.")
	assert.Contains(t, out, "Update 1 — Wei Jian Tan on 12 Mar 2026")
	assert.Contains(t, out, "Revised files uploaded.")
	assert.Contains(t, out, "Partial refund of RM 200.00")
	assert.Contains(t, out, "Both parties agreed.")
}

func TestFormatDisputeListEmpty(t *testing.T) {
	assert.Contains(t, stripAnsi(FormatDisputeList(nil)), "No disputes.")
}
