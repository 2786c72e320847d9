package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/teatest"
	"github.com/danialarif/gigdesk/internal/testutil"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

func TestDisputeTUI_ShowsThreadAndResolution(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())
	fake.Dispute = &domain.Dispute{
		ID:        "d-1",
		ProjectID: testutil.ProjectID,
		Status:    domain.DisputeResolved,
		Reason:    "QUALITY",
		RaisedBy:  &domain.Party{ID: testutil.CustomerID, Name: "Aina Binti Rahman"},
		Description: "The delivered mockups ignore the brand guide." +
			viewmodel.ThreadDelimiter +
			"[Update by Wei Jian Tan on 10 Mar 2026]: Revised palette attached.",
		ResolutionNotes: []domain.ResolutionNote{{
			Note:      "Partial refund of RM 200" + domain.AdminNoteSeparator + "Both parties agreed.",
			AdminName: "Admin Lee",
		}},
	}

	d := teatest.New(t, newDisputeModel(app, testutil.ProjectID))
	d.DrainInit()

	view := stripAnsiCli(d.View())
	assert.Contains(t, view, "Dispute — Corporate Website Revamp")
	assert.Contains(t, view, "Original report — Aina Binti Rahman")
	assert.Contains(t, view, "brand guide")
	assert.Contains(t, view, "Update 1 — Wei Jian Tan")
	assert.Contains(t, view, "Resolution — Admin Lee")
	assert.Contains(t, view, "Partial refund of RM 200")

	d.PressDown()
	view = stripAnsiCli(d.View())
	assert.Contains(t, view, "Revised palette attached.")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestDisputeTUI_NoDispute(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	d := teatest.New(t, newDisputeModel(app, testutil.ProjectID))
	d.DrainInit()

	assert.Contains(t, stripAnsiCli(d.View()), "No dispute for this project.")
}
