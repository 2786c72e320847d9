package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/teatest"
	"github.com/danialarif/gigdesk/internal/testutil"
)

func TestTimelineTUI_NavigatesAndShowsActions(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	d := teatest.New(t, newTimelineModel(app, testutil.ProjectID))
	d.DrainInit()

	view := stripAnsiCli(d.View())
	assert.Contains(t, view, "Corporate Website Revamp")
	assert.Contains(t, view, "Design mockups")
	assert.Contains(t, view, "Implementation")
	// First milestone is startable; the action shows in the detail box.
	assert.Contains(t, view, "start")

	d.PressDown()
	view = stripAnsiCli(d.View())
	assert.Contains(t, view, "Implementation")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestTimelineTUI_DisputeBanner(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	ms := testutil.LockedMilestones()
	fake.SeedMilestones(ms, testutil.LockedApproval())
	fake.Dispute = &domain.Dispute{
		ID:        "d-1",
		ProjectID: testutil.ProjectID,
		Status:    domain.DisputeOpen,
		Reason:    "QUALITY",
	}

	d := teatest.New(t, newTimelineModel(app, testutil.ProjectID))
	d.DrainInit()

	view := stripAnsiCli(d.View())
	assert.Contains(t, view, "Open dispute")
	assert.Contains(t, view, "no actions available")
}

func TestTimelineTUI_RefreshPicksUpChanges(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	d := teatest.New(t, newTimelineModel(app, testutil.ProjectID))
	d.DrainInit()

	fake.Milestones[0].Status = domain.MilestoneInProgress
	d.PressKey('r')

	view := stripAnsiCli(d.View())
	assert.Contains(t, view, "IN_PROGRESS")
	assert.Contains(t, view, "submit")
}
