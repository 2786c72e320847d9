package viewmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/testutil"
	"github.com/danialarif/gigdesk/internal/upload"
)

func newBackendClient(t *testing.T) (*testutil.FakeBackend, *api.Client, *upload.Uploader) {
	t.Helper()
	fake := testutil.NewFakeBackend(t, testutil.SampleProject())
	client := api.New(api.Config{BaseURL: fake.URL()}, api.StaticToken("test-token"), api.NoopObserver{})
	return fake, client, upload.New(client)
}

func refreshedEditor(state *ProjectState) *PlanEditor {
	return NewPlanEditor(state.Project.ID, state.Project.BidAmount, state.Plan.Milestones, state.Plan.Approval)
}

func TestWorkflowSaveAndApproveLocksPlan(t *testing.T) {
	_, client, uploader := newBackendClient(t)
	ctx := context.Background()

	company := NewWorkflow(client, uploader, domain.RoleCompany)
	provider := NewWorkflow(client, uploader, domain.RoleProvider)

	state, err := company.Refresh(ctx, testutil.ProjectID)
	require.NoError(t, err)
	require.NotNil(t, state.Project)
	assert.Empty(t, state.Plan.Milestones)
	assert.Nil(t, state.Dispute)

	editor := refreshedEditor(state)
	require.NoError(t, editor.Add(draftMilestone(t, "Design mockups", 400)))
	require.NoError(t, editor.Add(draftMilestone(t, "Implementation", 600)))

	state, err = company.SavePlan(ctx, editor, testutil.ProjectID)
	require.NoError(t, err)
	require.Len(t, state.Plan.Milestones, 2)
	for i, m := range state.Plan.Milestones {
		assert.NotEmpty(t, m.ID)
		assert.NotContains(t, m.ID, "tmp-", "server assigns real IDs on save")
		assert.Equal(t, i+1, m.Sequence)
		assert.Equal(t, domain.MilestoneDraft, m.Status)
	}
	assert.False(t, state.Plan.Approval.MilestonesLocked)

	// Company approves; plan stays editable until both sides agree.
	editor.ApplySaved(state.Plan.Milestones, state.Plan.Approval)
	state, err = company.ApprovePlan(ctx, editor, testutil.ProjectID)
	require.NoError(t, err)
	assert.True(t, state.Plan.Approval.CompanyApproved)
	assert.False(t, state.Plan.Approval.MilestonesLocked)

	// Provider approves; both flags set locks the plan.
	editor.ApplySaved(state.Plan.Milestones, state.Plan.Approval)
	state, err = provider.ApprovePlan(ctx, editor, testutil.ProjectID)
	require.NoError(t, err)
	assert.True(t, state.Plan.Approval.MilestonesLocked)
	require.NotNil(t, state.Plan.Approval.MilestonesApprovedAt)
	for _, m := range state.Plan.Milestones {
		assert.Equal(t, domain.MilestoneLocked, m.Status)
	}

	// Locked plans refuse edits locally and at the server.
	editor.ApplySaved(state.Plan.Milestones, state.Plan.Approval)
	assert.ErrorIs(t, editor.Add(draftMilestone(t, "Extra", 100)), errLocked)
	_, err = client.SaveMilestones(ctx, domain.RoleCompany, testutil.ProjectID, state.Plan.Milestones)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestWorkflowValidationBlocksSave(t *testing.T) {
	fake, client, uploader := newBackendClient(t)
	ctx := context.Background()

	w := NewWorkflow(client, uploader, domain.RoleCompany)
	editor := NewPlanEditor(testutil.ProjectID, domain.AmountFromRM(1000), nil, domain.ApprovalState{})
	require.NoError(t, editor.Add(draftMilestone(t, "Design", 400))) // sum != bid

	_, err := w.SavePlan(ctx, editor, testutil.ProjectID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must equal the accepted bid")
	assert.Empty(t, fake.Milestones, "invalid plan never reaches the server")
}

func TestWorkflowStartSubmitAndResubmit(t *testing.T) {
	fake, client, uploader := newBackendClient(t)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())
	ctx := context.Background()

	w := NewWorkflow(client, uploader, domain.RoleProvider)
	state, err := w.Refresh(ctx, testutil.ProjectID)
	require.NoError(t, err)

	// The second milestone cannot start before the first is approved.
	_, err = w.StartMilestone(ctx, state, "m-2", "starting early")
	require.Error(t, err)

	state, err = w.StartMilestone(ctx, state, "m-1", "Wireframes first, then visual design")
	require.NoError(t, err)
	m := state.Plan.Milestones[0]
	assert.Equal(t, domain.MilestoneInProgress, m.Status)
	assert.Equal(t, "Wireframes first, then visual design", m.StartDeliverables.Description)

	state, err = w.SubmitMilestone(ctx, state, "m-1", Submission{
		Deliverables: "All mockups delivered",
		Note:         "See the attached archive",
		Attachment:   &upload.File{Name: "mockups.zip", MimeType: "application/zip", Data: []byte("zipbytes")},
	})
	require.NoError(t, err)
	m = state.Plan.Milestones[0]
	assert.Equal(t, domain.MilestoneSubmitted, m.Status)
	assert.Equal(t, "See the attached archive", m.SubmissionNote)
	assert.EqualValues(t, 1, m.RevisionNumber)
	require.NotNil(t, m.SubmittedAt)

	// The attachment was uploaded privately under the project prefix
	// and only its key travels on the milestone.
	key := m.SubmissionAttachmentURL
	assert.Contains(t, key, "milestones/"+testutil.ProjectID)
	assert.Equal(t, []byte("zipbytes"), fake.Uploaded[key])

	// Company requests changes; the resubmission bumps the revision
	// and the prior submission lands in history.
	require.NoError(t, fake.RequestChanges("m-1", "logo colours are off"))
	state, err = w.Refresh(ctx, testutil.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneInProgress, state.Plan.Milestones[0].Status)

	state, err = w.SubmitMilestone(ctx, state, "m-1", Submission{Deliverables: "Colours fixed"})
	require.NoError(t, err)
	m = state.Plan.Milestones[0]
	assert.EqualValues(t, 2, m.RevisionNumber)
	require.Len(t, m.SubmissionHistory, 1)
	assert.Equal(t, "logo colours are off", m.SubmissionHistory[0].RequestedChangesReason)

	// Once the first milestone is approved the second becomes startable.
	require.NoError(t, fake.ApproveSubmission("m-1"))
	state, err = w.Refresh(ctx, testutil.ProjectID)
	require.NoError(t, err)
	_, err = w.StartMilestone(ctx, state, "m-2", "Build phase")
	require.NoError(t, err)
}

func TestWorkflowDisputeFreezesMilestones(t *testing.T) {
	fake, client, uploader := newBackendClient(t)
	ms := testutil.LockedMilestones()
	ms[0].Status = domain.MilestoneInProgress
	fake.SeedMilestones(ms, testutil.LockedApproval())
	ctx := context.Background()

	desk := NewDisputeDesk(client, uploader)
	_, err := desk.Create(ctx, CreateInput{
		ProjectID:   testutil.ProjectID,
		MilestoneID: "m-1",
		Reason:      "QUALITY",
		Description: "Work does not match the brief",
	})
	require.NoError(t, err)

	w := NewWorkflow(client, uploader, domain.RoleProvider)
	state, err := w.Refresh(ctx, testutil.ProjectID)
	require.NoError(t, err)
	require.NotNil(t, state.Dispute)
	assert.True(t, state.Gates().DisputeOpen)
	assert.Equal(t, domain.MilestoneDisputed, state.Plan.Milestones[0].Status)

	// Every milestone action disappears while the dispute is open.
	for _, m := range state.Plan.Milestones {
		assert.Empty(t, AllowedActions(domain.RoleProvider, m, state.Plan.Milestones, state.Gates()))
		assert.Empty(t, AllowedActions(domain.RoleCompany, m, state.Plan.Milestones, state.Gates()))
	}
	_, err = w.SubmitMilestone(ctx, state, "m-1", Submission{Deliverables: "done"})
	require.Error(t, err)
}

func TestAllowedActionsByRoleAndStatus(t *testing.T) {
	plan := testutil.LockedMilestones()
	gates := MilestoneGates{Approval: testutil.LockedApproval()}

	assert.Equal(t, []Action{ActionStart, ActionDispute},
		AllowedActions(domain.RoleProvider, plan[0], plan, gates))
	assert.NotContains(t, AllowedActions(domain.RoleProvider, plan[1], plan, gates), ActionStart,
		"second milestone waits for the first to be approved")

	submitted := plan[0]
	submitted.Status = domain.MilestoneSubmitted
	assert.Equal(t, []Action{ActionApprove, ActionRequestChanges, ActionDispute},
		AllowedActions(domain.RoleCompany, submitted, plan, gates))

	approved := plan[0]
	approved.Status = domain.MilestoneApproved
	assert.Equal(t, []Action{ActionPay, ActionDispute},
		AllowedActions(domain.RoleAdmin, approved, plan, gates))

	paid := plan[0]
	paid.Status = domain.MilestonePaid
	assert.Empty(t, AllowedActions(domain.RoleCompany, paid, plan, gates))
}
