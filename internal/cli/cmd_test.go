package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/config"
	"github.com/danialarif/gigdesk/internal/db"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/session"
	"github.com/danialarif/gigdesk/internal/testutil"
	"github.com/danialarif/gigdesk/internal/upload"
)

var ansiPatternCli = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripAnsiCli(s string) string {
	return ansiPatternCli.ReplaceAllString(s, "")
}

// testApp wires a full App over the fake backend and an in-memory
// session database, logged in as the given role.
func testApp(t *testing.T, role domain.Role) (*App, *testutil.FakeBackend) {
	t.Helper()

	fake := testutil.NewFakeBackend(t, testutil.SampleProject())

	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := session.NewStore(database)
	accountID := testutil.CustomerID
	if role == domain.RoleProvider {
		accountID = testutil.ProviderID
	}
	require.NoError(t, store.Save(context.Background(), &session.Session{
		Token:     "test-token",
		AccountID: accountID,
		Name:      "Test User",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	client := api.New(api.Config{BaseURL: fake.URL()}, store, api.NoopObserver{})

	return &App{
		Config:        config.DefaultConfig(),
		Sessions:      store,
		Client:        client,
		Uploader:      upload.New(client),
		IsInteractive: func() bool { return false },
	}, fake
}

// executeCmd runs a cobra command and captures cobra's own output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestWhoamiCmd(t *testing.T) {
	app, _ := testApp(t, domain.RoleProvider)
	_, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
}

func TestWhoamiCmd_AfterLogout(t *testing.T) {
	app, _ := testApp(t, domain.RoleProvider)
	_, err := executeCmd(t, app, "logout")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "whoami")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestMilestoneListCmd(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.SampleMilestones(), domain.ApprovalState{})

	_, err := executeCmd(t, app, "milestone", "list", testutil.ProjectID)
	require.NoError(t, err)
}

func TestMilestoneAddAndApproveFlow(t *testing.T) {
	app, fake := testApp(t, domain.RoleCompany)

	_, err := executeCmd(t, app, "milestone", "add", testutil.ProjectID,
		"--title", "Design mockups", "--desc", "Homepage designs",
		"--amount", "400", "--due", time.Now().AddDate(0, 1, 0).Format("2006-01-02"))
	require.NoError(t, err)

	_, err = executeCmd(t, app, "milestone", "add", testutil.ProjectID,
		"--title", "Implementation", "--desc", "Responsive build",
		"--amount", "600", "--due", time.Now().AddDate(0, 2, 0).Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, fake.Milestones, 2)

	// A plan not summing to the bid is refused before any request.
	_, err = executeCmd(t, app, "milestone", "add", testutil.ProjectID,
		"--title", "Extra", "--desc", "Over budget",
		"--amount", "100", "--due", time.Now().AddDate(0, 1, 0).Format("2006-01-02"))
	assert.Error(t, err)
	assert.Len(t, fake.Milestones, 2)

	_, err = executeCmd(t, app, "milestone", "approve", testutil.ProjectID)
	require.NoError(t, err)
	assert.False(t, fake.Approval.MilestonesLocked)

	_, err = executeCmd(t, app, "--role", "provider", "milestone", "approve", testutil.ProjectID)
	require.NoError(t, err)
	assert.True(t, fake.Approval.MilestonesLocked)
}

func TestMilestoneStartCmd_RequiresProviderRole(t *testing.T) {
	app, fake := testApp(t, domain.RoleCompany)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	_, err := executeCmd(t, app, "milestone", "start", testutil.ProjectID, "1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires")
}

func TestMilestoneStartAndSubmitCmds(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	_, err := executeCmd(t, app, "milestone", "start", testutil.ProjectID, "1", "--plan", "Wireframes first")
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneInProgress, fake.Milestones[0].Status)

	_, err = executeCmd(t, app, "milestone", "submit", testutil.ProjectID, "1",
		"--deliverables", "All mockups", "--note", "See archive")
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneSubmitted, fake.Milestones[0].Status)
}

func TestDisputeOpenCmd_RequiresDescription(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	_, err := executeCmd(t, app, "dispute", "open", testutil.ProjectID, "--reason", "QUALITY")
	assert.Error(t, err)
	assert.Nil(t, fake.Dispute)
}

func TestDisputeOpenAndShowCmds(t *testing.T) {
	app, fake := testApp(t, domain.RoleProvider)
	fake.SeedMilestones(testutil.LockedMilestones(), testutil.LockedApproval())

	_, err := executeCmd(t, app, "dispute", "open", testutil.ProjectID,
		"--milestone", "1", "--reason", "QUALITY", "--description", "Scope mismatch")
	require.NoError(t, err)
	require.NotNil(t, fake.Dispute)
	assert.Equal(t, domain.MilestoneDisputed, fake.Milestones[0].Status)

	_, err = executeCmd(t, app, "dispute", "show", testutil.ProjectID)
	require.NoError(t, err)
}

func TestDisputeResolveCmd_AdminOnly(t *testing.T) {
	app, _ := testApp(t, domain.RoleProvider)
	_, err := executeCmd(t, app, "dispute", "resolve", "d-1", "--result", "refund")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires")
}

func TestReviewCreateCmd(t *testing.T) {
	app, fake := testApp(t, domain.RoleCompany)

	_, err := executeCmd(t, app, "review", "create", testutil.ProjectID,
		"--content", "Great work",
		"--communication", "5", "--quality", "4", "--timeliness", "5", "--professionalism", "4")
	require.NoError(t, err)
	require.Len(t, fake.Reviews, 1)
	assert.Equal(t, 4.5, fake.Reviews[0].Rating)
}

func TestReviewStatsCmd(t *testing.T) {
	app, _ := testApp(t, domain.RoleProvider)
	_, err := executeCmd(t, app, "review", "stats")
	require.NoError(t, err)
}
