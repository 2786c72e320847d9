package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMilestones_DecodesDriftedPayloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/provider/milestones/p-1", r.URL.Path)
		// Old records: string deliverables, string revision numbers.
		w.Write([]byte(`{
			"milestones": [
				{"id":"m-1","title":"Design","description":"Mockups","amount":400,"dueDate":"2026-10-01","order":1,"status":"APPROVED",
				 "submitDeliverables":"all screens delivered","revisionNumber":"2"},
				{"id":"m-2","title":"Build","description":"Implementation","amount":600,"dueDate":"2026-11-01T00:00:00Z","order":2,"status":"IN_PROGRESS",
				 "startDeliverables":{"description":"component plan"}}
			],
			"approval": {"milestonesLocked":true,"companyApproved":true,"providerApproved":true}
		}`))
	}))
	defer srv.Close()

	plan, err := testClient(srv.URL).GetMilestones(context.Background(), domain.RoleProvider, "p-1")
	require.NoError(t, err)
	require.Len(t, plan.Milestones, 2)

	first := plan.Milestones[0]
	assert.Equal(t, "all screens delivered", first.SubmitDeliverables.Description)
	assert.Equal(t, domain.FlexInt(2), first.RevisionNumber)
	assert.Equal(t, domain.AmountFromRM(400), first.Amount)
	assert.Equal(t, "2026-10-01", first.DueDate.String())

	second := plan.Milestones[1]
	assert.Equal(t, "component plan", second.StartDeliverables.Description)
	assert.Equal(t, "2026-11-01", second.DueDate.String())

	assert.True(t, plan.Approval.MilestonesLocked)
}

func TestSaveMilestones_SendsPlanBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body struct {
			Milestones []domain.Milestone `json:"milestones"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Milestones, 2)
		assert.Equal(t, 1, body.Milestones[0].Sequence)
		assert.Equal(t, 2, body.Milestones[1].Sequence)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": MilestonePlan{
				Milestones: body.Milestones,
				Approval:   domain.ApprovalState{},
			},
		})
	}))
	defer srv.Close()

	ms := []domain.Milestone{
		{Title: "Design", Description: "d", Amount: domain.AmountFromRM(400), Sequence: 1},
		{Title: "Build", Description: "d", Amount: domain.AmountFromRM(600), Sequence: 2},
	}
	plan, err := testClient(srv.URL).SaveMilestones(context.Background(), domain.RoleCompany, "p-1", ms)
	require.NoError(t, err)
	assert.Len(t, plan.Milestones, 2)
}

func TestApproveMilestones_ReturnsFlags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company/milestones/p-1/approve", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    domain.ApprovalState{CompanyApproved: true},
		})
	}))
	defer srv.Close()

	state, err := testClient(srv.URL).ApproveMilestones(context.Background(), domain.RoleCompany, "p-1")
	require.NoError(t, err)
	assert.True(t, state.CompanyApproved)
	assert.False(t, state.MilestonesLocked)
}
