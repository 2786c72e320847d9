package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	return New(Config{BaseURL: url}, StaticToken("test-token"), NoopObserver{})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/provider/projects/p-1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Project{ID: "p-1", Title: "Landing Page"})
	}))
	defer srv.Close()

	p, err := testClient(srv.URL).GetProject(context.Background(), domain.RoleProvider, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Landing Page", p.Title)
}

func TestClient_NoSession_FailsBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, StaticToken(""), NoopObserver{})
	_, err := c.GetProject(context.Background(), domain.RoleProvider, "p-1")

	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, calls, "no request must be issued without a token")
}

func TestClient_NormalizesServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "previous milestone must be approved first",
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).UpdateMilestoneStatus(context.Background(), "m-2", StatusUpdate{
		Status: domain.MilestoneInProgress,
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "previous milestone must be approved first", apiErr.Message)
	assert.True(t, IsValidation(err))
}

func TestClient_SuccessFalseOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "milestones are locked",
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).SaveMilestones(context.Background(), domain.RoleProvider, "p-1", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "milestones are locked", apiErr.Message)
}

func TestClient_UnwrapsDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    domain.Project{ID: "p-1", Title: "Enveloped"},
		})
	}))
	defer srv.Close()

	p, err := testClient(srv.URL).GetProject(context.Background(), domain.RoleAdmin, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Enveloped", p.Title)
}

func TestClient_NotFoundSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "no dispute for project"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetProjectDispute(context.Background(), "p-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, StaticToken("tok"), NoopObserver{})
	_, err := c.GetProject(context.Background(), domain.RoleProvider, "p-1")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Unavailable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"}, StaticToken("tok"), NoopObserver{})
	_, err := c.GetProject(context.Background(), domain.RoleProvider, "p-1")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&APIError{StatusCode: 409, Message: "duplicate"}))
	assert.True(t, IsConflict(&APIError{StatusCode: 400, Message: "Review already exists for this project"}))
	assert.False(t, IsConflict(&APIError{StatusCode: 400, Message: "rating out of range"}))
	assert.False(t, IsConflict(ErrNotFound))
}
