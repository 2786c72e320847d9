// Package testutil provides test fixtures and an in-memory fake of the
// marketplace backend. The fake implements just enough of the REST
// surface, including the cascade side effects (approval locking the
// plan, disputes freezing milestones, resubmission bumping revisions),
// for client flows to be exercised end to end.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/danialarif/gigdesk/internal/domain"
)

// FakeBackend is an httptest-backed marketplace server with in-memory
// state for one project.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	Project    domain.Project
	Milestones []domain.Milestone
	Approval   domain.ApprovalState
	Dispute    *domain.Dispute
	Reviews    []domain.Review
	Uploaded   map[string][]byte // storage key -> bytes

	nextID           int
	changesRequested map[string]bool // milestone ID -> resubmission pending
}

// NewFakeBackend starts a fake backend seeded with the given project.
// The server is closed when the test completes.
func NewFakeBackend(t TestingT, project domain.Project) *FakeBackend {
	b := &FakeBackend{
		Project:          project,
		Uploaded:         map[string][]byte{},
		changesRequested: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{role}/projects/{id}", b.auth(b.getProject))
	mux.HandleFunc("GET /{role}/milestones/{id}", b.auth(b.getMilestones))
	mux.HandleFunc("PUT /{role}/milestones/{id}", b.auth(b.saveMilestones))
	mux.HandleFunc("POST /{role}/milestones/{id}/approve", b.auth(b.approveMilestones))
	mux.HandleFunc("PUT /provider/projects/milestones/{id}/status", b.auth(b.updateMilestoneStatus))

	mux.HandleFunc("POST /disputes", b.auth(b.createDispute))
	mux.HandleFunc("PATCH /disputes/{id}", b.auth(b.updateDispute))
	mux.HandleFunc("GET /disputes/project/{id}", b.auth(b.getProjectDispute))
	mux.HandleFunc("POST /admin/disputes/{id}/resolve", b.auth(b.resolveDispute))

	mux.HandleFunc("POST /{role}/reviews", b.auth(b.createReview))
	mux.HandleFunc("POST /{role}/reviews/{id}/reply", b.auth(b.replyToReview))
	mux.HandleFunc("GET /{role}/reviews/statistics", b.auth(b.reviewStats))

	mux.HandleFunc("POST /uploads/presigned-url", b.auth(b.presignUpload))
	mux.HandleFunc("GET /uploads/download", b.auth(b.signedDownload))
	// The object store lives under a two-segment prefix so these routes
	// cannot conflict with the single-segment /{role}/... wildcards.
	mux.HandleFunc("PUT /storage/objects/{key...}", b.putObject)
	mux.HandleFunc("GET /storage/objects/{key...}", b.getObject)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// TestingT is the subset of *testing.T the fake needs.
type TestingT interface {
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// URL returns the backend base URL.
func (b *FakeBackend) URL() string { return b.Server.URL }

// SeedMilestones installs a saved milestone plan directly.
func (b *FakeBackend) SeedMilestones(ms []domain.Milestone, approval domain.ApprovalState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Milestones = ms
	b.Approval = approval
}

// RequestChanges simulates the company asking for changes on a
// submitted milestone: back to IN_PROGRESS with the submission
// snapshotted into history.
func (b *FakeBackend) RequestChanges(milestoneID, reason string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Milestones {
		m := &b.Milestones[i]
		if m.ID != milestoneID {
			continue
		}
		if m.Status != domain.MilestoneSubmitted {
			return fmt.Errorf("milestone %s is not submitted", milestoneID)
		}
		now := time.Now()
		m.SubmissionHistory = append(m.SubmissionHistory, domain.SubmissionSnapshot{
			Deliverables:           m.SubmitDeliverables,
			Note:                   m.SubmissionNote,
			AttachmentURL:          m.SubmissionAttachmentURL,
			SubmittedAt:            m.SubmittedAt,
			Revision:               m.RevisionNumber,
			RequestedChangesReason: reason,
			RequestedChangesAt:     &now,
		})
		m.Status = domain.MilestoneInProgress
		b.changesRequested[milestoneID] = true
		return nil
	}
	return fmt.Errorf("milestone %s not found", milestoneID)
}

// ApproveSubmission simulates the company approving submitted work.
func (b *FakeBackend) ApproveSubmission(milestoneID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Milestones {
		if b.Milestones[i].ID == milestoneID {
			b.Milestones[i].Status = domain.MilestoneApproved
			return nil
		}
	}
	return fmt.Errorf("milestone %s not found", milestoneID)
}

// ── handlers ────────────────────────────────────────────────────────────────

func (b *FakeBackend) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "missing bearer token"})
			return
		}
		next(w, r)
	}
}

func (b *FakeBackend) getProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.PathValue("id") != b.Project.ID {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "project not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.Project)
}

func (b *FakeBackend) plan() map[string]any {
	return map[string]any{
		"milestones": b.Milestones,
		"approval":   b.Approval,
	}
}

func (b *FakeBackend) getMilestones(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.plan())
}

func (b *FakeBackend) saveMilestones(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Approval.MilestonesLocked {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "milestones are locked"})
		return
	}

	var body struct {
		Milestones []domain.Milestone `json:"milestones"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	for i := range body.Milestones {
		if body.Milestones[i].ID == "" {
			b.nextID++
			body.Milestones[i].ID = fmt.Sprintf("m-%d", b.nextID)
		}
		body.Milestones[i].Status = domain.MilestoneDraft
		body.Milestones[i].Sequence = i + 1
	}
	b.Milestones = body.Milestones
	// Editing resets both approvals.
	b.Approval = domain.ApprovalState{}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.plan()})
}

func (b *FakeBackend) approveMilestones(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch domain.Role(r.PathValue("role")) {
	case domain.RoleProvider:
		b.Approval.ProviderApproved = true
	default: // company or admin acting for the company
		b.Approval.CompanyApproved = true
	}
	if b.Approval.CompanyApproved && b.Approval.ProviderApproved && !b.Approval.MilestonesLocked {
		now := time.Now()
		b.Approval.MilestonesLocked = true
		b.Approval.MilestonesApprovedAt = &now
		for i := range b.Milestones {
			if b.Milestones[i].Status == domain.MilestoneDraft || b.Milestones[i].Status == domain.MilestonePending {
				b.Milestones[i].Status = domain.MilestoneLocked
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.Approval})
}

func (b *FakeBackend) updateMilestoneStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var body struct {
		Status                  domain.MilestoneStatus `json:"status"`
		Deliverables            domain.TextPayload     `json:"deliverables"`
		SubmissionNote          string                 `json:"submissionNote"`
		SubmissionAttachmentURL string                 `json:"submissionAttachmentUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}

	id := r.PathValue("id")
	var m *domain.Milestone
	for i := range b.Milestones {
		if b.Milestones[i].ID == id {
			m = &b.Milestones[i]
			break
		}
	}
	if m == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "milestone not found"})
		return
	}
	if b.Dispute != nil && !b.Dispute.Status.Final() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "project is frozen by an open dispute"})
		return
	}

	switch body.Status {
	case domain.MilestoneInProgress:
		if !b.Approval.MilestonesLocked {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "milestone plan is not locked yet"})
			return
		}
		if m.Status != domain.MilestoneLocked {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "milestone is not ready to start"})
			return
		}
		if m.Sequence > 1 && !b.previousApproved(m.Sequence) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "previous milestone must be approved first"})
			return
		}
		m.Status = domain.MilestoneInProgress
		m.StartDeliverables = body.Deliverables

	case domain.MilestoneSubmitted:
		if m.Status != domain.MilestoneInProgress {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "milestone is not in progress"})
			return
		}
		now := time.Now()
		m.Status = domain.MilestoneSubmitted
		m.SubmitDeliverables = body.Deliverables
		m.SubmissionNote = body.SubmissionNote
		m.SubmissionAttachmentURL = body.SubmissionAttachmentURL
		m.SubmittedAt = &now
		if b.changesRequested[id] {
			m.RevisionNumber++
			delete(b.changesRequested, id)
		} else if m.RevisionNumber == 0 {
			m.RevisionNumber = 1
		}

	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": fmt.Sprintf("transition to %s not allowed", body.Status)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": m})
}

func (b *FakeBackend) previousApproved(seq int) bool {
	for _, m := range b.Milestones {
		if m.Sequence == seq-1 {
			return m.Status == domain.MilestoneApproved || m.Status == domain.MilestonePaid
		}
	}
	return false
}

func (b *FakeBackend) createDispute(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		ProjectID           string        `json:"projectId"`
		MilestoneID         string        `json:"milestoneId"`
		Reason              string        `json:"reason"`
		Description         string        `json:"description"`
		ContestedAmount     domain.Amount `json:"contestedAmount"`
		SuggestedResolution string        `json:"suggestedResolution"`
		Attachments         []string      `json:"attachments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" || req.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "reason and description are required"})
		return
	}
	if b.Dispute != nil && !b.Dispute.Status.Final() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "a dispute already exists for this project"})
		return
	}

	b.nextID++
	b.Dispute = &domain.Dispute{
		ID:                  fmt.Sprintf("d-%d", b.nextID),
		ProjectID:           req.ProjectID,
		MilestoneID:         req.MilestoneID,
		Status:              domain.DisputeOpen,
		Reason:              req.Reason,
		Description:         req.Description,
		ContestedAmount:     req.ContestedAmount,
		SuggestedResolution: req.SuggestedResolution,
		Attachments:         req.Attachments,
		RaisedBy:            b.Project.Provider,
		CreatedAt:           time.Now(),
	}
	// Opening a dispute freezes the named milestone.
	for i := range b.Milestones {
		if b.Milestones[i].ID == req.MilestoneID {
			b.Milestones[i].Status = domain.MilestoneDisputed
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.Dispute})
}

func (b *FakeBackend) updateDispute(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Dispute == nil || b.Dispute.ID != r.PathValue("id") {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "dispute not found"})
		return
	}
	if b.Dispute.Status.Final() {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "dispute is closed"})
		return
	}
	var req struct {
		Description string   `json:"description"`
		Attachments []string `json:"attachments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	b.Dispute.Description = req.Description
	b.Dispute.Attachments = req.Attachments
	b.Dispute.UpdatedAt = time.Now()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.Dispute})
}

func (b *FakeBackend) getProjectDispute(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Dispute == nil || b.Dispute.ProjectID != r.PathValue("id") {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "no dispute for project"})
		return
	}
	writeJSON(w, http.StatusOK, b.Dispute)
}

func (b *FakeBackend) resolveDispute(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Dispute == nil || b.Dispute.ID != r.PathValue("id") {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "dispute not found"})
		return
	}
	var req struct {
		Status domain.DisputeStatus `json:"status"`
		Note   string               `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	b.Dispute.Status = req.Status
	b.Dispute.ResolutionNotes = append(b.Dispute.ResolutionNotes, domain.ResolutionNote{
		Note:      req.Note,
		AdminName: "Admin",
		CreatedAt: time.Now(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.Dispute})
}

func (b *FakeBackend) createReview(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req domain.Review
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	for _, existing := range b.Reviews {
		if existing.ProjectID == req.ProjectID && existing.RecipientID == req.RecipientID {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Review already exists for this project"})
			return
		}
	}
	b.nextID++
	req.ID = fmt.Sprintf("r-%d", b.nextID)
	req.CreatedAt = time.Now()
	b.Reviews = append(b.Reviews, req)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": req})
}

func (b *FakeBackend) replyToReview(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid body"})
		return
	}
	for i := range b.Reviews {
		if b.Reviews[i].ID != r.PathValue("id") {
			continue
		}
		if b.Reviews[i].Reply != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "a reply already exists"})
			return
		}
		b.nextID++
		b.Reviews[i].Reply = &domain.ReviewReply{
			ID:        fmt.Sprintf("rr-%d", b.nextID),
			Content:   req.Content,
			CreatedAt: time.Now(),
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.Reviews[i]})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "review not found"})
}

func (b *FakeBackend) reviewStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := domain.ReviewStats{TotalReviews: len(b.Reviews)}
	var sum float64
	for _, rv := range b.Reviews {
		sum += rv.Rating
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = sum / float64(stats.TotalReviews)
	}
	writeJSON(w, http.StatusOK, stats)
}

func (b *FakeBackend) presignUpload(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var req struct {
		FileName   string            `json:"fileName"`
		Prefix     string            `json:"prefix"`
		Visibility domain.Visibility `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "fileName is required"})
		return
	}
	key := strings.TrimPrefix(req.Prefix+"/"+req.FileName, "/")
	resp := map[string]any{
		"uploadUrl": b.Server.URL + "/storage/objects/" + key,
		"key":       key,
	}
	if req.Visibility == domain.VisibilityPublic {
		resp["accessUrl"] = b.Server.URL + "/storage/objects/" + key
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": resp})
}

func (b *FakeBackend) signedDownload(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := r.URL.Query().Get("key")
	if _, ok := b.Uploaded[key]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "object not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"downloadUrl": b.Server.URL + "/storage/objects/" + key,
		"expiresIn":   900,
	})
}

func (b *FakeBackend) putObject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, _ := io.ReadAll(r.Body)
	b.Uploaded[r.PathValue("key")] = data
	w.WriteHeader(http.StatusOK)
}

func (b *FakeBackend) getObject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.Uploaded[r.PathValue("key")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
