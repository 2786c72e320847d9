package viewmodel

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/upload"
)

var (
	// ErrDisputeFieldsMissing rejects a dispute with a blank reason or
	// description before any request is made.
	ErrDisputeFieldsMissing = errors.New("reason and description are required")

	// ErrDisputeUpdateEmpty rejects an update carrying neither notes
	// nor attachments.
	ErrDisputeUpdateEmpty = errors.New("an update needs notes or at least one attachment")

	// ErrDisputeFinal rejects updates to a resolved or closed dispute.
	ErrDisputeFinal = errors.New("dispute is closed and no longer accepts updates")
)

// DisputeBackend is the slice of the API client the dispute desk uses.
type DisputeBackend interface {
	CreateDispute(ctx context.Context, req api.CreateDisputeRequest) (*domain.Dispute, error)
	UpdateDispute(ctx context.Context, disputeID string, req api.UpdateDisputeRequest) (*domain.Dispute, error)
}

// DisputeDesk validates and issues dispute mutations. Attachments are
// uploaded privately under the dispute prefix before the mutation is
// sent; only their keys travel in the request body.
type DisputeDesk struct {
	backend  DisputeBackend
	uploader *upload.Uploader
}

// NewDisputeDesk creates a DisputeDesk.
func NewDisputeDesk(backend DisputeBackend, uploader *upload.Uploader) *DisputeDesk {
	return &DisputeDesk{backend: backend, uploader: uploader}
}

// CreateInput is the local form for opening a dispute.
type CreateInput struct {
	ProjectID           string
	MilestoneID         string
	Reason              string
	Description         string
	ContestedAmount     domain.Amount
	SuggestedResolution string
	Attachments         []upload.File
}

// Create opens a dispute. The server freezes the related milestone;
// the caller must refresh project, milestone, and dispute state after
// this returns.
func (dd *DisputeDesk) Create(ctx context.Context, in CreateInput) (*domain.Dispute, error) {
	if strings.TrimSpace(in.Reason) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, ErrDisputeFieldsMissing
	}

	keys, err := dd.uploadAll(ctx, in.ProjectID, in.Attachments)
	if err != nil {
		return nil, err
	}

	return dd.backend.CreateDispute(ctx, api.CreateDisputeRequest{
		ProjectID:           in.ProjectID,
		MilestoneID:         in.MilestoneID,
		Reason:              in.Reason,
		Description:         in.Description,
		ContestedAmount:     in.ContestedAmount,
		SuggestedResolution: in.SuggestedResolution,
		Attachments:         keys,
	})
}

// AddUpdate appends a thread block to an open dispute. Rejected
// locally when the dispute is final or the update is empty.
func (dd *DisputeDesk) AddUpdate(ctx context.Context, d *domain.Dispute, author string, notes string, attachments []upload.File) (*domain.Dispute, error) {
	if d.Status.Final() {
		return nil, ErrDisputeFinal
	}
	notes = strings.TrimSpace(notes)
	if notes == "" && len(attachments) == 0 {
		return nil, ErrDisputeUpdateEmpty
	}

	keys, err := dd.uploadAll(ctx, d.ProjectID, attachments)
	if err != nil {
		return nil, err
	}

	body := notes
	if body == "" {
		body = "(attachments added)"
	}
	return dd.backend.UpdateDispute(ctx, d.ID, api.UpdateDisputeRequest{
		Description: AppendUpdate(d.Description, author, time.Now(), body),
		Attachments: append(append([]string{}, d.Attachments...), keys...),
	})
}

func (dd *DisputeDesk) uploadAll(ctx context.Context, projectID string, files []upload.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	results := dd.uploader.UploadAll(ctx, files, upload.Options{
		Prefix:     "disputes/" + projectID,
		Visibility: domain.VisibilityPrivate,
		Category:   domain.CategoryDocument,
	})
	keys := make([]string, 0, len(results))
	for _, r := range results {
		if !r.Success() {
			return nil, r.Err
		}
		keys = append(keys, r.Key)
	}
	return keys, nil
}
