package viewmodel

import (
	"context"
	"errors"
	"strings"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/domain"
)

var (
	// ErrReviewIncomplete blocks submission until all four categories
	// are rated and the content is non-empty.
	ErrReviewIncomplete = errors.New("rate all four categories and write your review before submitting")

	// ErrReviewExists is the friendly remap of the backend's
	// "already exists" conflict.
	ErrReviewExists = errors.New("you have already reviewed this project; edit your existing review instead")

	// ErrReplyNotAllowed rejects a reply from anyone but the
	// recipient, or a second reply.
	ErrReplyNotAllowed = errors.New("only the review's recipient may reply, and only once")
)

// ReviewForm collects a review locally. The overall rating is never
// set directly; it is computed from the categories.
type ReviewForm struct {
	ProjectID   string
	RecipientID string
	Ratings     domain.CategoryRatings
	Content     string
}

// Overall is the computed rating: zero until all four categories are
// rated, then the mean rounded to one decimal.
func (f *ReviewForm) Overall() float64 {
	return f.Ratings.Overall()
}

// CanSubmit reports whether the form is complete.
func (f *ReviewForm) CanSubmit() bool {
	return f.Overall() > 0 && strings.TrimSpace(f.Content) != ""
}

// ReviewBackend is the slice of the API client the review desk uses.
type ReviewBackend interface {
	CreateReview(ctx context.Context, role domain.Role, req api.ReviewRequest) (*domain.Review, error)
	UpdateReview(ctx context.Context, role domain.Role, reviewID string, req api.ReviewRequest) (*domain.Review, error)
	ReplyToReview(ctx context.Context, role domain.Role, reviewID, content string) (*domain.Review, error)
}

// ReviewDesk validates and issues review mutations for one role.
type ReviewDesk struct {
	backend ReviewBackend
	role    domain.Role
}

// NewReviewDesk creates a ReviewDesk.
func NewReviewDesk(backend ReviewBackend, role domain.Role) *ReviewDesk {
	return &ReviewDesk{backend: backend, role: role}
}

// Submit posts a new review. A duplicate for the same project comes
// back as ErrReviewExists rather than the server's raw message.
func (rd *ReviewDesk) Submit(ctx context.Context, f *ReviewForm) (*domain.Review, error) {
	if !f.CanSubmit() {
		return nil, ErrReviewIncomplete
	}
	review, err := rd.backend.CreateReview(ctx, rd.role, api.ReviewRequest{
		ProjectID:       f.ProjectID,
		RecipientID:     f.RecipientID,
		Rating:          f.Overall(),
		Content:         f.Content,
		CategoryRatings: f.Ratings,
	})
	if err != nil {
		if api.IsConflict(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return review, nil
}

// Edit updates an existing review with the form's current values.
func (rd *ReviewDesk) Edit(ctx context.Context, reviewID string, f *ReviewForm) (*domain.Review, error) {
	if !f.CanSubmit() {
		return nil, ErrReviewIncomplete
	}
	return rd.backend.UpdateReview(ctx, rd.role, reviewID, api.ReviewRequest{
		ProjectID:       f.ProjectID,
		RecipientID:     f.RecipientID,
		Rating:          f.Overall(),
		Content:         f.Content,
		CategoryRatings: f.Ratings,
	})
}

// Reply posts the recipient's single reply. Gated locally so the UI
// never offers a doomed action.
func (rd *ReviewDesk) Reply(ctx context.Context, review *domain.Review, accountID, content string) (*domain.Review, error) {
	if !review.CanReply(accountID) {
		return nil, ErrReplyNotAllowed
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("reply content is required")
	}
	return rd.backend.ReplyToReview(ctx, rd.role, review.ID, content)
}
