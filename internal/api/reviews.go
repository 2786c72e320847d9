package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danialarif/gigdesk/internal/domain"
)

// ReviewRequest is the body for creating or updating a review. Rating
// is the computed mean of the four categories; the backend rejects
// mismatches.
type ReviewRequest struct {
	ProjectID   string  `json:"projectId"`
	RecipientID string  `json:"recipientId,omitempty"`
	Rating      float64 `json:"rating"`
	Content     string  `json:"content"`
	domain.CategoryRatings
}

// ListReviews fetches the reviews written by or about the current
// account, depending on role.
func (c *Client) ListReviews(ctx context.Context, role domain.Role) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.get(ctx, fmt.Sprintf("/%s/reviews", role), &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a new review. A second review for the same
// project fails with an "already exists" conflict; see IsConflict.
func (c *Client) CreateReview(ctx context.Context, role domain.Role, req ReviewRequest) (*domain.Review, error) {
	var r domain.Review
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/reviews", role), req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReview edits an existing review.
func (c *Client) UpdateReview(ctx context.Context, role domain.Role, reviewID string, req ReviewRequest) (*domain.Review, error) {
	var r domain.Review
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/reviews/%s", role, reviewID), req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, role domain.Role, reviewID string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/reviews/%s", role, reviewID), nil, nil)
}

// ReplyToReview posts the recipient's single reply to a review.
func (c *Client) ReplyToReview(ctx context.Context, role domain.Role, reviewID, content string) (*domain.Review, error) {
	body := struct {
		Content string `json:"content"`
	}{content}
	var r domain.Review
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/reviews/%s/reply", role, reviewID), body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReviewStats fetches the aggregate rating statistics for the
// current account.
func (c *Client) GetReviewStats(ctx context.Context, role domain.Role) (*domain.ReviewStats, error) {
	var stats domain.ReviewStats
	if err := c.get(ctx, fmt.Sprintf("/%s/reviews/statistics", role), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
