package domain

import (
	"math"
	"time"
)

// CategoryRatings are the four independent 1-5 axes a review collects.
// Companies and providers label two of the axes differently (quality vs
// clarity, timeliness vs payment) but they are the same four fields on
// the wire.
type CategoryRatings struct {
	Communication   int `json:"communicationRating"`
	Quality         int `json:"qualityRating"`
	Timeliness      int `json:"timelinessRating"`
	Professionalism int `json:"professionalismRating"`
}

// Complete reports whether all four categories have been rated.
func (c CategoryRatings) Complete() bool {
	return c.Communication > 0 && c.Quality > 0 && c.Timeliness > 0 && c.Professionalism > 0
}

// Overall is the arithmetic mean of the four categories rounded to one
// decimal. It stays 0 until every category is rated; the overall rating
// is never set directly.
func (c CategoryRatings) Overall() float64 {
	if !c.Complete() {
		return 0
	}
	sum := c.Communication + c.Quality + c.Timeliness + c.Professionalism
	return math.Round(float64(sum)/4*10) / 10
}

// CategoryLabels returns the axis titles a reviewer sees, in the same
// order as the CategoryRatings fields. Providers rate the company's
// requirement clarity and payment timeliness; companies rate the
// provider's work quality and delivery timeliness.
func CategoryLabels(reviewer Role) [4]string {
	if reviewer == RoleProvider {
		return [4]string{"Communication", "Requirement clarity", "Payment timeliness", "Professionalism"}
	}
	return [4]string{"Communication", "Work quality", "Delivery timeliness", "Professionalism"}
}

// ReviewReply is the recipient's single reply to a review.
type ReviewReply struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Review is one party's rating of the other for a completed project.
// At most one review per (project, reviewer, recipient).
type Review struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	ReviewerID  string `json:"reviewerId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`

	Rating  float64 `json:"rating"`
	Content string  `json:"content"`
	CategoryRatings

	Reply     *ReviewReply `json:"reply,omitempty"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
}

// CanReply reports whether the given account may still post a reply:
// recipient only, and only while no reply exists.
func (r *Review) CanReply(accountID string) bool {
	return r.Reply == nil && accountID != "" && accountID == r.RecipientID
}

// ReviewStats is the aggregate returned by the statistics endpoint.
type ReviewStats struct {
	TotalReviews  int         `json:"totalReviews"`
	AverageRating float64     `json:"averageRating"`
	Categories    CategoryAverages `json:"categories,omitzero"`
	StarCounts    map[string]int   `json:"starCounts,omitempty"`
}

// CategoryAverages mirrors CategoryRatings with fractional averages.
type CategoryAverages struct {
	Communication   float64 `json:"communicationRating"`
	Quality         float64 `json:"qualityRating"`
	Timeliness      float64 `json:"timelinessRating"`
	Professionalism float64 `json:"professionalismRating"`
}
