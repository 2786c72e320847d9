package formatter

import (
	"fmt"
	"strings"

	"github.com/danialarif/gigdesk/internal/domain"
)

// FormatReview renders one review with its category breakdown and
// reply, if any.
func FormatReview(r *domain.Review) string {
	var b strings.Builder
	b.WriteString(Stars(r.Rating))
	if !r.CreatedAt.IsZero() {
		b.WriteString("  " + Dim(HumanTimestamp(r.CreatedAt)))
	}
	b.WriteString("\n" + StyleFg.Render(r.Content) + "\n")

	b.WriteString(Dim(fmt.Sprintf("  communication %d · quality %d · timeliness %d · professionalism %d",
		r.Communication, r.Quality, r.Timeliness, r.Professionalism)) + "\n")

	if r.Reply != nil {
		b.WriteString(StylePurple.Render("  ↳ reply: ") + StyleFg.Render(r.Reply.Content) + "\n")
	}
	return b.String()
}

// FormatReviewList renders reviews newest-first with a count line.
func FormatReviewList(reviews []domain.Review) string {
	if len(reviews) == 0 {
		return Dim("No reviews yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Bold(fmt.Sprintf("%d reviews", len(reviews))) + "\n\n")
	for i := range reviews {
		b.WriteString(FormatReview(&reviews[i]))
		if i < len(reviews)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatReviewStats renders the aggregate statistics panel.
func FormatReviewStats(s *domain.ReviewStats) string {
	var b strings.Builder
	b.WriteString(Header("Review Statistics"))
	b.WriteString("\n\n")
	b.WriteString(Stars(s.AverageRating))
	b.WriteString(Dim(fmt.Sprintf("  across %d reviews", s.TotalReviews)))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Communication", fmt.Sprintf("%.1f", s.Categories.Communication)},
		{"Quality", fmt.Sprintf("%.1f", s.Categories.Quality)},
		{"Timeliness", fmt.Sprintf("%.1f", s.Categories.Timeliness)},
		{"Professionalism", fmt.Sprintf("%.1f", s.Categories.Professionalism)},
	}
	b.WriteString(RenderTable([]string{"Category", "Average"}, rows))
	return b.String()
}
