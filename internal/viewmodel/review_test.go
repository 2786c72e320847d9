package viewmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/testutil"
)

func completeForm() *ReviewForm {
	return &ReviewForm{
		ProjectID:   testutil.ProjectID,
		RecipientID: testutil.ProviderID,
		Ratings: domain.CategoryRatings{
			Communication:   5,
			Quality:         4,
			Timeliness:      5,
			Professionalism: 4,
		},
		Content: "Strong delivery, would hire again.",
	}
}

func TestReviewFormOverallComputed(t *testing.T) {
	f := completeForm()
	assert.Equal(t, 4.5, f.Overall())
	assert.True(t, f.CanSubmit())

	f.Ratings.Quality = 0
	assert.Zero(t, f.Overall(), "overall stays zero until every category is rated")
	assert.False(t, f.CanSubmit())
}

func TestReviewDeskSubmitAndDuplicate(t *testing.T) {
	fake, client, _ := newBackendClient(t)
	desk := NewReviewDesk(client, domain.RoleCompany)
	ctx := context.Background()

	_, err := desk.Submit(ctx, &ReviewForm{ProjectID: testutil.ProjectID})
	assert.ErrorIs(t, err, ErrReviewIncomplete)

	review, err := desk.Submit(ctx, completeForm())
	require.NoError(t, err)
	assert.Equal(t, 4.5, review.Rating)
	assert.Equal(t, 5, review.Communication)
	require.Len(t, fake.Reviews, 1)

	// A second review for the same project surfaces as the friendly
	// duplicate error, not the raw server message.
	_, err = desk.Submit(ctx, completeForm())
	assert.ErrorIs(t, err, ErrReviewExists)
	assert.Len(t, fake.Reviews, 1)
}

func TestReviewDeskReplyGating(t *testing.T) {
	_, client, _ := newBackendClient(t)
	company := NewReviewDesk(client, domain.RoleCompany)
	provider := NewReviewDesk(client, domain.RoleProvider)
	ctx := context.Background()

	review, err := company.Submit(ctx, completeForm())
	require.NoError(t, err)

	// Only the recipient may reply.
	_, err = provider.Reply(ctx, review, testutil.CustomerID, "thanks")
	assert.ErrorIs(t, err, ErrReplyNotAllowed)

	replied, err := provider.Reply(ctx, review, testutil.ProviderID, "Thank you for the kind words!")
	require.NoError(t, err)
	require.NotNil(t, replied.Reply)
	assert.Equal(t, "Thank you for the kind words!", replied.Reply.Content)

	// One reply only; the second is refused locally.
	_, err = provider.Reply(ctx, replied, testutil.ProviderID, "me again")
	assert.ErrorIs(t, err, ErrReplyNotAllowed)
}
