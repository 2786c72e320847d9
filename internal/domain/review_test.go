package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRatings_Overall_ZeroUntilComplete(t *testing.T) {
	c := CategoryRatings{Communication: 5, Quality: 4, Timeliness: 3}
	assert.False(t, c.Complete())
	assert.Equal(t, 0.0, c.Overall(), "overall stays zero with 3 of 4 rated")

	c.Professionalism = 4
	assert.True(t, c.Complete())
	assert.Equal(t, 4.0, c.Overall())
}

func TestCategoryRatings_Overall_RoundsToOneDecimal(t *testing.T) {
	tests := []struct {
		name string
		c    CategoryRatings
		want float64
	}{
		{"all fives", CategoryRatings{5, 5, 5, 5}, 5.0},
		{"mixed", CategoryRatings{5, 4, 4, 4}, 4.3},
		{"rounds up", CategoryRatings{5, 5, 4, 4}, 4.5},
		{"low", CategoryRatings{1, 2, 1, 1}, 1.3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.c.Overall())
		})
	}
}

func TestReview_CanReply(t *testing.T) {
	r := &Review{RecipientID: "provider-1"}
	assert.True(t, r.CanReply("provider-1"))
	assert.False(t, r.CanReply("company-1"), "only the recipient may reply")
	assert.False(t, r.CanReply(""))

	r.Reply = &ReviewReply{ID: "reply-1", Content: "thanks"}
	assert.False(t, r.CanReply("provider-1"), "reply action is permanently disabled once present")
}
