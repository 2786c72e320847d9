package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenumber_Contiguous(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"single", 1},
		{"several", 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := make([]Milestone, tc.n)
			for i := range ms {
				ms[i].Sequence = 99 - i // scrambled
			}
			Renumber(ms)
			for i, m := range ms {
				assert.Equal(t, i+1, m.Sequence)
			}
		})
	}
}

func TestPlanTotal(t *testing.T) {
	ms := []Milestone{
		{Amount: AmountFromRM(400)},
		{Amount: AmountFromRM(600)},
	}
	assert.Equal(t, AmountFromRM(1000), PlanTotal(ms))
	assert.Equal(t, Amount(0), PlanTotal(nil))
}

func TestResolutionNote_Split(t *testing.T) {
	plain := ResolutionNote{Note: "refund approved"}
	result, comment := plain.Split()
	assert.Equal(t, "refund approved", result)
	assert.Empty(t, comment)

	split := ResolutionNote{Note: "Resolution: partial refund RM 200" + AdminNoteSeparator + "Provider was responsive throughout."}
	result, comment = split.Split()
	assert.Equal(t, "Resolution: partial refund RM 200", result)
	assert.Equal(t, "Provider was responsive throughout.", comment)
}

func TestProject_ParticipantName(t *testing.T) {
	p := &Project{
		Customer: &Party{ID: "c-1", Name: "Aisyah Binti Rahman"},
		Provider: &Party{ID: "p-1", Name: "Daniel Wong"},
	}

	name, ok := p.ParticipantName("c-1")
	assert.True(t, ok)
	assert.Equal(t, "Aisyah Binti Rahman", name)

	name, ok = p.ParticipantName("p-1")
	assert.True(t, ok)
	assert.Equal(t, "Daniel Wong", name)

	_, ok = p.ParticipantName("stranger")
	assert.False(t, ok)
	_, ok = (*Project)(nil).ParticipantName("c-1")
	assert.False(t, ok)
}
