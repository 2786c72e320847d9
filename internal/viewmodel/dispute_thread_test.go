package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danialarif/gigdesk/internal/domain"
)

const (
	customerID = "11111111-1111-1111-1111-111111111111"
	providerID = "22222222-2222-2222-2222-222222222222"
)

func threadProject() *domain.Project {
	return &domain.Project{
		ID:       "p-1",
		Customer: &domain.Party{ID: customerID, Name: "Aina Binti Rahman"},
		Provider: &domain.Party{ID: providerID, Name: "Wei Jian Tan"},
	}
}

func TestParseDisputeThreadOriginalOnly(t *testing.T) {
	d := &domain.Dispute{
		Description: "Deliverable does not match the agreed scope.",
		RaisedBy:    &domain.Party{ID: providerID, Name: "Wei Jian Tan"},
	}
	entries := ParseDisputeThread(d, threadProject())
	require.Len(t, entries, 1)
	assert.Equal(t, "Wei Jian Tan", entries[0].Author)
	assert.Equal(t, "Deliverable does not match the agreed scope.", entries[0].Content)
	assert.Empty(t, entries[0].Date)
}

func TestParseDisputeThreadMixedFormats(t *testing.T) {
	d := &domain.Dispute{
		Description: "Original report." +
			ThreadDelimiter + "[Update by Aina Binti Rahman on 12 Mar 2026]: We reviewed the files." +
			ThreadDelimiter + "[Update by " + providerID + "]: Uploading revised mockups.",
		RaisedBy: &domain.Party{ID: customerID, Name: "Aina Binti Rahman"},
	}
	entries := ParseDisputeThread(d, threadProject())
	require.Len(t, entries, 3)

	assert.Equal(t, "Aina Binti Rahman", entries[0].Author)
	assert.Equal(t, "Original report.", entries[0].Content)

	assert.Equal(t, "Aina Binti Rahman", entries[1].Author)
	assert.Equal(t, "12 Mar 2026", entries[1].Date)
	assert.Equal(t, "We reviewed the files.", entries[1].Content)

	// Legacy block: raw participant ID resolved via the project.
	assert.Equal(t, "Wei Jian Tan", entries[2].Author)
	assert.Empty(t, entries[2].Date)
	assert.Equal(t, "Uploading revised mockups.", entries[2].Content)
}

func TestParseDisputeThreadUnknownParticipant(t *testing.T) {
	d := &domain.Dispute{
		Description: "Original." + ThreadDelimiter +
			"[Update by 99999999-9999-9999-9999-999999999999]: Who wrote this?",
	}
	entries := ParseDisputeThread(d, threadProject())
	require.Len(t, entries, 2)
	assert.Equal(t, UnknownAuthor, entries[1].Author)
	assert.Equal(t, "Who wrote this?", entries[1].Content)
}

func TestParseDisputeThreadUnrecognizedBlockKeptVerbatim(t *testing.T) {
	d := &domain.Dispute{
		Description: "Original." + ThreadDelimiter + "free-form note without a header",
	}
	entries := ParseDisputeThread(d, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, UnknownAuthor, entries[1].Author)
	assert.Equal(t, "free-form note without a header", entries[1].Content)
}

func TestParseDisputeThreadMultilineContent(t *testing.T) {
	content := "line one\nline two"
	d := &domain.Dispute{
		Description: "Original." + ThreadDelimiter +
			"[Update by Wei Jian Tan on 1 Apr 2026]: " + content,
	}
	entries := ParseDisputeThread(d, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, content, entries[1].Content)
}

func TestAppendUpdateRoundTrips(t *testing.T) {
	at := time.Date(2026, time.March, 12, 10, 0, 0, 0, time.UTC)
	desc := AppendUpdate("Original report.", "Wei Jian Tan", at, "New evidence attached.")

	d := &domain.Dispute{Description: desc}
	entries := ParseDisputeThread(d, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, "Wei Jian Tan", entries[1].Author)
	assert.Equal(t, "12 Mar 2026", entries[1].Date)
	assert.Equal(t, "New evidence attached.", entries[1].Content)
}

func TestParseDisputeThreadNil(t *testing.T) {
	assert.Nil(t, ParseDisputeThread(nil, threadProject()))
}
