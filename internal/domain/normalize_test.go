package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPayload_UnmarshalBothShapes(t *testing.T) {
	var fromString TextPayload
	require.NoError(t, json.Unmarshal([]byte(`"plain note"`), &fromString))
	assert.Equal(t, "plain note", fromString.Description)

	var fromObject TextPayload
	require.NoError(t, json.Unmarshal([]byte(`{"description":"structured note"}`), &fromObject))
	assert.Equal(t, "structured note", fromObject.Description)
}

func TestTextPayload_MarshalAlwaysStructured(t *testing.T) {
	data, err := json.Marshal(TextPayload{Description: "done"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"done"}`, string(data))
}

func TestFlexInt_UnmarshalNumberAndString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexInt
	}{
		{"number", `3`, 3},
		{"numeric string", `"3"`, 3},
		{"null", `null`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var n FlexInt
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.want, n)
		})
	}

	var n FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"three"`), &n))
}

func TestDate_UnmarshalBothFormats(t *testing.T) {
	var bare Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15"`), &bare))
	assert.Equal(t, "2026-09-15", bare.String())

	var full Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15T08:30:00Z"`), &full))
	assert.Equal(t, "2026-09-15", full.String())
}

func TestAmount_Roundtrip(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`499.9`), &a))
	assert.Equal(t, Amount(49990), a)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "499.9", string(data))

	var fromString Amount
	require.NoError(t, json.Unmarshal([]byte(`"120.50"`), &fromString))
	assert.Equal(t, Amount(12050), fromString)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{"1000", 100000, false},
		{"1,000.50", 100050, false},
		{"RM 250", 25000, false},
		{"", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "RM 1,000.00", Amount(100000).String())
	assert.Equal(t, "RM 0.50", Amount(50).String())
	assert.Equal(t, "RM 1,234,567.89", Amount(123456789).String())
}
