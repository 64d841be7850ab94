package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFailureCategory(t *testing.T) {
	assert.Equal(t, CategoryHallucination, ParseFailureCategory("Hallucination"))
	assert.Equal(t, CategoryTranscriber, ParseFailureCategory(" transcriber "))
	assert.Equal(t, CategoryRules, ParseFailureCategory("RULES"))
	assert.Equal(t, CategoryProtocol, ParseFailureCategory("protocol"))
	assert.Equal(t, CategoryOther, ParseFailureCategory("billing"))
	assert.Equal(t, CategoryOther, ParseFailureCategory(""))
}

func TestFailureCategory_Rank(t *testing.T) {
	assert.Less(t, CategoryHallucination.Rank(), CategoryTranscriber.Rank())
	assert.Less(t, CategoryProtocol.Rank(), CategoryOther.Rank())
	assert.Equal(t, len(CategoryPriority), FailureCategory("billing").Rank())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name   string
		want   Severity
		wantOK bool
	}{
		{"low", SeverityLow, true},
		{"Medium", SeverityMedium, true},
		{" HIGH ", SeverityHigh, true},
		{"critical", SeverityCritical, true},
		{"urgent", SeverityLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSeverity(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	pattern := FailurePattern{Pattern: "wrong price", Frequency: 3, Category: CategoryHallucination, Severity: SeverityCritical}

	data, err := json.Marshal(pattern)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"wrong price","frequency":3,"category":"hallucination","severity":"critical"}`, string(data))

	var decoded FailurePattern
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pattern, decoded)

	var unknown Severity
	require.NoError(t, json.Unmarshal([]byte(`"urgent"`), &unknown))
	assert.Equal(t, SeverityLow, unknown)
	assert.Equal(t, "unknown", Severity(9).String())
}
