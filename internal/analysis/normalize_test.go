package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONB(t *testing.T) {
	tests := []struct {
		name  string
		input RawInput
		want  []string
	}{
		{
			name:  "null input",
			input: Null(),
			want:  []string{},
		},
		{
			name:  "string array drops blank entries",
			input: Strings("  Error 1 ", "", "   ", "Error 2"),
			want:  []string{"Error 1", "Error 2"},
		},
		{
			name:  "json encoded array",
			input: Text(`["Error 1", "", "   ", "Error 2"]`),
			want:  []string{"Error 1", "Error 2"},
		},
		{
			name:  "json encoded plain string",
			input: Text(`"Agent skipped the greeting"`),
			want:  []string{"Agent skipped the greeting"},
		},
		{
			name:  "array coerces scalars",
			input: Text(`["wrong price", 42, true]`),
			want:  []string{"wrong price", "42", "true"},
		},
		{
			name:  "object keeps only string leaves in order",
			input: Text(`{"z": "first", "count": 3, "nested": {"items": ["second", 7, {"deep": "third"}]}, "a": "fourth"}`),
			want:  []string{"first", "second", "third", "fourth"},
		},
		{
			name:  "malformed json returned verbatim",
			input: Text(`["Error 1", "Error 2"`),
			want:  []string{`["Error 1", "Error 2"`},
		},
		{
			name:  "failure indicators keep their marker",
			input: Text("Rule: greet the caller Rule: confirm the address"),
			want:  []string{"Rule: greet the caller", "Rule: confirm the address"},
		},
		{
			name:  "mixed failure indicators",
			input: Text("CRITICAL FAILURE: wrong price quoted Error: call dropped"),
			want:  []string{"CRITICAL FAILURE: wrong price quoted", "Error: call dropped"},
		},
		{
			name:  "numbered list",
			input: Text("1. Did not greet 2. Wrong address 3. No follow-up"),
			want:  []string{"Did not greet", "Wrong address", "No follow-up"},
		},
		{
			name:  "bullet characters",
			input: Text("• Missed greeting • Wrong price"),
			want:  []string{"Missed greeting", "Wrong price"},
		},
		{
			name:  "dash bullets on separate lines",
			input: Text("- Missed greeting\n- Wrong price"),
			want:  []string{"Missed greeting", "Wrong price"},
		},
		{
			name:  "plain sentence",
			input: Text("Agent hallucinated information"),
			want:  []string{"Agent hallucinated information"},
		},
		{
			name:  "json null literal",
			input: Text("null"),
			want:  []string{},
		},
		{
			name:  "json number literal",
			input: Text("42"),
			want:  []string{"42"},
		},
		{
			name:  "whitespace only",
			input: Text("   \n\t"),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseJSONB(tt.input))
		})
	}
}

func TestFromJSON(t *testing.T) {
	t.Run("empty and null documents", func(t *testing.T) {
		assert.Empty(t, ParseJSONB(FromJSON(nil)))
		assert.Empty(t, ParseJSONB(FromJSON([]byte("null"))))
		assert.True(t, FromJSON([]byte("  ")).IsNull())
	})

	t.Run("object keys keep document order", func(t *testing.T) {
		got := ParseJSONB(FromJSON([]byte(`{"z": "first", "a": "second"}`)))
		assert.Equal(t, []string{"first", "second"}, got)
	})

	t.Run("jsonb string holding an encoded array", func(t *testing.T) {
		got := ParseJSONB(FromJSON([]byte(`"[\"x\", \"y\"]"`)))
		assert.Equal(t, []string{"x", "y"}, got)
	})

	t.Run("invalid bytes become text", func(t *testing.T) {
		in := FromJSON([]byte("Error: transcript missing"))
		assert.Equal(t, KindString, in.Kind())
		assert.Equal(t, []string{"Error: transcript missing"}, ParseJSONB(in))
	})
}

func TestFromAny(t *testing.T) {
	assert.Empty(t, ParseJSONB(FromAny(nil)))

	var missing *string
	assert.Empty(t, ParseJSONB(FromAny(missing)))

	got := ParseJSONB(FromAny(map[string]any{"b": "second", "a": "first", "n": 3}))
	assert.Equal(t, []string{"first", "second"}, got)

	got = ParseJSONB(FromAny([]any{"one", 2, nil, []any{"three"}}))
	assert.Equal(t, []string{"one", "2", "three"}, got)
}

func TestRawInput_UnmarshalJSON(t *testing.T) {
	var body struct {
		Input RawInput `json:"input"`
	}
	err := json.Unmarshal([]byte(`{"input": {"reason": "Agent invented a discount"}}`), &body)
	assert.NoError(t, err)
	assert.Equal(t, KindObject, body.Input.Kind())
	assert.Equal(t, []string{"Agent invented a discount"}, ParseJSONB(body.Input))
}

func TestParseJSONB_NeverReturnsBlankEntries(t *testing.T) {
	inputs := []RawInput{
		Null(),
		Text(""),
		Text(`[" ", "", "\t"]`),
		Text("• • •"),
		Text("1. 2. 3."),
		Text("Rule: Rule:"),
		Text(`{"a": " ", "b": ["", "  x  "]}`),
		Strings("", " "),
		List(Null(), Scalar("7"), Object()),
	}

	for _, in := range inputs {
		out := ParseJSONB(in)
		assert.NotNil(t, out)
		for _, s := range out {
			assert.NotEmpty(t, strings.TrimSpace(s))
			assert.Equal(t, strings.TrimSpace(s), s)
		}
	}
}

func TestParseJSONB_Idempotent(t *testing.T) {
	in := Text(`{"issues": ["Policy breach", "Misheard the caller"]}`)
	assert.Equal(t, ParseJSONB(in), ParseJSONB(in))
}
