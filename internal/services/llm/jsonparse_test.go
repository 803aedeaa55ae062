package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"inline fence", "```{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.input))
		})
	}
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Score float64  `json:"score"`
		Flags []string `json:"flags"`
	}

	t.Run("fenced object", func(t *testing.T) {
		var p payload
		require.NoError(t, ParseJSON("```json\n{\"score\": 72.5, \"flags\": [\"a\"]}\n```", &p))
		assert.Equal(t, 72.5, p.Score)
		assert.Equal(t, []string{"a"}, p.Flags)
	})

	t.Run("prose around object", func(t *testing.T) {
		var p payload
		require.NoError(t, ParseJSON("Here is my analysis:\n{\"score\": 40}\nHope this helps.", &p))
		assert.Equal(t, 40.0, p.Score)
	})

	t.Run("no object", func(t *testing.T) {
		var p payload
		assert.Error(t, ParseJSON("I cannot answer that.", &p))
	})

	t.Run("malformed object", func(t *testing.T) {
		var p payload
		assert.Error(t, ParseJSON("{\"score\": }", &p))
	})
}
