package genai_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/service/genai"
)

func TestExtractJSON(t *testing.T) {
	cases := map[string]struct {
		input    string
		expected string
	}{
		"plain json": {
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		"json fence": {
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		"bare fence": {
			input:    "```\n[1, 2, 3]\n```",
			expected: `[1, 2, 3]`,
		},
		"surrounding whitespace": {
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gt.Value(t, genai.ExtractJSON(tc.input)).Equal(tc.expected)
		})
	}
}
