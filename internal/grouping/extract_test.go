package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/gitsplit/internal/llm"
)

func TestExtractPathGroups(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
		ok   bool
	}{
		{
			name: "bare json",
			text: `[["a.ts","b.ts"],["c.json"]]`,
			want: [][]string{{"a.ts", "b.ts"}, {"c.json"}},
			ok:   true,
		},
		{
			name: "json wrapped in prose",
			text: `Sure, here you go: [["a.ts","b.ts"],["c.json"]] hope that helps!`,
			want: [][]string{{"a.ts", "b.ts"}, {"c.json"}},
			ok:   true,
		},
		{
			name: "schema payload shape",
			text: `{"groups":[["a.go"],["b.go"]]}`,
			want: [][]string{{"a.go"}, {"b.go"}},
			ok:   true,
		},
		{
			name: "markdown fenced json",
			text: "Here is the grouping:\n```json\n[[\"x.go\"]]\n```\n",
			want: [][]string{{"x.go"}},
			ok:   true,
		},
		{
			name: "empty text",
			text: "",
			ok:   false,
		},
		{
			name: "no brackets",
			text: "I could not group the files, sorry.",
			ok:   false,
		},
		{
			name: "brackets but not string arrays",
			text: "values: [1, 2, 3]",
			ok:   false,
		},
		{
			name: "unbalanced prose brackets still greedy",
			text: `list [a] then [["real.go"]]`,
			ok:   false, // greedy match spans "a] then [[" and fails to parse
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPathGroups(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractFromFragmentsNewestFirst(t *testing.T) {
	fragments := []llm.Fragment{
		{Kind: llm.FragmentAssistantText, Text: `[["old.go"]]`},
		{Kind: llm.FragmentOther, Text: `[["never-considered.go"]]`},
		{Kind: llm.FragmentAssistantText, Text: `[["new.go"]]`},
	}

	groups, ok := extractFromFragments(fragments)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"new.go"}}, groups)
}

func TestExtractFromFragmentsSkipsUnparseable(t *testing.T) {
	fragments := []llm.Fragment{
		{Kind: llm.FragmentAssistantText, Text: `[["good.go"]]`},
		{Kind: llm.FragmentResult, Text: `thinking about it...`},
	}

	groups, ok := extractFromFragments(fragments)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"good.go"}}, groups)
}

func TestExtractFromFragmentsNoCandidate(t *testing.T) {
	fragments := []llm.Fragment{
		{Kind: llm.FragmentOther},
		{Kind: llm.FragmentAssistantText, Text: "no json here"},
	}

	_, ok := extractFromFragments(fragments)
	assert.False(t, ok)
}
