package grouping

import (
	"encoding/json"
	"regexp"

	"github.com/randalmurphal/gitsplit/internal/llm"
)

// bracketed greedily matches from the first '[' to the last ']', so JSON
// wrapped in prose ("Sure, here you go: [[...]] hope that helps!") still
// parses. Greediness is required: a lazy match would stop at the first
// inner ']'.
var bracketed = regexp.MustCompile(`(?s)\[.*\]`)

// extractFromFragments walks response fragments newest-first and returns
// the first parseable group list. Only terminal results and assistant
// text are considered; everything else is skipped. Returns ok=false when
// no fragment yields a parseable list.
func extractFromFragments(fragments []llm.Fragment) ([][]string, bool) {
	for i := len(fragments) - 1; i >= 0; i-- {
		frag := fragments[i]
		switch frag.Kind {
		case llm.FragmentResult, llm.FragmentAssistantText:
			if groups, ok := ExtractPathGroups(frag.Text); ok {
				return groups, true
			}
		case llm.FragmentOther:
			// Tool traffic, init events: never carry the answer.
		}
	}
	return nil, false
}

// ExtractPathGroups parses a JSON array of arrays of file paths out of
// free-form text. It tries the whole text first, then the schema payload
// shape, then a bracketed substring. Returns ok=false when nothing
// parses.
func ExtractPathGroups(text string) ([][]string, bool) {
	if text == "" {
		return nil, false
	}

	if groups, ok := unmarshalGroups([]byte(text)); ok {
		return groups, true
	}

	match := bracketed.FindString(text)
	if match == "" {
		return nil, false
	}
	return unmarshalGroups([]byte(match))
}

// unmarshalGroups decodes either a bare [][]string or the structured
// {"groups": [][]string} payload.
func unmarshalGroups(data []byte) ([][]string, bool) {
	var groups [][]string
	if err := json.Unmarshal(data, &groups); err == nil {
		return groups, true
	}

	var payload llm.GroupsPayload
	if err := json.Unmarshal(data, &payload); err == nil && payload.Groups != nil {
		return payload.Groups, true
	}
	return nil, false
}
