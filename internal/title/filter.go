package title

import (
	"strings"

	"github.com/randalmurphal/gitsplit/internal/llm"
)

// prefixes is the whitelist of accepted conventional-commit prefixes.
var prefixes = []string{
	"feat:", "fix:", "docs:", "refactor:", "test:", "config:", "chore:",
	"style:", "perf:", "build:", "ci:", "revert:", "wip:",
}

// fillers are substrings that mark a conversational reply rather than a
// title. A candidate containing any of them is rejected even when it
// carries a valid prefix.
var fillers = []string{
	"i'll", "i will", "let me", "based on", "here is", "here's",
	"here are", "looking at", "wait for your input",
}

// extractTitle scans response fragments newest-first for the first line
// that passes the validity filter. Within a fragment, lines are tried
// top to bottom.
func extractTitle(fragments []llm.Fragment) (string, bool) {
	for i := len(fragments) - 1; i >= 0; i-- {
		frag := fragments[i]
		switch frag.Kind {
		case llm.FragmentResult, llm.FragmentAssistantText:
			for _, line := range strings.Split(frag.Text, "\n") {
				if candidate, ok := validTitle(line); ok {
					return candidate, true
				}
			}
		case llm.FragmentOther:
		}
	}
	return "", false
}

// validTitle normalizes one line and checks it against the prefix
// whitelist and the filler blacklist. Returns the cleaned candidate.
func validTitle(line string) (string, bool) {
	cleaned := strings.TrimSpace(line)
	cleaned = strings.Trim(cleaned, "\"'`")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", false
	}

	lower := strings.ToLower(cleaned)

	ok := false
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			ok = true
			break
		}
	}
	if !ok {
		return "", false
	}

	for _, f := range fillers {
		if strings.Contains(lower, f) {
			return "", false
		}
	}

	return cleaned, true
}
