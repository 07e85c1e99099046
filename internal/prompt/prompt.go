// Package prompt renders the grouping and titling prompts sent to the
// model. Templates live alongside the code so prompt changes show up in
// diffs like any other logic change.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/randalmurphal/gitsplit/internal/gitx"
)

// FileContext is one file as presented to the model: path, status, and a
// truncated diff preview.
type FileContext struct {
	Path    string
	Status  string
	Preview string
}

// BuildFileContexts prepares the per-file prompt sections, truncating
// each diff to at most previewLines lines.
func BuildFileContexts(files []gitx.FileChange, previewLines int) []FileContext {
	contexts := make([]FileContext, 0, len(files))
	for _, fc := range files {
		contexts = append(contexts, FileContext{
			Path:    fc.Path,
			Status:  fc.Status.String(),
			Preview: FirstLines(fc.Diff, previewLines),
		})
	}
	return contexts
}

// FirstLines returns at most n leading lines of s. Empty input stays
// empty; a truncated preview does not get an ellipsis marker, matching
// what diff excerpts look like in the prompt.
func FirstLines(s string, n int) string {
	if s == "" || n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return strings.TrimRight(s, "\n")
	}
	return strings.Join(lines[:n], "\n")
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"trim": strings.TrimSpace,
}

const groupingTemplate = `You are grouping staged git changes into logical commits.

Files:
{{range .Files}}- {{.Path}} ({{.Status}})
{{- if .Preview}}
{{.Preview}}
{{- end}}
{{end}}
Rules:
- Group related functionality together.
- Keep configuration changes separate from code changes.
- Keep tests with the code they cover, unless the test changes stand alone.
- Keep documentation separate unless tightly coupled to a code change.
- Keep bug fixes separate from new features.
- Avoid excessive fragmentation; prefer a few cohesive groups.

Return ONLY a JSON array of arrays of file paths, nothing else.
Example: [["src/auth.go","src/auth_test.go"],["README.md"]]`

const titleTemplate = `Write a git commit title for the following staged changes.

Files:
{{range .Files}}- {{.Path}} ({{.Status}})
{{end}}
{{- if .Diffs}}
Changes:
{{.Diffs}}
{{- end}}
Rules:
- Use a conventional commit prefix (feat:, fix:, docs:, test:, refactor:, chore:, ...).
- At most {{.MaxLength}} characters.
- No quotes around the title.
- Return ONLY the title, nothing else.`

var (
	groupingTmpl = template.Must(template.New("grouping").Funcs(funcs).Parse(groupingTemplate))
	titleTmpl    = template.Must(template.New("title").Funcs(funcs).Parse(titleTemplate))
)

// Grouping renders the grouping prompt for the given files.
func Grouping(files []gitx.FileChange, previewLines int) (string, error) {
	var sb strings.Builder
	data := struct{ Files []FileContext }{BuildFileContexts(files, previewLines)}
	if err := groupingTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render grouping prompt: %w", err)
	}
	return sb.String(), nil
}

// Title renders the title prompt for one file group.
func Title(files []gitx.FileChange, diffLines, maxLength int) (string, error) {
	contexts := BuildFileContexts(files, diffLines)

	var diffs []string
	for _, fc := range contexts {
		if fc.Preview != "" {
			diffs = append(diffs, fmt.Sprintf("--- %s ---\n%s", fc.Path, fc.Preview))
		}
	}

	var sb strings.Builder
	data := struct {
		Files     []FileContext
		Diffs     string
		MaxLength int
	}{contexts, strings.Join(diffs, "\n"), maxLength}
	if err := titleTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render title prompt: %w", err)
	}
	return sb.String(), nil
}
