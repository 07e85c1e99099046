// Package title synthesizes conventional-commit titles for file groups.
//
// The model-driven path submits the group's files and diff excerpts and
// filters the reply through a strict validity check, because models love
// to answer conversationally instead of emitting a bare title. Every
// failure degrades to a deterministic category-based title.
package title

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/gitsplit/internal/classify"
	"github.com/randalmurphal/gitsplit/internal/gitx"
	"github.com/randalmurphal/gitsplit/internal/llm"
	"github.com/randalmurphal/gitsplit/internal/prompt"
)

// DefaultMaxLength is the default commit title cap.
const DefaultMaxLength = 50

// Source identifies which path produced a title.
type Source string

// Title sources.
const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result is a generated title and where it came from.
type Result struct {
	Title  string
	Source Source
}

// fallbackPriority is the category order checked for canned titles.
// Deliberately different from the grouping fallback order.
var fallbackPriority = []struct {
	category classify.Category
	title    string
}{
	{classify.CategoryTest, "test: update tests"},
	{classify.CategoryDocs, "docs: update documentation"},
	{classify.CategoryConfig, "config: update configuration"},
	{classify.CategoryBuild, "build: update build files"},
}

// Fallback returns a deterministic title for a file group. Category
// presence is checked in priority order Test, Docs, Config, Build; when
// none apply the title falls back to the group's statuses.
func Fallback(files []gitx.FileChange) string {
	buckets := classify.Bucket(files)
	for _, entry := range fallbackPriority {
		if len(buckets[entry.category]) > 0 {
			return entry.title
		}
	}

	for _, fc := range files {
		if fc.Status == gitx.StatusAdded {
			return "feat: add new files"
		}
	}
	for _, fc := range files {
		if fc.Status == gitx.StatusDeleted {
			return "chore: remove files"
		}
	}
	return "refactor: update code"
}

// Config holds the knobs the generator reads.
type Config struct {
	// MaxLength caps the generated title; longer candidates are
	// truncated with an ellipsis. Zero uses DefaultMaxLength.
	MaxLength int

	// MaxDiffLines truncates each file's diff excerpt in the prompt.
	MaxDiffLines int

	// MaxTurns bounds model back-and-forth per request.
	MaxTurns int

	// Model overrides the CLI's default model. Optional.
	Model string
}

// Generator produces titles via the model with fallback.
type Generator struct {
	client llm.Client
	cfg    Config
}

// New creates a Generator. A nil client forces the fallback path.
func New(client llm.Client, cfg Config) *Generator {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.MaxDiffLines <= 0 {
		cfg.MaxDiffLines = 10
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 1
	}
	return &Generator{client: client, cfg: cfg}
}

// Generate produces a title for one file group. It never fails and the
// returned title never exceeds the configured cap.
func (g *Generator) Generate(ctx context.Context, files []gitx.FileChange) Result {
	if g.client == nil {
		return g.fallbackResult(files, "no model client configured")
	}

	promptText, err := prompt.Title(files, g.cfg.MaxDiffLines, g.cfg.MaxLength)
	if err != nil {
		return g.fallbackResult(files, "prompt rendering failed: "+err.Error())
	}

	resp, err := g.client.Complete(ctx, llm.Request{
		Prompt:   promptText,
		Model:    g.cfg.Model,
		MaxTurns: g.cfg.MaxTurns,
	})
	if err != nil {
		return g.fallbackResult(files, "completion failed: "+err.Error())
	}

	candidate, ok := extractTitle(resp.Fragments)
	if !ok {
		return g.fallbackResult(files, "no valid title in response")
	}

	return Result{Title: Clamp(candidate, g.cfg.MaxLength), Source: SourceModel}
}

// fallbackResult builds a fallback title and logs the trigger.
func (g *Generator) fallbackResult(files []gitx.FileChange, reason string) Result {
	slog.Warn("falling back to canned commit title", "reason", reason)
	return Result{Title: Fallback(files), Source: SourceFallback}
}

// Clamp enforces the title length cap. A clamped title ends with "..."
// and has exactly max characters.
func Clamp(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
