// Package grouping partitions staged files into commit groups.
//
// The model-driven path asks the CLI to partition the files and parses a
// JSON array of path arrays out of its free-form reply. Every failure
// mode degrades to the deterministic category-based fallback, so callers
// always receive a complete partition and never an error.
package grouping

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/gitsplit/internal/classify"
	"github.com/randalmurphal/gitsplit/internal/gitx"
	"github.com/randalmurphal/gitsplit/internal/llm"
	"github.com/randalmurphal/gitsplit/internal/prompt"
)

// FileGroup is one partition cell: the staged files destined to become a
// single commit, in order.
type FileGroup []gitx.FileChange

// Paths returns the group's file paths in order.
func (g FileGroup) Paths() []string {
	paths := make([]string, len(g))
	for i, fc := range g {
		paths[i] = fc.Path
	}
	return paths
}

// PlanSource identifies which path produced a plan.
type PlanSource string

// Plan sources.
const (
	SourceModel    PlanSource = "model"
	SourceFallback PlanSource = "fallback"
)

// Plan is the grouping outcome. Source records whether the model's
// answer was used or the deterministic fallback took over, and Reason
// carries the fallback trigger for logs and tests.
type Plan struct {
	Groups []FileGroup
	Source PlanSource
	Reason string
}

// fallbackOrder is the priority in which category buckets become groups.
// Deliberately different from the title priority: configuration and
// miscellaneous changes commit before tests and build artifacts.
var fallbackOrder = []classify.Category{
	classify.CategoryConfig,
	classify.CategoryDocs,
	classify.CategoryOther,
	classify.CategoryTest,
	classify.CategoryBuild,
}

// Fallback partitions files by category. Deterministic and pure; the
// same input always yields the same groups in the same order.
func Fallback(files []gitx.FileChange) []FileGroup {
	buckets := classify.Bucket(files)

	var groups []FileGroup
	for _, cat := range fallbackOrder {
		if bucket := buckets[cat]; len(bucket) > 0 {
			groups = append(groups, FileGroup(bucket))
		}
	}

	// Unreachable with a non-empty input, but a lost file is the one
	// failure this package must never produce.
	if len(groups) == 0 && len(files) > 0 {
		groups = []FileGroup{files}
	}
	return groups
}

// Config holds the knobs the grouper reads.
type Config struct {
	// MaxDiffPreviewLines truncates each file's diff in the prompt.
	MaxDiffPreviewLines int

	// MaxTurns bounds model back-and-forth per request.
	MaxTurns int

	// Model overrides the CLI's default model. Optional.
	Model string

	// UseSchema requests schema-constrained output from the CLI.
	UseSchema bool
}

// Grouper runs the model-driven grouping with fallback.
type Grouper struct {
	client llm.Client
	cfg    Config
}

// New creates a Grouper. A nil client forces the fallback path.
func New(client llm.Client, cfg Config) *Grouper {
	if cfg.MaxDiffPreviewLines <= 0 {
		cfg.MaxDiffPreviewLines = 5
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 2
	}
	return &Grouper{client: client, cfg: cfg}
}

// Group partitions files into commit groups. It never fails: any model
// error, unusable reply, or empty materialization produces a fallback
// plan instead. An empty input produces an empty plan.
func (g *Grouper) Group(ctx context.Context, files []gitx.FileChange) Plan {
	if len(files) == 0 {
		return Plan{Source: SourceFallback, Reason: "no files"}
	}

	if g.client == nil {
		return g.fallbackPlan(files, "no model client configured")
	}

	promptText, err := prompt.Grouping(files, g.cfg.MaxDiffPreviewLines)
	if err != nil {
		return g.fallbackPlan(files, "prompt rendering failed: "+err.Error())
	}

	req := llm.Request{
		Prompt:   promptText,
		Model:    g.cfg.Model,
		MaxTurns: g.cfg.MaxTurns,
	}
	if g.cfg.UseSchema {
		req.JSONSchema = llm.GroupSchema()
	}

	resp, err := g.client.Complete(ctx, req)
	if err != nil {
		return g.fallbackPlan(files, "completion failed: "+err.Error())
	}

	pathGroups, ok := extractFromFragments(resp.Fragments)
	if !ok {
		return g.fallbackPlan(files, "no parseable group list in response")
	}

	groups, matched := materialize(pathGroups, files)
	if matched == 0 {
		return g.fallbackPlan(files, "model groups matched no staged files")
	}

	return Plan{Groups: groups, Source: SourceModel}
}

// fallbackPlan builds a fallback plan and logs the trigger once.
func (g *Grouper) fallbackPlan(files []gitx.FileChange, reason string) Plan {
	slog.Warn("falling back to category grouping", "reason", reason)
	return Plan{Groups: Fallback(files), Source: SourceFallback, Reason: reason}
}

// materialize converts the model's path groups into FileGroups against
// the known staged set. Unknown paths are dropped (they cannot be
// staged); duplicate mentions keep their first placement; staged files
// the model never mentioned are collected into one trailing group so the
// partition stays complete. matched counts the staged files the model's
// own groups placed; zero means the answer was useless.
func materialize(pathGroups [][]string, files []gitx.FileChange) (groups []FileGroup, matched int) {
	known := make(map[string]gitx.FileChange, len(files))
	for _, fc := range files {
		known[fc.Path] = fc
	}

	placed := make(map[string]bool, len(files))

	for _, paths := range pathGroups {
		var group FileGroup
		for _, p := range paths {
			fc, ok := known[p]
			if !ok || placed[p] {
				continue
			}
			placed[p] = true
			group = append(group, fc)
		}
		if len(group) > 0 {
			groups = append(groups, group)
			matched += len(group)
		}
	}

	var leftover FileGroup
	for _, fc := range files {
		if !placed[fc.Path] {
			leftover = append(leftover, fc)
		}
	}
	if len(leftover) > 0 {
		groups = append(groups, leftover)
	}

	return groups, matched
}
