// Package committer turns an ordered list of file groups into commits.
//
// Groups share one snapshot of the staging area, so processing is
// strictly sequential: the index is reset and re-staged per group, and a
// group's commit must finish (or be skipped) before the next group
// touches the index.
package committer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/gitsplit/internal/gitx"
	"github.com/randalmurphal/gitsplit/internal/grouping"
	"github.com/randalmurphal/gitsplit/internal/title"
)

// GitOps is the slice of repository operations the committer needs.
// *gitx.Repo satisfies it; tests substitute a recorder.
type GitOps interface {
	ResetIndex(ctx context.Context) error
	Add(ctx context.Context, paths ...string) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
}

// Titler produces a commit title for one file group.
// *title.Generator satisfies it.
type Titler interface {
	Generate(ctx context.Context, files []gitx.FileChange) title.Result
}

// Commit is one created commit, for reporting.
type Commit struct {
	Title string
	Paths []string
}

// Summary reports what a run did.
type Summary struct {
	Commits []Commit
	Skipped []grouping.FileGroup
}

// Option configures a Committer.
type Option func(*Committer)

// WithTrailers appends a trailer block to every commit message. The
// session wrapper uses this to tag commits with session metadata.
func WithTrailers(block string) Option {
	return func(c *Committer) { c.trailers = block }
}

// Committer commits file groups in order.
type Committer struct {
	git      GitOps
	titler   Titler
	trailers string
}

// New creates a Committer.
func New(git GitOps, titler Titler, opts ...Option) *Committer {
	c := &Committer{git: git, titler: titler}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CommitGroups processes groups strictly in order. Each group gets a
// full index reset, selective staging, an emptiness check, a title, and
// a commit. A git failure aborts the run; groups already committed stay
// committed and the error reports which group failed.
func (c *Committer) CommitGroups(ctx context.Context, groups []grouping.FileGroup) (*Summary, error) {
	summary := &Summary{}

	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		paths := group.Paths()

		if err := c.git.ResetIndex(ctx); err != nil {
			return summary, fmt.Errorf("reset index for group %d: %w", i+1, err)
		}
		if err := c.git.Add(ctx, paths...); err != nil {
			return summary, fmt.Errorf("stage group %d (%v): %w", i+1, paths, err)
		}

		staged, err := c.git.HasStagedChanges(ctx)
		if err != nil {
			return summary, fmt.Errorf("check staged changes for group %d: %w", i+1, err)
		}
		if !staged {
			slog.Warn("skipping group with no staged diff", "group", i+1, "paths", paths)
			summary.Skipped = append(summary.Skipped, group)
			continue
		}

		res := c.titler.Generate(ctx, group)

		message := res.Title
		if c.trailers != "" {
			message += "\n\n" + c.trailers
		}

		if err := c.git.Commit(ctx, message); err != nil {
			return summary, fmt.Errorf("commit group %d (%q): %w", i+1, res.Title, err)
		}

		slog.Info("created commit", "title", res.Title, "files", len(group), "source", res.Source)
		summary.Commits = append(summary.Commits, Commit{Title: res.Title, Paths: paths})
	}

	return summary, nil
}
