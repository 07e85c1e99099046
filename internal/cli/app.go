package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/randalmurphal/gitsplit/internal/committer"
	"github.com/randalmurphal/gitsplit/internal/config"
	"github.com/randalmurphal/gitsplit/internal/gitx"
	"github.com/randalmurphal/gitsplit/internal/grouping"
	"github.com/randalmurphal/gitsplit/internal/llm"
	"github.com/randalmurphal/gitsplit/internal/title"
)

// Status line styles shared by the subcommands.
var (
	okStyle   = color.New(color.FgGreen)
	warnStyle = color.New(color.FgYellow)
	infoStyle = color.New(color.FgCyan)
)

// app carries the pieces every subcommand needs: the repository, the
// effective config, and the model client.
type app struct {
	repo   *gitx.Repo
	cfg    config.Config
	client llm.Client
}

// overrides are flag values that beat file and environment settings.
type overrides struct {
	model     string
	maxTurns  int
	useSchema bool
}

// newApp opens the repository at the working directory and assembles
// the configured collaborators.
func newApp(ov overrides) (*app, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	repo, err := gitx.Open(wd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repo.Root())
	if err != nil {
		return nil, err
	}
	if ov.model != "" {
		cfg.Model = ov.model
	}
	if ov.maxTurns > 0 {
		cfg.MaxTurns = ov.maxTurns
	}
	if ov.useSchema {
		cfg.UseSchema = true
	}

	client := llm.NewClaudeCLI(
		llm.WithPath(cfg.ClaudePath),
		llm.WithModel(cfg.Model),
		llm.WithWorkdir(repo.Root()),
		llm.WithTimeout(cfg.Timeout.Std()),
	)

	return &app{repo: repo, cfg: cfg, client: client}, nil
}

// grouper builds the grouping component from the app config.
func (a *app) grouper() *grouping.Grouper {
	return grouping.New(a.client, grouping.Config{
		MaxDiffPreviewLines: a.cfg.MaxDiffPreviewLines,
		MaxTurns:            a.cfg.MaxTurns,
		Model:               a.cfg.Model,
		UseSchema:           a.cfg.UseSchema,
	})
}

// titler builds the title generator from the app config.
func (a *app) titler() *title.Generator {
	return title.New(a.client, title.Config{
		MaxLength:    a.cfg.MaxCommitTitleLength,
		MaxDiffLines: a.cfg.MaxTitleDiffLines,
		Model:        a.cfg.Model,
	})
}

// commitStaged runs one full pass over the currently staged changes:
// group, title, commit. Returns nil, nil when nothing is staged.
func (a *app) commitStaged(ctx context.Context, opts ...committer.Option) (*committer.Summary, error) {
	files, err := a.repo.StagedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	plan := a.grouper().Group(ctx, files)
	if plan.Source == grouping.SourceFallback {
		infoStyle.Fprintf(os.Stderr, "using category grouping: %s\n", plan.Reason)
	}

	return committer.New(a.repo, a.titler(), opts...).CommitGroups(ctx, plan.Groups)
}

// printSummary reports created commits to the user.
func printSummary(summary *committer.Summary) {
	for _, c := range summary.Commits {
		okStyle.Printf("✓ %s", c.Title)
		fmt.Printf(" (%d files)\n", len(c.Paths))
	}
	if n := len(summary.Skipped); n > 0 {
		warnStyle.Printf("skipped %d empty group(s)\n", n)
	}
}
