package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitsplit/internal/grouping"
)

func newSplitCommand() *cobra.Command {
	var (
		ov     overrides
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Group staged changes into logical commits",
		Long: `Split groups the staged changes into logical commits, one per group,
each with a generated conventional-commit title.

Stage what you want committed first, or pass --all to stage every
change in the working tree. With no staged changes the command reports
that and exits cleanly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if all {
				if err := a.repo.AddAll(ctx); err != nil {
					return err
				}
			}

			if dryRun {
				return runDryRun(cmd, a)
			}

			summary, err := a.commitStaged(ctx)
			if err != nil {
				return err
			}
			if summary == nil {
				warnStyle.Println("nothing to commit")
				return nil
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "stage all working tree changes first")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the grouping plan without committing")
	cmd.Flags().StringVarP(&ov.model, "model", "m", "", "model to use for grouping and titles")
	cmd.Flags().IntVar(&ov.maxTurns, "max-turns", 0, "max conversation turns per grouping request")
	cmd.Flags().BoolVar(&ov.useSchema, "json-schema", false, "constrain model output with a JSON schema")

	return cmd
}

// runDryRun prints the grouping plan without touching the index beyond
// what is already staged.
func runDryRun(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	files, err := a.repo.StagedChanges(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		warnStyle.Println("nothing to commit")
		return nil
	}

	plan := a.grouper().Group(ctx, files)
	if plan.Source == grouping.SourceFallback {
		infoStyle.Printf("plan source: category fallback (%s)\n", plan.Reason)
	} else {
		infoStyle.Println("plan source: model")
	}

	for i, group := range plan.Groups {
		fmt.Printf("commit %d:\n", i+1)
		for _, fc := range group {
			fmt.Printf("  %s  %s\n", fc.Status, fc.Path)
		}
	}
	return nil
}
