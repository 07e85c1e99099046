package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitsplit/internal/committer"
	"github.com/randalmurphal/gitsplit/internal/session"
)

func newWrapCommand() *cobra.Command {
	var (
		ov           overrides
		prompt       string
		resume       string
		continueLast bool
		listSessions bool
	)

	cmd := &cobra.Command{
		Use:   "wrap [-- extra CLI args]",
		Short: "Run an interactive session and commit its output",
		Long: `Wrap launches an interactive claude session with your terminal attached.
When the session ends, any resulting changes are staged, grouped, and
committed. Each commit carries session trailers so a later
"wrap --resume" can pick the conversation back up.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			history := session.NewHistory(a.repo)

			if listSessions {
				return runListSessions(cmd, history)
			}

			meta := session.NewMetadata(prompt)
			switch {
			case resume != "":
				prior, found, err := history.Find(ctx, resume)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no session %q in commit history", resume)
				}
				meta.ResumedFrom = prior.ID
			case continueLast:
				prior, found, err := history.Latest(ctx)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no previous session in commit history")
				}
				meta.ResumedFrom = prior.ID
			}

			infoStyle.Printf("session %s\n", meta.ID)

			runner := session.NewRunner(a.cfg.ClaudePath,
				session.WithDir(a.repo.Root()),
				session.WithStdio(os.Stdin, os.Stdout, os.Stderr),
			)
			if err := runner.Run(ctx, meta, args...); err != nil {
				return err
			}

			if err := a.repo.AddAll(ctx); err != nil {
				return err
			}
			summary, err := a.commitStaged(ctx, committer.WithTrailers(meta.TrailerBlock()))
			if err != nil {
				return err
			}
			if summary == nil {
				warnStyle.Println("session made no changes")
				return nil
			}
			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "initial prompt recorded in the session trailers")
	cmd.Flags().StringVar(&resume, "resume", "", "resume the session with this ID")
	cmd.Flags().BoolVarP(&continueLast, "continue", "c", false, "resume the most recent session")
	cmd.Flags().BoolVar(&listSessions, "list", false, "list sessions recorded in commit history")
	cmd.MarkFlagsMutuallyExclusive("resume", "continue", "list")

	return cmd
}

// runListSessions prints the sessions recorded in commit trailers,
// newest first.
func runListSessions(cmd *cobra.Command, history *session.History) error {
	sessions, err := history.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		warnStyle.Println("no sessions recorded")
		return nil
	}
	for _, meta := range sessions {
		fmt.Printf("%s  %s", meta.ID, meta.Timestamp.Local().Format("2006-01-02 15:04"))
		if meta.Prompt != "" {
			fmt.Printf("  %s", meta.Prompt)
		}
		fmt.Println()
	}
	return nil
}
