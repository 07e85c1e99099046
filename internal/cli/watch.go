package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitsplit/internal/watch"
)

func newWatchCommand() *cobra.Command {
	var (
		ov          overrides
		debounce    time.Duration
		minInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Auto-commit whenever the working tree settles",
		Long: `Watch observes the working tree and, after each burst of file changes
settles, stages everything and runs the same group-and-commit pass as
split. Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}

			cfg := watch.Config{
				DebounceInterval:  a.cfg.DebounceInterval.Std(),
				MinCommitInterval: a.cfg.MinCommitInterval.Std(),
			}
			if debounce > 0 {
				cfg.DebounceInterval = debounce
			}
			if minInterval > 0 {
				cfg.MinCommitInterval = minInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			infoStyle.Printf("watching %s\n", a.repo.Root())

			w := watch.New(a.repo.Root(), cfg, func(ctx context.Context) error {
				if err := a.repo.AddAll(ctx); err != nil {
					return err
				}
				summary, err := a.commitStaged(ctx)
				if err != nil {
					return err
				}
				if summary != nil {
					printSummary(summary)
				}
				return nil
			})

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				infoStyle.Println("watch stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before committing (default 500ms)")
	cmd.Flags().DurationVar(&minInterval, "min-interval", 0, "minimum spacing between commit passes (default 400ms)")
	cmd.Flags().StringVarP(&ov.model, "model", "m", "", "model to use for grouping and titles")

	return cmd
}
