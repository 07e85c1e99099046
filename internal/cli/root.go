// Package cli wires the gitsplit commands together.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build metadata, set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// NewRootCommand builds the gitsplit command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "gitsplit",
		Short: "Split staged changes into logical commits",
		Long: `gitsplit groups staged changes into logical commits with generated
conventional-commit titles. Grouping and titling ask the claude CLI;
when it is unavailable or unhelpful, deterministic category-based
fallbacks take over so a commit always happens.

Commands:
  split     group and commit the currently staged changes
  watch     auto-commit whenever the working tree settles
  wrap      run an interactive session and commit its output with metadata`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(newSplitCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newWrapCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupLogging routes slog to stderr; debug level only when asked, so
// normal runs stay quiet apart from the colored status lines.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitsplit %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
