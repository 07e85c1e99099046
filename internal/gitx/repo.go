// Package gitx wraps the git command-line tool as an external process.
//
// All commands run with their working directory pinned to the repository
// root, so callers may be anywhere inside the work tree. Git failures are
// wrapped in GitError with the command and captured stderr for context.
package gitx

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Repo runs git commands against a single repository.
type Repo struct {
	root     string
	executor Executor
}

// Open resolves the repository root for dir and returns a Repo.
// Returns ErrNotARepository when dir is not inside a git work tree.
func Open(dir string) (*Repo, error) {
	return OpenWithExecutor(dir, NewExecExecutor())
}

// OpenWithExecutor is Open with a custom Executor, for tests.
func OpenWithExecutor(dir string, executor Executor) (*Repo, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := executor.RunWithOutput(cmd)
	if err != nil {
		return nil, errors.Join(ErrNotARepository, err)
	}
	return &Repo{root: strings.TrimSpace(out), executor: executor}, nil
}

// NewRepo creates a Repo rooted at a known repository path, without
// resolving it. Intended for tests with a recording executor.
func NewRepo(root string, executor Executor) *Repo {
	return &Repo{root: root, executor: executor}
}

// Root returns the repository root directory.
func (r *Repo) Root() string {
	return r.root
}

// run executes a git command in the repository root, discarding output.
func (r *Repo) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	return r.executor.Run(cmd)
}

// output executes a git command in the repository root and returns stdout.
func (r *Repo) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	return r.executor.RunWithOutput(cmd)
}

// ResetIndex unstages everything, leaving the work tree untouched.
func (r *Repo) ResetIndex(ctx context.Context) error {
	return r.run(ctx, "reset")
}

// Add stages the given paths.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	return r.run(ctx, args...)
}

// AddAll stages all changes in the work tree.
func (r *Repo) AddAll(ctx context.Context) error {
	return r.run(ctx, "add", "-A")
}

// HasStagedChanges reports whether the index differs from HEAD.
// Uses the exit code of `git diff --cached --quiet`: zero means no changes.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	err := r.run(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.ExitCode == 1 {
		return true, nil
	}
	return false, err
}

// Commit creates a commit with the given message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	return r.run(ctx, "commit", "-m", message)
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
