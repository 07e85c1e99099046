package session

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Runner launches an interactive CLI session with stdio passed through,
// so the user talks to the tool directly while the wrapper tracks
// metadata around it.
type Runner struct {
	path   string
	dir    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDir sets the working directory for the wrapped process.
func WithDir(dir string) RunnerOption {
	return func(r *Runner) { r.dir = dir }
}

// WithStdio sets the streams handed to the wrapped process.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a Runner for the CLI at path.
func NewRunner(path string, opts ...RunnerOption) *Runner {
	r := &Runner{path: path}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one interactive session described by meta. When the
// metadata resumes an earlier session, the prior session ID is passed
// through to the CLI. Blocks until the session ends; the user's exit
// is not an error.
func (r *Runner) Run(ctx context.Context, meta Metadata, extraArgs ...string) error {
	args := make([]string, 0, len(extraArgs)+2)
	if meta.ResumedFrom != "" {
		args = append(args, "--resume", meta.ResumedFrom)
	}
	args = append(args, extraArgs...)

	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Dir = r.dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The wrapped CLI reports non-zero on user abort too; the
			// wrapper still wants to commit whatever was produced.
			return nil
		}
		return err
	}
	return nil
}
