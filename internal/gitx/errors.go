package gitx

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for git operations.
var (
	// ErrNotARepository indicates the path is not inside a git work tree.
	ErrNotARepository = errors.New("not a git repository")

	// ErrGitOperationFailed indicates a git subprocess exited non-zero.
	ErrGitOperationFailed = errors.New("git operation failed")
)

// GitError wraps a failed git invocation with the command that ran.
type GitError struct {
	Args     []string // Arguments passed to git (excluding the binary name)
	Stderr   string   // Captured stderr, trimmed
	ExitCode int      // Process exit code, -1 when the process never ran
	Err      error    // Underlying error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *GitError) Unwrap() error {
	return e.Err
}

// newGitError creates a GitError wrapping the ErrGitOperationFailed sentinel.
func newGitError(args []string, stderr string, exitCode int, err error) *GitError {
	return &GitError{
		Args:     args,
		Stderr:   strings.TrimSpace(stderr),
		ExitCode: exitCode,
		Err:      errors.Join(ErrGitOperationFailed, err),
	}
}
