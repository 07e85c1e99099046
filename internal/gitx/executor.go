package gitx

import (
	"bytes"
	"errors"
	"os/exec"
)

// Executor runs git commands. The indirection exists so tests can
// substitute a recording implementation and assert call ordering.
type Executor interface {
	// Run executes a command, discarding its output.
	Run(cmd *exec.Cmd) error

	// RunWithOutput executes a command and returns its stdout.
	RunWithOutput(cmd *exec.Cmd) (string, error)
}

// ExecExecutor is the default Executor backed by os/exec.
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor.
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Run implements Executor.
func (e *ExecExecutor) Run(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return newGitError(commandArgs(cmd), stderr.String(), exitCode(cmd, err), err)
	}
	return nil
}

// RunWithOutput implements Executor.
func (e *ExecExecutor) RunWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", newGitError(commandArgs(cmd), stderr.String(), exitCode(cmd, err), err)
	}
	return stdout.String(), nil
}

// exitCode extracts the process exit code, or -1 when the process never ran.
func exitCode(cmd *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

// commandArgs returns the arguments after the binary name, for error context.
func commandArgs(cmd *exec.Cmd) []string {
	if len(cmd.Args) > 1 {
		return cmd.Args[1:]
	}
	return nil
}
