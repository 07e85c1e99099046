package gitx

import (
	"os/exec"
	"strings"
	"sync"
)

// RecordingExecutor records every git invocation and serves scripted
// responses. It backs the ordering assertions in orchestrator tests and
// never touches a real repository.
type RecordingExecutor struct {
	mu sync.Mutex

	// Calls holds the argument lists of every executed command,
	// excluding the binary name, in execution order.
	Calls [][]string

	// Outputs maps a space-joined argument prefix to the stdout served
	// for commands matching it. First matching prefix wins.
	Outputs map[string]string

	// Errors maps a space-joined argument prefix to an error returned
	// for commands matching it.
	Errors map[string]error
}

// NewRecordingExecutor creates an empty recording executor.
func NewRecordingExecutor() *RecordingExecutor {
	return &RecordingExecutor{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// Run implements Executor.
func (r *RecordingExecutor) Run(cmd *exec.Cmd) error {
	_, err := r.RunWithOutput(cmd)
	return err
}

// RunWithOutput implements Executor.
func (r *RecordingExecutor) RunWithOutput(cmd *exec.Cmd) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	args := commandArgs(cmd)
	r.Calls = append(r.Calls, args)

	joined := strings.Join(args, " ")
	for prefix, err := range r.Errors {
		if strings.HasPrefix(joined, prefix) {
			return "", err
		}
	}
	for prefix, out := range r.Outputs {
		if strings.HasPrefix(joined, prefix) {
			return out, nil
		}
	}
	return "", nil
}

// CallStrings returns the recorded calls as space-joined strings.
func (r *RecordingExecutor) CallStrings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Calls))
	for i, args := range r.Calls {
		out[i] = strings.Join(args, " ")
	}
	return out
}
