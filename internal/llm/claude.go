package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a completion call when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 2 * time.Minute

// ClaudeCLI implements Client using the Claude CLI binary in print mode
// with stream-json output.
type ClaudeCLI struct {
	path    string
	model   string
	workdir string
	timeout time.Duration
}

// ClaudeOption configures ClaudeCLI.
type ClaudeOption func(*ClaudeCLI)

// WithPath sets the path to the claude binary.
func WithPath(path string) ClaudeOption {
	return func(c *ClaudeCLI) { c.path = path }
}

// WithModel sets the default model.
func WithModel(model string) ClaudeOption {
	return func(c *ClaudeCLI) { c.model = model }
}

// WithWorkdir sets the working directory for claude commands.
func WithWorkdir(dir string) ClaudeOption {
	return func(c *ClaudeCLI) { c.workdir = dir }
}

// WithTimeout sets the default timeout for completion calls.
func WithTimeout(d time.Duration) ClaudeOption {
	return func(c *ClaudeCLI) { c.timeout = d }
}

// NewClaudeCLI creates a new Claude CLI client.
// Assumes "claude" is available in PATH unless overridden with WithPath.
func NewClaudeCLI(opts ...ClaudeOption) *ClaudeCLI {
	c := &ClaudeCLI{
		path:    "claude",
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete implements Client. It runs the CLI once, collects every
// stream-json line as a Fragment, and returns when the process exits.
func (c *ClaudeCLI) Complete(ctx context.Context, req Request) (*Response, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.path, c.buildArgs(req)...)
	if c.workdir != "" {
		cmd.Dir = c.workdir
	}
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, NewError("complete", fmt.Errorf("create stdout pipe: %w", err), false)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, NewError("complete", ErrCLINotFound, false)
		}
		return nil, NewError("complete", fmt.Errorf("start command: %w", err), false)
	}

	resp := &Response{}

	scanner := bufio.NewScanner(stdout)
	// Large assistant messages need a generous buffer.
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		frag, meta, err := parseStreamLine(line)
		if err != nil {
			slog.Debug("skipping unparseable stream line", "error", err)
			continue
		}
		resp.Fragments = append(resp.Fragments, frag)
		if meta != nil {
			if meta.sessionID != "" && resp.SessionID == "" {
				resp.SessionID = meta.sessionID
			}
			if frag.Kind == FragmentResult {
				resp.Result = frag.Text
				resp.NumTurns = meta.numTurns
				resp.IsError = meta.isError
			}
		}
	}

	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return nil, NewError("complete", fmt.Errorf("read output: %w", err), false)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, NewError("complete", ErrTimeout, true)
		}
		// A non-zero exit with a captured result still counts as a response;
		// the caller decides what to make of IsError.
		if resp.Result == "" && len(resp.Fragments) == 0 {
			return nil, NewError("complete", fmt.Errorf("command failed: %w", err), isRetryableMessage(err.Error()))
		}
	}

	return resp, nil
}

// buildArgs constructs the CLI argument list for a request.
// Print mode with stream-json output; --verbose is required by the CLI
// for stream-json in print mode.
func (c *ClaudeCLI) buildArgs(req Request) []string {
	args := []string{"-p", "--output-format", "stream-json", "--verbose"}

	if req.SystemPrompt != "" {
		args = append(args, "--system-prompt", req.SystemPrompt)
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}
	if model != "" {
		args = append(args, "--model", model)
	}

	if req.MaxTurns > 0 {
		args = append(args, "--max-turns", fmt.Sprintf("%d", req.MaxTurns))
	}

	if req.JSONSchema != "" {
		args = append(args, "--json-schema", req.JSONSchema)
	}

	// The prompt is a positional argument.
	args = append(args, req.Prompt)
	return args
}

// lineMeta carries fields of interest beyond the fragment itself.
type lineMeta struct {
	sessionID string
	numTurns  int
	isError   bool
}

// parseStreamLine converts one stream-json line into a Fragment.
// Unknown event types are valid input and map to FragmentOther.
func parseStreamLine(line []byte) (Fragment, *lineMeta, error) {
	var base struct {
		Type      string `json:"type"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(line, &base); err != nil {
		return Fragment{}, nil, err
	}

	meta := &lineMeta{sessionID: base.SessionID}

	switch base.Type {
	case "result":
		var res struct {
			Result           string          `json:"result"`
			StructuredOutput json.RawMessage `json:"structured_output"`
			NumTurns         int             `json:"num_turns"`
			IsError          bool            `json:"is_error"`
		}
		if err := json.Unmarshal(line, &res); err != nil {
			return Fragment{}, nil, err
		}
		meta.numTurns = res.NumTurns
		meta.isError = res.IsError
		text := res.Result
		if len(res.StructuredOutput) > 0 {
			text = string(res.StructuredOutput)
		}
		return Fragment{Kind: FragmentResult, Text: text}, meta, nil

	case "assistant":
		var wrapper struct {
			Message struct {
				Content []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"content"`
			} `json:"message"`
		}
		if err := json.Unmarshal(line, &wrapper); err != nil {
			return Fragment{}, nil, err
		}
		var text strings.Builder
		for _, block := range wrapper.Message.Content {
			if block.Type == "text" {
				text.WriteString(block.Text)
			}
		}
		return Fragment{Kind: FragmentAssistantText, Text: text.String()}, meta, nil

	default:
		return Fragment{Kind: FragmentOther}, meta, nil
	}
}
