// Package llm wraps the external text-generation CLI behind a small
// Client interface.
//
// The grouping and titling pipelines depend only on being able to submit
// one prompt, bound the number of agentic turns, and walk the returned
// response fragments. Fragments are a closed set of tagged variants so
// callers can switch exhaustively instead of sniffing fields.
package llm

import "context"

// FragmentKind identifies the kind of a response fragment.
type FragmentKind string

// Fragment kinds. Anything the CLI emits that is neither a final result
// nor assistant text (init events, tool traffic, hooks) maps to
// FragmentOther and is ignored by the extraction logic.
const (
	FragmentResult        FragmentKind = "result"
	FragmentAssistantText FragmentKind = "assistant_text"
	FragmentOther         FragmentKind = "other"
)

// Fragment is one response fragment in arrival order.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Request configures a single completion call.
type Request struct {
	// Prompt is the full prompt text.
	Prompt string

	// SystemPrompt optionally replaces the default system prompt.
	SystemPrompt string

	// Model selects the model; empty uses the CLI default.
	Model string

	// MaxTurns bounds agentic back-and-forth. Zero means no limit.
	MaxTurns int

	// JSONSchema forces structured output matching the schema.
	// Optional; the extraction logic does not require it.
	JSONSchema string
}

// Response holds everything a completion produced.
type Response struct {
	// Fragments are all response fragments in arrival order.
	Fragments []Fragment

	// Result is the terminal result payload, when one arrived.
	Result string

	// SessionID identifies the CLI session that served the request.
	SessionID string

	// NumTurns is the number of agentic turns taken.
	NumTurns int

	// IsError reports whether the CLI flagged the result as an error.
	IsError bool
}

// Client is the text-generation collaborator.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete submits one prompt and returns the collected response.
	// The context controls cancellation and the wall-clock timeout.
	Complete(ctx context.Context, req Request) (*Response, error)
}
