package llm

import (
	"context"
	"sync"
)

// MockClient is a test double for Client.
// It serves scripted responses or errors and records every request.
type MockClient struct {
	mu        sync.Mutex
	responses []*Response
	idx       int
	err       error

	// Calls tracks all requests for assertions.
	Calls []Request
}

// NewMockClient creates a mock serving the given responses in order,
// cycling back to the first when exhausted.
func NewMockClient(responses ...*Response) *MockClient {
	return &MockClient{responses: responses}
}

// TextResponse builds a Response containing a single result fragment.
// Convenience for the common mock case.
func TextResponse(text string) *Response {
	return &Response{
		Fragments: []Fragment{{Kind: FragmentResult, Text: text}},
		Result:    text,
	}
}

// AssistantResponse builds a Response containing assistant text fragments
// in order, with no terminal result.
func AssistantResponse(texts ...string) *Response {
	resp := &Response{}
	for _, t := range texts {
		resp.Fragments = append(resp.Fragments, Fragment{Kind: FragmentAssistantText, Text: t})
	}
	return resp
}

// WithError configures the mock to always return an error.
func (m *MockClient) WithError(err error) *MockClient {
	m.err = err
	return m
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.err != nil {
		return nil, m.err
	}

	if len(m.responses) == 0 {
		return &Response{}, nil
	}
	resp := m.responses[m.idx%len(m.responses)]
	m.idx++
	return resp, nil
}
