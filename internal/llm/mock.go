package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Reply marshals v into a MockResponse. It panics on values that cannot be
// encoded, which only happens with programming errors in tests.
func Reply(v any) MockResponse {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("llm: mock reply: %v", err))
	}
	return MockResponse{Content: data, Usage: Usage{InputTokens: 10, OutputTokens: len(data) / 4, TotalTokens: 10 + len(data)/4}}
}

// Fail is a MockResponse that returns err.
func Fail(err error) MockResponse {
	return MockResponse{Err: err}
}

// MockProvider serves queued replies in order and records every request
// together with the purpose found in its context. When the queue is empty
// it asks Fallback, and without one it reports the provider unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse

	// Fallback answers requests once the queue is drained. Optional.
	Fallback func(Request) MockResponse

	// Model is reported by ModelID and on every response. Default "mock".
	Model string

	Calls    []Request
	Purposes []string
}

// NewMockProvider creates a MockProvider with the given queued replies.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses, Model: "mock"}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))

	var (
		resp MockResponse
		ok   bool
	)
	if len(m.responses) > 0 {
		resp, ok = m.responses[0], true
		m.responses = m.responses[1:]
	}
	fallback := m.Fallback
	m.mu.Unlock()

	if !ok {
		if fallback == nil {
			return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock: no reply queued")}
		}
		resp = fallback(req)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	if m.Model == "" {
		return "mock"
	}
	return m.Model
}

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many queued replies are left.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
