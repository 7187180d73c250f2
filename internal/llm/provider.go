package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt. Implementations wrap
// one vendor SDK; decorators add retries, logging and tracing.
type Provider interface {
	// Generate runs one completion. With req.Schema set the Content of the
	// response is JSON that has been validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, which may differ from the model that
	// actually served a response.
	ModelID() string
}

// Request is a single-turn or short multi-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for native structured output. Nil means free text, which
	// is returned as a JSON string.
	Schema *Schema

	// MaxTokens caps the response. Zero uses defaultMaxTokens.
	MaxTokens int

	// Temperature is 0-1; zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name becomes the Anthropic tool name and
// the OpenAI schema name, so keep it kebab-case ("exercise", "lesson-plan").
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalised to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
