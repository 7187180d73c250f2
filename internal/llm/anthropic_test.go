package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(
		ProviderConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	content := []map[string]any{}
	if text != "" {
		content = append(content, map[string]any{"type": "text", "text": text})
	}
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var sent map[string]any
	p := newTestAnthropicProvider(t, replyWith(t, http.StatusOK,
		anthropicMessage(`{"sentence":"The cat is black."}`, "end_turn"), &sent))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write English exercises for children.",
		Messages:  []Message{{Role: RoleUser, Content: "Write one sentence."}},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.EqualValues(t, 256, sent["max_tokens"])
	system, _ := sent["system"].([]any)
	require.Len(t, system, 1)
	assert.Equal(t, "You write English exercises for children.", system[0].(map[string]any)["text"])
}

func TestAnthropicProvider_Replies(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		stop    string
		schema  *Schema
		wantErr any
	}{
		{name: "schema ok", text: `{"sentence":"Birds can fly."}`, stop: "end_turn", schema: sentenceSchema},
		{name: "schema violated", text: `{"words":["Birds"]}`, stop: "end_turn", schema: sentenceSchema, wantErr: new(*ErrInvalidResponse)},
		{name: "truncated with schema", text: `{"sentence":"Bir`, stop: "max_tokens", schema: sentenceSchema, wantErr: new(*ErrMaxTokensExceeded)},
		{name: "truncated free text", text: "Birds can", stop: "max_tokens"},
		{name: "no text block", stop: "end_turn", wantErr: new(*ErrInvalidResponse)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, replyWith(t, http.StatusOK, anthropicMessage(tt.text, tt.stop), nil))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
				Schema:   tt.schema,
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorAs(t, err, tt.wantErr)
		})
	}
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		status  int
		errType string
		wantErr any
	}{
		{http.StatusUnauthorized, "authentication_error", new(*ErrAuth)},
		{http.StatusTooManyRequests, "rate_limit_error", new(*ErrRateLimit)},
		{http.StatusBadRequest, "invalid_request_error", new(*ErrBadRequest)},
		{http.StatusInternalServerError, "api_error", new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(tt.errType, func(t *testing.T) {
			p := newTestAnthropicProvider(t, replyWith(t, tt.status, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": tt.errType, "message": "nope"},
			}, nil))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			assert.ErrorAs(t, err, tt.wantErr)
		})
	}
}

func TestAnthropicMessages_Roles(t *testing.T) {
	msgs := anthropicMessages([]Message{
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "draft"},
		{Role: RoleUser, Content: "fix it"},
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", string(msgs[0].Role))
	assert.Equal(t, "assistant", string(msgs[1].Role))
	assert.Equal(t, "user", string(msgs[2].Role))
}

func TestNewAnthropicProvider(t *testing.T) {
	_, err := NewAnthropicProvider(ProviderConfig{Model: "claude-haiku"})
	require.Error(t, err)

	tests := []struct {
		model string
		want  string
	}{
		{"claude-sonnet", "claude-sonnet-4-5-20250929"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		p, err := NewAnthropicProvider(ProviderConfig{APIKey: "k", Model: tt.model})
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.ModelID(), tt.model)
	}
}
