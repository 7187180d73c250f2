package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentenceSchema = &Schema{
	Name: "test-sentence",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"sentence": map[string]any{"type": "string"}},
		"required":   []any{"sentence"},
	},
}

// replyWith serves body as JSON with the given status and, when sent is
// non-nil, decodes the incoming request body into it.
func replyWith(t *testing.T, status int, body any, sent *map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if sent != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(sent))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var sent map[string]any
	p := newTestOpenAIProvider(t, replyWith(t, http.StatusOK,
		chatCompletion(`{"sentence":"The dog runs fast."}`, "stop"), &sent))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write English exercises for children.",
		Messages:  []Message{{Role: RoleUser, Content: "One arrange-words question."}},
		MaxTokens: 256,
		Schema:    sentenceSchema,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"sentence":"The dog runs fast."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "gpt-4o-mini", sent["model"])
	assert.EqualValues(t, 256, sent["max_completion_tokens"])
	format, _ := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIProvider_SchemaValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		finish  string
		wantErr any
	}{
		{name: "conforming", content: `{"sentence":"I like apples."}`, finish: "stop"},
		{name: "missing field", content: `{"text":"I like apples."}`, finish: "stop", wantErr: new(*ErrInvalidResponse)},
		{name: "truncated", content: `{"sentence":"I like`, finish: "length", wantErr: new(*ErrMaxTokensExceeded)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, replyWith(t, http.StatusOK, chatCompletion(tt.content, tt.finish), nil))
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
				Schema:   sentenceSchema,
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorAs(t, err, tt.wantErr)
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []any{}
	p := newTestOpenAIProvider(t, replyWith(t, http.StatusOK, body, nil))

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		status  int
		errType string
		wantErr any
	}{
		{http.StatusTooManyRequests, "tokens", new(*ErrRateLimit)},
		{http.StatusUnauthorized, "invalid_request_error", new(*ErrAuth)},
		{http.StatusNotFound, "invalid_request_error", new(*ErrBadRequest)},
		{http.StatusInternalServerError, "server_error", new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, replyWith(t, tt.status, map[string]any{
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

func TestOpenAIMessages_SystemFirst(t *testing.T) {
	msgs := openAIMessages(Request{
		System: "sys",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello"},
		},
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"system", "user", "assistant"},
		[]string{msgs[0].Role, msgs[1].Role, msgs[2].Role})

	assert.Len(t, openAIMessages(Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}), 1)
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(ProviderConfig{Model: "gpt-4o"})
	require.Error(t, err)

	p, err := NewOpenAIProvider(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://llm.example.test/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
