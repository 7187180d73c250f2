package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func exerciseTestSchema() *Schema {
	return &Schema{
		Name:        "test-exercise",
		Description: "An arrange-words exercise",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sentence":   map[string]any{"type": "string"},
				"tokens":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
				"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"kind":       map[string]any{"type": "string", "enum": []string{"arrange_words", "fill_blanks"}},
			},
			"required": []string{"sentence", "tokens"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "full object", raw: `{"sentence":"I am happy.","tokens":["I","am","happy","."],"difficulty":1,"kind":"arrange_words"}`},
		{name: "optional fields omitted", raw: `{"sentence":"Go!","tokens":["Go","!"]}`},
		{name: "missing required", raw: `{"sentence":"I am happy."}`, wantErr: true},
		{name: "wrong type", raw: `{"sentence":"Hi.","tokens":"Hi ."}`, wantErr: true},
		{name: "wrong item type", raw: `{"sentence":"Hi.","tokens":[1,2]}`, wantErr: true},
		{name: "too few items", raw: `{"sentence":"Hi.","tokens":["Hi"]}`, wantErr: true},
		{name: "out of range", raw: `{"sentence":"Hi.","tokens":["Hi","."],"difficulty":9}`, wantErr: true},
		{name: "bad enum", raw: `{"sentence":"Hi.","tokens":["Hi","."],"kind":"essay"}`, wantErr: true},
		{name: "malformed JSON", raw: `{not json}`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(exerciseTestSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("error content = %q, want the raw response", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`"free text"`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CachesBySchemaName(t *testing.T) {
	schema := &Schema{
		Name:       "test-cache",
		Definition: map[string]any{"type": "object", "required": []any{"id"}},
	}
	if err := validateResponse(schema, json.RawMessage(`{"id":1}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, ok := compiledSchemas.Load("test-cache"); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
	if err := validateResponse(schema, json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected cached schema to reject a missing id")
	}
}
