package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash-lite", resolveModel("gemini-2.0-flash-lite", geminiModels))
}

func TestGeminiSchema_FillBlanks(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "A fill-in-the-blanks question",
		"properties": map[string]any{
			"template":   map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "integer"},
			"kind":       map[string]any{"type": "string", "enum": []any{"fill_blanks", "arrange_words"}},
			"tokens": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": 4,
			},
			"is_true": map[string]any{"type": "boolean"},
			"score":   map[string]any{"type": "number"},
		},
		"required": []string{"template", "tokens"},
	}

	s := geminiSchema(def)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "A fill-in-the-blanks question", s.Description)
	assert.Equal(t, []string{"template", "tokens"}, s.Required)
	require.Len(t, s.Properties, 6)

	wantTypes := map[string]genai.Type{
		"template":   genai.TypeString,
		"difficulty": genai.TypeInteger,
		"kind":       genai.TypeString,
		"tokens":     genai.TypeArray,
		"is_true":    genai.TypeBoolean,
		"score":      genai.TypeNumber,
	}
	for name, want := range wantTypes {
		assert.Equal(t, want, s.Properties[name].Type, name)
	}

	assert.Equal(t, []string{"fill_blanks", "arrange_words"}, s.Properties["kind"].Enum)
	tokens := s.Properties["tokens"]
	require.NotNil(t, tokens.Items)
	assert.Equal(t, genai.TypeString, tokens.Items.Type)
	require.NotNil(t, tokens.MinItems)
	require.NotNil(t, tokens.MaxItems)
	assert.Equal(t, int64(1), *tokens.MinItems)
	assert.Equal(t, int64(4), *tokens.MaxItems)
}

func TestGeminiContents_Roles(t *testing.T) {
	c := geminiContents([]Message{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
	})
	require.Len(t, c, 2)
	assert.Equal(t, string(genai.RoleUser), c[0].Role)
	assert.Equal(t, string(genai.RoleModel), c[1].Role)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, stringList([]any{"a", 1, "b"}))
	assert.Nil(t, stringList("a"))
}
