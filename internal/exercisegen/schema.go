package exercisegen

import "github.com/abhisek/wordiz/internal/llm"

// ExerciseSchema is the structured output every generation call requests.
// All properties are required so strict structured-output modes accept it;
// fields that do not apply to the kind are left empty.
var ExerciseSchema = &llm.Schema{
	Name:        "english-exercise",
	Description: "One English practice exercise for a child",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind": map[string]any{
				"type":        "string",
				"enum":        []any{"arrange_words", "fill_blanks", "multiple_choice", "true_false"},
				"description": "The exercise kind that was requested",
			},
			"sentence": map[string]any{
				"type":        "string",
				"description": "arrange_words: the correct sentence. fill_blanks: the full sentence with blanks filled. Otherwise empty.",
			},
			"tokens": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "arrange_words: the sentence split into words with punctuation as separate tokens. fill_blanks: the missing word for each blank, in order. Otherwise empty.",
			},
			"word_bank": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "arrange_words: exactly the tokens. fill_blanks: the missing words plus one or two distractors. Otherwise empty.",
			},
			"template": map[string]any{
				"type":        "string",
				"description": "fill_blanks: the sentence with ___ for each missing word. Otherwise empty.",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "multiple_choice: the question. Otherwise empty.",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "multiple_choice: 3 or 4 distinct options. Otherwise empty.",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "multiple_choice: the text of the correct option. Otherwise empty.",
			},
			"statement": map[string]any{
				"type":        "string",
				"description": "true_false: a statement a child can judge. Otherwise empty.",
			},
			"is_true": map[string]any{
				"type":        "boolean",
				"description": "true_false: whether the statement is true. Otherwise false.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two short sentences explaining the answer to a child",
			},
			"translation": map[string]any{
				"type":        "string",
				"description": "Optional translation hint; may be empty",
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     5,
				"description": "Self-assessed difficulty from 1 (easy) to 5 (hard)",
			},
		},
		"required": []any{
			"kind", "sentence", "tokens", "word_bank", "template", "prompt", "choices",
			"answer", "statement", "is_true", "explanation", "translation", "difficulty",
		},
		"additionalProperties": false,
	},
}
