package lessons

import "github.com/abhisek/wordiz/internal/llm"

func stringArray(desc string, minItems, maxItems int) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"minItems":    minItems,
		"maxItems":    maxItems,
		"description": desc,
	}
}

var vocabItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"word":    map[string]any{"type": "string"},
		"meaning": map[string]any{"type": "string", "description": "Meaning in simple words"},
		"example": map[string]any{"type": "string", "description": "A short example sentence"},
	},
	"required":             []any{"word", "meaning", "example"},
	"additionalProperties": false,
}

// PlanSchema defines the JSON schema for lesson plans.
var PlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A short English lesson plan for children",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string", "description": "Lesson title (3-8 words)"},
			"objectives": stringArray("What the child will be able to do", 2, 4),
			"vocabulary": map[string]any{
				"type":     "array",
				"items":    vocabItem,
				"minItems": 4,
				"maxItems": 8,
			},
			"activities": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":    map[string]any{"type": "string"},
						"minutes": map[string]any{"type": "integer", "minimum": 2, "maximum": 20},
						"steps":   stringArray("Numbered steps for the teacher", 1, 5),
					},
					"required":             []any{"name", "minutes", "steps"},
					"additionalProperties": false,
				},
				"minItems": 2,
				"maxItems": 5,
			},
		},
		"required":             []any{"title", "objectives", "vocabulary", "activities"},
		"additionalProperties": false,
	},
}

// StorySchema defines the JSON schema for short stories.
var StorySchema = &llm.Schema{
	Name:        "short-story",
	Description: "A short story for young English readers with glossary and questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":      map[string]any{"type": "string"},
			"paragraphs": stringArray("2-4 short paragraphs", 2, 4),
			"glossary": map[string]any{
				"type":     "array",
				"items":    vocabItem,
				"minItems": 3,
				"maxItems": 6,
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"answer":   map[string]any{"type": "string"},
					},
					"required":             []any{"question", "answer"},
					"additionalProperties": false,
				},
				"minItems": 2,
				"maxItems": 4,
			},
		},
		"required":             []any{"title", "paragraphs", "glossary", "questions"},
		"additionalProperties": false,
	},
}

// MindMapSchema defines the JSON schema for vocabulary mind maps.
var MindMapSchema = &llm.Schema{
	Name:        "mind-map",
	Description: "A vocabulary mind map around a central topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"central": map[string]any{"type": "string", "description": "The central topic word"},
			"branches": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label":    map[string]any{"type": "string"},
						"children": stringArray("Words or short phrases", 2, 6),
					},
					"required":             []any{"label", "children"},
					"additionalProperties": false,
				},
				"minItems": 3,
				"maxItems": 6,
			},
		},
		"required":             []any{"central", "branches"},
		"additionalProperties": false,
	},
}

// ReviewSchema defines the JSON schema for mistake reviews.
var ReviewSchema = &llm.Schema{
	Name:        "mistake-review",
	Description: "Encouraging feedback on a child's recent mistakes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "description": "2-3 kind sentences about the mistakes"},
			"tips":    stringArray("Concrete tips (one sentence each)", 1, 4),
		},
		"required":             []any{"summary", "tips"},
		"additionalProperties": false,
	},
}
