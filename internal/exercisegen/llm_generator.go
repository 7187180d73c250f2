package exercisegen

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a new LLMGenerator. log may be nil.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// exerciseOutput is the raw LLM response before validation.
type exerciseOutput struct {
	Kind        string   `json:"kind"`
	Sentence    string   `json:"sentence"`
	Tokens      []string `json:"tokens"`
	WordBank    []string `json:"word_bank"`
	Template    string   `json:"template"`
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Statement   string   `json:"statement"`
	IsTrue      bool     `json:"is_true"`
	Explanation string   `json:"explanation"`
	Translation string   `json:"translation"`
	Difficulty  int      `json:"difficulty"`
}

// Generate produces a single question. Validator rejections are returned as
// *GenerationError; the caller decides whether to retry.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (exercise.Question, error) {
	if !IsSupportedKind(input.Kind) {
		return nil, fmt.Errorf("unsupported exercise kind %q", input.Kind)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExerciseGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw exerciseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if exercise.Kind(raw.Kind) != input.Kind {
		return nil, &GenerationError{
			Kind:      input.Kind,
			Reason:    fmt.Sprintf("asked for %s, got %q", input.Kind, raw.Kind),
			Retryable: true,
		}
	}

	q := toQuestion(input, raw)
	if err := g.accept(q); err != nil {
		return nil, err
	}
	return q, nil
}

// toQuestion maps the raw output onto the question type for input.Kind.
func toQuestion(input GenerateInput, raw exerciseOutput) exercise.Question {
	switch input.Kind {
	case exercise.KindArrangeWords:
		q := &exercise.ArrangeWords{
			ID:          input.ID,
			Tokens:      raw.Tokens,
			WordBank:    raw.WordBank,
			Answer:      raw.Sentence,
			Explanation: raw.Explanation,
			Translation: raw.Translation,
			Difficulty:  raw.Difficulty,
		}
		exercise.DeriveTokens(q)
		return q
	case exercise.KindFillBlanks:
		return &exercise.FillBlanks{
			ID:          input.ID,
			Template:    raw.Template,
			Tokens:      raw.Tokens,
			WordBank:    raw.WordBank,
			Explanation: raw.Explanation,
			Translation: raw.Translation,
			Difficulty:  raw.Difficulty,
		}
	case exercise.KindMultipleChoice:
		return &exercise.MultipleChoice{
			ID:          input.ID,
			Prompt:      raw.Prompt,
			Choices:     raw.Choices,
			Answer:      raw.Answer,
			Explanation: raw.Explanation,
			Difficulty:  raw.Difficulty,
		}
	default:
		return &exercise.TrueFalse{
			ID:          input.ID,
			Statement:   raw.Statement,
			Answer:      raw.IsTrue,
			Explanation: raw.Explanation,
			Difficulty:  raw.Difficulty,
		}
	}
}

// accept runs the content validator, repairing the word bank when that is
// the only problem.
func (g *LLMGenerator) accept(q exercise.Question) error {
	findings := exercise.Validate(q)
	if exercise.IsQuestionValid(findings) {
		return nil
	}

	if repaired, ok := repairWordBank(q, findings); ok {
		g.log.Debug("replaced generated word bank with answer tokens",
			zap.String("id", q.QuestionID()),
			zap.Int("findings", len(exercise.Errors(findings))))
		findings = exercise.Validate(repaired)
		if exercise.IsQuestionValid(findings) {
			return nil
		}
	}

	return &GenerationError{
		Kind:      q.Kind(),
		Findings:  exercise.Errors(findings),
		Retryable: true,
	}
}
