// Package lessons generates lesson plans, stories, mind maps and mistake
// reviews with an LLM.
package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/llm"
)

// ErrInvalidInput is wrapped when a request is missing a topic, level or
// mistakes.
var ErrInvalidInput = errors.New("invalid lesson input")

// Service generates lesson material.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a lesson generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

var (
	schemas = map[Kind]*llm.Schema{
		KindPlan:    PlanSchema,
		KindStory:   StorySchema,
		KindMindMap: MindMapSchema,
		KindReview:  ReviewSchema,
	}
	purposes = map[Kind]string{
		KindPlan:    llm.PurposeLessonPlan,
		KindStory:   llm.PurposeStory,
		KindMindMap: llm.PurposeMindMap,
		KindReview:  llm.PurposeReview,
	}
)

// Plan generates a lesson plan.
func (s *Service) Plan(ctx context.Context, input Input) (*Plan, error) {
	var out Plan
	if err := s.generate(ctx, KindPlan, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Story generates a short story.
func (s *Service) Story(ctx context.Context, input Input) (*Story, error) {
	var out Story
	if err := s.generate(ctx, KindStory, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MindMap generates a vocabulary mind map.
func (s *Service) MindMap(ctx context.Context, input Input) (*MindMap, error) {
	var out MindMap
	if err := s.generate(ctx, KindMindMap, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Review generates feedback on recent mistakes. The topic is optional.
func (s *Service) Review(ctx context.Context, input Input) (*Review, error) {
	if len(input.Mistakes) == 0 {
		return nil, fmt.Errorf("%w: review needs at least one mistake", ErrInvalidInput)
	}
	var out Review
	if err := s.generate(ctx, KindReview, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate dispatches on kind and returns the matching *Plan, *Story,
// *MindMap or *Review.
func (s *Service) Generate(ctx context.Context, kind Kind, input Input) (any, error) {
	switch kind {
	case KindPlan:
		return s.Plan(ctx, input)
	case KindStory:
		return s.Story(ctx, input)
	case KindMindMap:
		return s.MindMap(ctx, input)
	case KindReview:
		return s.Review(ctx, input)
	}
	return nil, fmt.Errorf("%w: unknown lesson kind %q", ErrInvalidInput, kind)
}

func (s *Service) generate(ctx context.Context, kind Kind, input Input, out any) error {
	if kind != KindReview && strings.TrimSpace(input.Topic) == "" {
		return fmt.Errorf("%w: %s: topic is required", ErrInvalidInput, kind)
	}
	if input.Level < 1 || input.Level > 5 {
		return fmt.Errorf("%w: %s: level must be between 1 and 5, got %d", ErrInvalidInput, kind, input.Level)
	}

	ctx = llm.WithPurpose(ctx, purposes[kind])
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(kind, input, s.cfg)},
		},
		Schema:      schemas[kind],
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation: %w", kind, err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("parse %s response: %w", kind, err)
	}
	return nil
}
