package exercisegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/tracing"
)

// MaxSetSize caps Count in GenerateSet.
const MaxSetSize = 30

// GenerateSet produces in.Count exercises concurrently, cycling through
// in.Kinds. Sentences are de-duplicated across the set; a duplicate or a
// retryable rejection regenerates that slot up to cfg.Attempts times. The
// result keeps slot order. Any slot that still fails fails the set.
func GenerateSet(ctx context.Context, gen Generator, in SetInput, cfg Config) ([]exercise.Question, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	kinds := in.Kinds
	if len(kinds) == 0 {
		kinds = []exercise.Kind{exercise.KindArrangeWords}
	}
	prefix := in.IDPrefix
	if prefix == "" {
		prefix = "gen-" + uuid.NewString()[:8]
	}

	ctx, span := tracing.Tracer("wordiz/exercisegen").Start(ctx, "exercisegen.generate_set")
	defer span.End()
	span.SetAttributes(
		attribute.String("exercise.topic", in.Topic),
		attribute.Int("exercise.level", in.Level),
		attribute.Int("exercise.count", in.Count),
	)

	seen := newSentenceSet()
	out := make([]exercise.Question, in.Count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for i := range in.Count {
		input := GenerateInput{
			ID:    fmt.Sprintf("%s-%d", prefix, i+1),
			Topic: in.Topic,
			Level: in.Level,
			Kind:  kinds[i%len(kinds)],
		}
		g.Go(func() error {
			q, err := generateUnique(gctx, gen, input, seen, cfg)
			if err != nil {
				return fmt.Errorf("exercise %s: %w", input.ID, err)
			}
			out[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

// generateUnique retries one slot until it yields an accepted question whose
// sentence is new to the set.
func generateUnique(ctx context.Context, gen Generator, input GenerateInput, seen *sentenceSet, cfg Config) (exercise.Question, error) {
	attempts := max(cfg.Attempts, 1)
	var lastErr error

	for range attempts {
		input.UsedSentences = seen.list()

		q, err := gen.Generate(ctx, input)
		if err != nil {
			var genErr *GenerationError
			if errors.As(err, &genErr) && genErr.Retryable {
				lastErr = err
				input.Feedback = genErr.feedback()
				continue
			}
			return nil, err
		}

		sentence := sentenceOf(q)
		if !seen.add(sentence) {
			lastErr = &GenerationError{
				Kind:      q.Kind(),
				Reason:    fmt.Sprintf("duplicate sentence %q", sentence),
				Retryable: true,
			}
			input.Feedback = []string{"the sentence repeats one already used"}
			continue
		}
		return q, nil
	}
	return nil, lastErr
}

func (in SetInput) validate() error {
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if in.Level < MinLevel || in.Level > MaxLevel {
		return fmt.Errorf("level must be between %d and %d, got %d", MinLevel, MaxLevel, in.Level)
	}
	if in.Count < 1 || in.Count > MaxSetSize {
		return fmt.Errorf("count must be between 1 and %d, got %d", MaxSetSize, in.Count)
	}
	for _, k := range in.Kinds {
		if !IsSupportedKind(k) {
			return fmt.Errorf("unsupported exercise kind %q", k)
		}
	}
	return nil
}

// sentenceSet is the concurrency-safe de-duplication index of a set.
type sentenceSet struct {
	mu    sync.Mutex
	keys  map[string]struct{}
	order []string
}

func newSentenceSet() *sentenceSet {
	return &sentenceSet{keys: make(map[string]struct{})}
}

// add records s and reports whether it was new.
func (s *sentenceSet) add(sentence string) bool {
	key := normalizeSentence(sentence)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	s.order = append(s.order, sentence)
	return true
}

func (s *sentenceSet) list() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// sentenceOf returns the text that identifies q within a set.
func sentenceOf(q exercise.Question) string {
	switch q := q.(type) {
	case *exercise.MultipleChoice:
		return q.Prompt
	case *exercise.TrueFalse:
		return q.Statement
	}
	return exercise.Canonical(q)
}

// normalizeSentence lowercases and collapses whitespace.
func normalizeSentence(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
