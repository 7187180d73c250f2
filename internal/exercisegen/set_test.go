package exercisegen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/exercise"
)

// scriptedGenerator answers from a function and records inputs.
type scriptedGenerator struct {
	mu     sync.Mutex
	calls  []GenerateInput
	answer func(n int, in GenerateInput) (exercise.Question, error)
}

func (s *scriptedGenerator) Generate(_ context.Context, in GenerateInput) (exercise.Question, error) {
	s.mu.Lock()
	s.calls = append(s.calls, in)
	n := len(s.calls)
	s.mu.Unlock()
	return s.answer(n, in)
}

func sentenceQuestion(id, sentence string) exercise.Question {
	q := &exercise.ArrangeWords{ID: id, Answer: sentence}
	exercise.DeriveTokens(q)
	return q
}

func TestGenerateSet_OrderAndKinds(t *testing.T) {
	gen := &scriptedGenerator{answer: func(_ int, in GenerateInput) (exercise.Question, error) {
		switch in.Kind {
		case exercise.KindTrueFalse:
			return &exercise.TrueFalse{ID: in.ID, Statement: "Statement " + in.ID + "."}, nil
		default:
			return sentenceQuestion(in.ID, "Sentence "+in.ID+"."), nil
		}
	}}

	qs, err := GenerateSet(context.Background(), gen, SetInput{
		Topic:    "pets",
		Level:    1,
		Count:    5,
		Kinds:    []exercise.Kind{exercise.KindArrangeWords, exercise.KindTrueFalse},
		IDPrefix: "set",
	}, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, qs, 5)

	for i, q := range qs {
		assert.Equal(t, fmt.Sprintf("set-%d", i+1), q.QuestionID())
		want := exercise.KindArrangeWords
		if i%2 == 1 {
			want = exercise.KindTrueFalse
		}
		assert.Equal(t, want, q.Kind())
	}
}

func TestGenerateSet_DefaultsToArrangeWords(t *testing.T) {
	gen := &scriptedGenerator{answer: func(_ int, in GenerateInput) (exercise.Question, error) {
		return sentenceQuestion(in.ID, "Sentence "+in.ID+"."), nil
	}}

	qs, err := GenerateSet(context.Background(), gen, SetInput{Topic: "pets", Level: 1, Count: 2}, DefaultConfig())
	require.NoError(t, err)
	for _, q := range qs {
		assert.Equal(t, exercise.KindArrangeWords, q.Kind())
		assert.Regexp(t, `^gen-[0-9a-f]{8}-\d$`, q.QuestionID())
	}
}

func TestGenerateSet_RetriesDuplicates(t *testing.T) {
	gen := &scriptedGenerator{answer: func(n int, in GenerateInput) (exercise.Question, error) {
		if n <= 2 {
			return sentenceQuestion(in.ID, "The cat sleeps."), nil
		}
		return sentenceQuestion(in.ID, "The dog barks."), nil
	}}
	cfg := DefaultConfig()
	cfg.Concurrency = 1

	qs, err := GenerateSet(context.Background(), gen, SetInput{Topic: "pets", Level: 1, Count: 2, IDPrefix: "p"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "The cat sleeps.", exercise.Canonical(qs[0]))
	assert.Equal(t, "The dog barks.", exercise.Canonical(qs[1]))

	require.Len(t, gen.calls, 3)
	assert.Equal(t, []string{"The cat sleeps."}, gen.calls[1].UsedSentences)
	assert.NotEmpty(t, gen.calls[2].Feedback)
}

func TestGenerateSet_DuplicateIgnoresCaseAndSpacing(t *testing.T) {
	s := newSentenceSet()
	assert.True(t, s.add("The cat  sleeps."))
	assert.False(t, s.add("the cat sleeps."))
	assert.Equal(t, []string{"The cat  sleeps."}, s.list())
}

func TestGenerateSet_RetryableThenSuccess(t *testing.T) {
	gen := &scriptedGenerator{answer: func(n int, in GenerateInput) (exercise.Question, error) {
		if n == 1 {
			return nil, &GenerationError{
				Kind:      in.Kind,
				Findings:  []exercise.ValidationError{{Field: "sentence", Message: "bad", Severity: exercise.SeverityError}},
				Retryable: true,
			}
		}
		return sentenceQuestion(in.ID, "I like milk."), nil
	}}

	qs, err := GenerateSet(context.Background(), gen, SetInput{Topic: "food", Level: 1, Count: 1}, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, []string{"sentence: bad"}, gen.calls[1].Feedback)
}

func TestGenerateSet_GivesUpAfterAttempts(t *testing.T) {
	gen := &scriptedGenerator{answer: func(_ int, in GenerateInput) (exercise.Question, error) {
		return nil, &GenerationError{Kind: in.Kind, Reason: "nope", Retryable: true}
	}}
	cfg := DefaultConfig()
	cfg.Attempts = 2

	_, err := GenerateSet(context.Background(), gen, SetInput{Topic: "food", Level: 1, Count: 1}, cfg)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Len(t, gen.calls, 2)
}

func TestGenerateSet_NonRetryableStops(t *testing.T) {
	boom := errors.New("provider down")
	gen := &scriptedGenerator{answer: func(int, GenerateInput) (exercise.Question, error) {
		return nil, boom
	}}

	_, err := GenerateSet(context.Background(), gen, SetInput{Topic: "food", Level: 1, Count: 1}, DefaultConfig())
	require.ErrorIs(t, err, boom)
	assert.Len(t, gen.calls, 1)
}

func TestGenerateSet_InvalidInput(t *testing.T) {
	gen := &scriptedGenerator{}
	tests := []struct {
		name string
		in   SetInput
	}{
		{"no topic", SetInput{Level: 1, Count: 1}},
		{"level too low", SetInput{Topic: "x", Level: 0, Count: 1}},
		{"level too high", SetInput{Topic: "x", Level: 6, Count: 1}},
		{"zero count", SetInput{Topic: "x", Level: 1}},
		{"count too large", SetInput{Topic: "x", Level: 1, Count: MaxSetSize + 1}},
		{"bad kind", SetInput{Topic: "x", Level: 1, Count: 1, Kinds: []exercise.Kind{"essay"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSet(context.Background(), gen, tt.in, DefaultConfig())
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, gen.calls)
}

func TestSentenceOf(t *testing.T) {
	assert.Equal(t, "Is it red?", sentenceOf(&exercise.MultipleChoice{Prompt: "Is it red?", Answer: "yes"}))
	assert.Equal(t, "Fish swim.", sentenceOf(&exercise.TrueFalse{Statement: "Fish swim.", Answer: true}))
	assert.Equal(t, "The cat sleeps.", sentenceOf(sentenceQuestion("a", "The cat sleeps.")))
}
