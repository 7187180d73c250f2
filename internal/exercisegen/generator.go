// Package exercisegen produces English practice exercises with an LLM and
// accepts only those that pass the exercise content validator.
package exercisegen

import (
	"context"

	"github.com/abhisek/wordiz/internal/exercise"
)

// Generator produces exercise questions.
type Generator interface {
	// Generate produces a single question for the given input. The returned
	// question has passed exercise.Validate without blocking findings.
	Generate(ctx context.Context, input GenerateInput) (exercise.Question, error)
}
