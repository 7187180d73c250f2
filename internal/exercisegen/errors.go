package exercisegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/exercise"
)

// ErrInvalidInput is wrapped by GenerateSet when the request itself is bad.
var ErrInvalidInput = errors.New("invalid generation input")

// GenerationError reports a generated question that could not be accepted.
type GenerationError struct {
	Kind exercise.Kind

	// Findings are the blocking validator findings, if validation failed.
	Findings []exercise.ValidationError

	// Reason is set when the rejection is not a validator finding.
	Reason string

	// Retryable reports whether regenerating is likely to help.
	Retryable bool
}

func (e *GenerationError) Error() string {
	if len(e.Findings) == 0 {
		return fmt.Sprintf("generated %s rejected: %s", e.Kind, e.Reason)
	}
	msgs := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		msgs[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("generated %s rejected: %s", e.Kind, strings.Join(msgs, "; "))
}

// feedback renders the rejection for the next prompt.
func (e *GenerationError) feedback() []string {
	if len(e.Findings) == 0 {
		return []string{e.Reason}
	}
	out := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		out[i] = f.Field + ": " + f.Message
	}
	return out
}
