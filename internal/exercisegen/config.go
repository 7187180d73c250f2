package exercisegen

// Config controls the behavior of the LLMGenerator and GenerateSet.
type Config struct {
	// MaxTokens is the token budget for one LLM response.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `mapstructure:"temperature"`

	// Concurrency caps in-flight generations in GenerateSet.
	Concurrency int `mapstructure:"concurrency"`

	// Attempts is how many times one exercise is regenerated after a
	// retryable rejection or a duplicate sentence.
	Attempts int `mapstructure:"attempts"`

	// MaxUsedSentences caps the already-used list sent in the prompt.
	MaxUsedSentences int `mapstructure:"max_used_sentences"`
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        1024,
		Temperature:      0.7,
		Concurrency:      4,
		Attempts:         3,
		MaxUsedSentences: 20,
	}
}
