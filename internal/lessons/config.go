package lessons

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxMistakes caps the mistakes sent for a review.
	MaxMistakes int
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1536,
		Temperature: 0.6,
		MaxMistakes: 10,
	}
}
