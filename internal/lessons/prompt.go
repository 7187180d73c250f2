package lessons

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a warm, patient English teacher for children aged 6-12 who are learning English.
Use short sentences and everyday words. Never use sarcasm. Every sentence starts with a capital letter and ends with punctuation.`

// taskPrompt is the per-kind instruction.
var taskPrompt = map[Kind]string{
	KindPlan:    "Write a 20-30 minute lesson plan on the topic with clear objectives, key vocabulary and simple activities.",
	KindStory:   "Write a short story on the topic, a small glossary of harder words, and comprehension questions with answers.",
	KindMindMap: "Build a vocabulary mind map with the topic at the centre and a few themed branches of words.",
	KindReview:  "Look at the child's recent mistakes. Explain kindly what went wrong and give practical tips.",
}

func buildUserMessage(kind Kind, input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n", taskPrompt[kind])
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	fmt.Fprintf(&b, "Level: %d of 5\n", input.Level)

	if kind == KindReview {
		b.WriteString("\nRecent mistakes:\n")
		mistakes := input.Mistakes
		if cfg.MaxMistakes > 0 && len(mistakes) > cfg.MaxMistakes {
			mistakes = mistakes[len(mistakes)-cfg.MaxMistakes:]
		}
		if len(mistakes) == 0 {
			b.WriteString("None\n")
		}
		for _, m := range mistakes {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	return b.String()
}
