package exercisegen

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/exercise"
)

const systemPrompt = `You write English practice exercises for children learning English.

Rules:
- Produce exactly one exercise of the requested kind about the given topic.
- Sentences are short, concrete and age-appropriate. Level 1 uses 3-5 simple words; level 5 may use up to 14 words with one clause.
- Every sentence starts with a capital letter and ends with ".", "!" or "?".
- Never put a space before punctuation.
- Tokens split words from punctuation: "A tiger is stronger than a lion." becomes ["A","tiger","is","stronger","than","a","lion","."].
- Contractions keep the apostrophe part as its own token: "I can't swim." becomes ["I","can","'t","swim","."].
- For arrange_words the word bank holds exactly the tokens, in the same order.
- For fill_blanks use ___ (three underscores) for every blank, one token per blank.
- For multiple_choice exactly one choice is correct and the answer repeats it verbatim.
- Leave fields that do not apply to the kind empty.
- Do not repeat any sentence from the "already used" list.`

// kindGuide is the per-kind instruction appended to the user message.
var kindGuide = map[exercise.Kind]string{
	exercise.KindArrangeWords:   "Write one sentence the child will rebuild from shuffled words.",
	exercise.KindFillBlanks:     "Write one sentence with one or two missing words the child picks from a word bank.",
	exercise.KindMultipleChoice: "Ask one vocabulary or grammar question with 3 or 4 choices.",
	exercise.KindTrueFalse:      "Write one statement about the topic that is clearly true or clearly false.",
}

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Kind: %s\n", input.Kind)
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Level: %d of %d\n", input.Level, MaxLevel)
	if guide, ok := kindGuide[input.Kind]; ok {
		fmt.Fprintf(&b, "Task: %s\n", guide)
	}

	b.WriteString("\nAlready used:\n")
	b.WriteString(numbered(input.UsedSentences, cfg.MaxUsedSentences))

	if len(input.Feedback) > 0 {
		b.WriteString("\n\nYour previous attempt was rejected:\n")
		b.WriteString(numbered(input.Feedback, 0))
	}

	return b.String()
}

// numbered formats items as a numbered list, keeping only the last max
// entries when max > 0. Returns "None" for an empty list.
func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
