package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/pack"
	"github.com/abhisek/wordiz/internal/practice"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Preview LLM-generated exercises (no database)",
	Long: `Generate a set of exercises for a topic and print them.

This is a stateless tool: nothing is written to the database. Use --out to
save the set as a pack file and --quiz to answer the exercises right away.`,
	RunE: runGenerate,
}

func init() {
	addSetFlags(generateCmd)
	generateCmd.Flags().StringP("out", "o", "", "Write the exercises to a pack file (YAML)")
	generateCmd.Flags().Bool("quiz", false, "Answer the generated exercises interactively")
	_ = generateCmd.MarkFlagRequired("topic")
}

// addSetFlags registers the flags describing an exercise set.
func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().String("topic", "", "Topic of the sentences, e.g. \"animals at the zoo\"")
	cmd.Flags().Int("level", 1, "Reading level, 1-5")
	cmd.Flags().Int("count", 5, "Number of exercises")
	cmd.Flags().StringSlice("kind", nil, "Exercise kinds to cycle through: arrange, fill, choice, truefalse")
}

func setInputFromFlags(cmd *cobra.Command) (exercisegen.SetInput, error) {
	topic, _ := cmd.Flags().GetString("topic")
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	kindVals, _ := cmd.Flags().GetStringSlice("kind")

	if strings.TrimSpace(topic) == "" {
		return exercisegen.SetInput{}, fmt.Errorf("--topic is required")
	}
	kinds, err := parseKinds(kindVals)
	if err != nil {
		return exercisegen.SetInput{}, err
	}
	return exercisegen.SetInput{Topic: topic, Level: level, Count: count, Kinds: kinds}, nil
}

var kindAliases = map[string]exercise.Kind{
	"arrange":         exercise.KindArrangeWords,
	"arrange_words":   exercise.KindArrangeWords,
	"fill":            exercise.KindFillBlanks,
	"fill_blanks":     exercise.KindFillBlanks,
	"choice":          exercise.KindMultipleChoice,
	"mc":              exercise.KindMultipleChoice,
	"multiple_choice": exercise.KindMultipleChoice,
	"truefalse":       exercise.KindTrueFalse,
	"tf":              exercise.KindTrueFalse,
	"true_false":      exercise.KindTrueFalse,
}

// parseKinds maps kind names and short aliases to exercise kinds.
func parseKinds(vals []string) ([]exercise.Kind, error) {
	var kinds []exercise.Kind
	for _, v := range vals {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")
		k, ok := kindAliases[key]
		if !ok {
			return nil, fmt.Errorf("invalid kind %q: must be arrange, fill, choice or truefalse", v)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	set, err := setInputFromFlags(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	quiz, _ := cmd.Flags().GetBool("quiz")

	// No EventRepo: this tool never opens the database.
	provider, err := newProvider(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := exercisegen.New(provider, cfg.Generation, log)

	fmt.Printf("Topic: %s (level %d)\n", set.Topic, set.Level)
	fmt.Printf("Generating %d exercises...\n\n", set.Count)

	questions, err := exercisegen.GenerateSet(ctx, gen, set, cfg.Generation)
	if err != nil {
		return fmt.Errorf("generate exercises: %w", err)
	}

	if out != "" {
		p := &pack.Pack{Title: set.Topic, Level: set.Level, Questions: questions}
		if err := pack.Write(out, p); err != nil {
			return err
		}
		fmt.Printf("Wrote %d exercises to %s\n\n", len(questions), out)
	}

	if quiz {
		return runQuiz(cmd, questions, os.Stdin, os.Stdout)
	}
	for i, q := range questions {
		printQuestion(os.Stdout, i+1, len(questions), q, nil)
		fmt.Printf("Answer: %s\n", exercise.Canonical(q))
		if expl := exercise.ExplanationOf(q); expl != "" {
			fmt.Printf("Explanation: %s\n", expl)
		}
		fmt.Println()
	}
	return nil
}

func printQuestion(w io.Writer, n, total int, q exercise.Question, bank []string) {
	fmt.Fprintf(w, "── Exercise %d/%d (%s) ──\n", n, total, q.Kind())
	switch q := q.(type) {
	case *exercise.ArrangeWords:
		fmt.Fprintln(w, "Put the words in order:")
		if q.Translation != "" {
			fmt.Fprintf(w, "  (%s)\n", q.Translation)
		}
	case *exercise.FillBlanks:
		fmt.Fprintln(w, q.Template)
		if q.Translation != "" {
			fmt.Fprintf(w, "  (%s)\n", q.Translation)
		}
	case *exercise.MultipleChoice:
		fmt.Fprintln(w, q.Prompt)
		for j, c := range q.Choices {
			fmt.Fprintf(w, "  %d) %s\n", j+1, c)
		}
	case *exercise.TrueFalse:
		fmt.Fprintf(w, "True or false? %s\n", q.Statement)
	}
	if bank == nil {
		bank = exercise.BankTokens(q)
	}
	if len(bank) > 0 {
		fmt.Fprintf(w, "Words: %s\n", strings.Join(bank, " | "))
	}
}

// runQuiz plays questions on plain stdin/stdout through a practice session,
// so scoring matches the TUI.
func runQuiz(cmd *cobra.Command, questions []exercise.Question, in io.Reader, w io.Writer) error {
	ctx := cmd.Context()
	s, skipped, err := practice.New(ctx, questions, practice.Options{Metrics: appMetrics, Log: log})
	for _, sk := range skipped {
		fmt.Fprintf(w, "Skipping %s: %d problems\n", sk.QuestionID, len(exercise.Errors(sk.Findings)))
	}
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for i := 0; i < s.Len(); i++ {
		q := s.Question(i)
		bank, _ := s.WordBank(q.QuestionID())
		printQuestion(w, i+1, s.Len(), q, bank)
		s.Mark()

		fmt.Fprint(w, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(w, "\n(input closed)")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Fprint(w, "(skipped)\n\n")
			continue
		}

		res, err := s.Submit(ctx, q.QuestionID(), quizAnswer(q, input))
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(w, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(w, "\033[31m✗ Not quite.\033[0m Answer: %s\n", res.Canonical)
		}
		if expl := exercise.ExplanationOf(q); expl != "" {
			fmt.Fprintf(w, "Explanation: %s\n", expl)
		}
		fmt.Fprintln(w)
	}

	score := s.Finish(ctx)
	fmt.Fprintf(w, "── Summary: %d/%d correct, %d stars ──\n", score.Correct, score.Total, score.Stars())
	return nil
}

// quizAnswer reads typed input the way the question expects it: a sentence
// for arrange-words, the missing words for fill-blanks, text otherwise.
func quizAnswer(q exercise.Question, input string) practice.Answer {
	switch q.(type) {
	case *exercise.ArrangeWords:
		return practice.Tokens(exercise.Tokenize(input)...)
	case *exercise.FillBlanks:
		return practice.Tokens(strings.Fields(input)...)
	}
	return practice.Text(input)
}
