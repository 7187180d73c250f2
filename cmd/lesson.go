package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/lessons"
	"github.com/abhisek/wordiz/internal/store"
)

// reviewMistakes caps the mistakes sent to the review prompt.
const reviewMistakes = 10

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate lesson material with the configured LLM",
}

func newLessonCmd(kind lessons.Kind, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLesson(cmd, kind)
		},
	}
	c.Flags().String("topic", "", "Lesson topic")
	c.Flags().Int("level", 1, "Reading level, 1-5")
	if kind != lessons.KindReview {
		_ = c.MarkFlagRequired("topic")
	}
	return c
}

func init() {
	lessonCmd.AddCommand(newLessonCmd(lessons.KindPlan, "Write a short lesson plan"))
	lessonCmd.AddCommand(newLessonCmd(lessons.KindStory, "Write a short story with questions"))
	lessonCmd.AddCommand(newLessonCmd(lessons.KindMindMap, "Build a vocabulary mind map"))
	lessonCmd.AddCommand(newLessonCmd(lessons.KindReview, "Review recent mistakes from practice history"))
}

func runLesson(cmd *cobra.Command, kind lessons.Kind) error {
	ctx := cmd.Context()
	topic, _ := cmd.Flags().GetString("topic")
	level, _ := cmd.Flags().GetInt("level")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	input := lessons.Input{Topic: topic, Level: level}
	if kind == lessons.KindReview {
		input.Mistakes, err = recentMistakes(ctx, st.HistoryRepo(), reviewMistakes)
		if err != nil {
			return err
		}
		if len(input.Mistakes) == 0 {
			fmt.Println("No mistakes to review yet. Keep practicing!")
			return nil
		}
	}

	provider, err := newProvider(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	svc := lessons.NewService(provider, lessons.DefaultConfig())
	out, err := svc.Generate(ctx, kind, input)
	if err != nil {
		return fmt.Errorf("generate %s: %w", kind, err)
	}
	printLesson(os.Stdout, out)
	return nil
}

// recentMistakes walks recent sessions newest first and collects wrong
// first tries.
func recentMistakes(ctx context.Context, repo store.HistoryRepo, limit int) ([]string, error) {
	sessions, err := repo.RecentSessions(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	var out []string
	for _, s := range sessions {
		attempts, err := repo.SessionAttempts(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("load attempts: %w", err)
		}
		for _, a := range attempts {
			if !a.FirstTry || a.Correct {
				continue
			}
			out = append(out, fmt.Sprintf("expected %q got %q", a.Expected, a.Answer))
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func printLesson(w io.Writer, v any) {
	switch l := v.(type) {
	case *lessons.Plan:
		fmt.Fprintf(w, "%s (%d min)\n\n", l.Title, l.TotalMinutes())
		fmt.Fprintln(w, "Objectives:")
		for _, o := range l.Objectives {
			fmt.Fprintf(w, "  • %s\n", o)
		}
		printVocab(w, "Vocabulary", l.Vocabulary)
		for _, a := range l.Activities {
			fmt.Fprintf(w, "\n%s (%d min)\n", a.Name, a.Minutes)
			for i, s := range a.Steps {
				fmt.Fprintf(w, "  %d. %s\n", i+1, s)
			}
		}

	case *lessons.Story:
		fmt.Fprintf(w, "%s\n\n", l.Title)
		fmt.Fprintln(w, strings.Join(l.Paragraphs, "\n\n"))
		printVocab(w, "Glossary", l.Glossary)
		if len(l.Questions) > 0 {
			fmt.Fprintln(w, "\nQuestions:")
			for i, q := range l.Questions {
				fmt.Fprintf(w, "  %d. %s\n     → %s\n", i+1, q.Question, q.Answer)
			}
		}

	case *lessons.MindMap:
		fmt.Fprintln(w, l.Central)
		for i, b := range l.Branches {
			branch, indent := "├─", "│  "
			if i == len(l.Branches)-1 {
				branch, indent = "└─", "   "
			}
			fmt.Fprintf(w, "%s %s\n", branch, b.Label)
			for _, c := range b.Children {
				fmt.Fprintf(w, "%s  · %s\n", indent, c)
			}
		}

	case *lessons.Review:
		fmt.Fprintln(w, l.Summary)
		for _, t := range l.Tips {
			fmt.Fprintf(w, "  • %s\n", t)
		}
	}
}

func printVocab(w io.Writer, heading string, items []lessons.VocabItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, v := range items {
		fmt.Fprintf(w, "  %s: %s (%s)\n", v.Word, v.Meaning, v.Example)
	}
}
