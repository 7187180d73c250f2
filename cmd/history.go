package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent practice sessions and accuracy per exercise kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.HistoryRepo()
		sessions, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No practice sessions yet.")
			return nil
		}
		printSessions(os.Stdout, sessions)

		acc, err := repo.AccuracyByKind(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) > 0 {
			fmt.Println()
			printAccuracy(os.Stdout, acc)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}

func printSessions(w io.Writer, sessions []store.SessionRecord) {
	fmt.Fprintf(w, "%-8s  %-16s  %-12s  %-24s  %-7s  %s\n",
		"ID", "Started", "Learner", "Source", "Score", "Stars")
	fmt.Fprintln(w, strings.Repeat("─", 84))
	for _, s := range sessions {
		stars := "unfinished"
		if s.FinishedAt != nil {
			stars = strings.Repeat("★", s.Stars) + strings.Repeat("☆", 3-s.Stars)
		}
		learner := s.Learner
		if learner == "" {
			learner = "-"
		}
		fmt.Fprintf(w, "%-8s  %-16s  %-12s  %-24s  %-7s  %s\n",
			truncate(s.ID, 8),
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			truncate(learner, 12),
			truncate(s.Source, 24),
			fmt.Sprintf("%d/%d", s.Correct, s.Total),
			stars,
		)
	}
}

func printAccuracy(w io.Writer, acc []store.KindAccuracy) {
	fmt.Fprintln(w, "First-try accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 44))
	fmt.Fprintf(w, "%-18s  %8s  %7s  %5s\n", "Kind", "Attempts", "Correct", "%")
	for _, a := range acc {
		fmt.Fprintf(w, "%-18s  %8d  %7d  %4.0f%%\n", a.Kind, a.Attempts, a.Correct, a.Accuracy()*100)
	}
}
