package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/pack"
)

var validateCmd = &cobra.Command{
	Use:   "validate <pack>",
	Short: "Check an exercise pack for content problems",
	Long: `Run the content validator over every question of a pack file.

Errors block a question from being shown; warnings are cosmetic. The command
exits non-zero when any question has an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pack.Load(args[0])
		if err != nil {
			return err
		}
		blocked := reportFindings(os.Stdout, p)
		if blocked > 0 {
			return fmt.Errorf("%d of %d questions have blocking errors", blocked, len(p.Questions))
		}
		return nil
	},
}

// reportFindings prints the findings of every question in pack order and
// returns how many questions are blocked.
func reportFindings(w io.Writer, p *pack.Pack) int {
	findings := p.Validate()
	blocked, warned := 0, 0
	for _, q := range p.Questions {
		fs, ok := findings[q.QuestionID()]
		if !ok {
			continue
		}
		if exercise.IsQuestionValid(fs) {
			warned++
		} else {
			blocked++
		}
		fmt.Fprintf(w, "%s (%s)\n", q.QuestionID(), q.Kind())
		for _, f := range fs {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	fmt.Fprintf(w, "%d questions: %d ok, %d with warnings, %d blocked\n",
		len(p.Questions), len(p.Questions)-blocked-warned, warned, blocked)
	return blocked
}
