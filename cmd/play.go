package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/certificate"
	"github.com/abhisek/wordiz/internal/exercise"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/pack"
	"github.com/abhisek/wordiz/internal/practice"
	"github.com/abhisek/wordiz/internal/screens/home"
	practicescreen "github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
)

// playSource selects where the questions of a play session come from. The
// zero value plays the starter pack.
type playSource struct {
	PackPath string
	Generate bool
	Set      exercisegen.SetInput
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Start a practice session in the terminal.

Questions come from the built-in starter pack, a pack file (--pack) or are
generated on the spot by the configured LLM (--generate).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := playSource{}
		src.PackPath, _ = cmd.Flags().GetString("pack")
		src.Generate, _ = cmd.Flags().GetBool("generate")
		if src.PackPath != "" && src.Generate {
			return fmt.Errorf("use --pack or --generate, not both")
		}
		if src.Generate {
			set, err := setInputFromFlags(cmd)
			if err != nil {
				return err
			}
			src.Set = set
		}
		return runPlay(cmd, src)
	},
}

func init() {
	playCmd.Flags().String("pack", "", "Exercise pack file (YAML or JSON)")
	playCmd.Flags().Bool("generate", false, "Generate the questions with the configured LLM")
	addSetFlags(playCmd)
}

// runPlay opens the store, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command, src playSource) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	questions, source, err := loadQuestions(ctx, st, src)
	if err != nil {
		return err
	}

	deps := practicescreen.Deps{
		Learner:  cfg.Learner,
		Source:   source,
		Recorder: practice.NewStoreRecorder(st.HistoryRepo()),
		Metrics:  appMetrics,
		Log:      log,
		Speaker:  newSpeaker(),
		CertDir:  cfg.Certificate.Dir,
	}
	if r, err := certificate.NewRenderer(cfg.Certificate.FontPath); err != nil {
		warnf("Certificates unavailable: %v", err)
	} else {
		deps.Certificates = r
	}

	log.Info("starting practice", zap.String("source", source), zap.Int("questions", len(questions)))
	return app.Run(ctx, home.Options{
		Questions: questions,
		Source:    source,
		History:   st.HistoryRepo(),
		Practice:  deps,
	})
}

func loadQuestions(ctx context.Context, st *store.Store, src playSource) ([]exercise.Question, string, error) {
	switch {
	case src.PackPath != "":
		p, err := pack.Load(src.PackPath)
		if err != nil {
			return nil, "", err
		}
		title := p.Title
		if title == "" {
			title = filepath.Base(src.PackPath)
		}
		return p.Questions, title, nil

	case src.Generate:
		provider, err := newProvider(ctx, st.EventRepo())
		if err != nil {
			return nil, "", fmt.Errorf("LLM provider: %w", err)
		}
		gen := exercisegen.New(provider, cfg.Generation, log)
		warnf("Generating %d exercises about %q...", src.Set.Count, src.Set.Topic)
		questions, err := exercisegen.GenerateSet(ctx, gen, src.Set, cfg.Generation)
		if err != nil {
			return nil, "", fmt.Errorf("generate exercises: %w", err)
		}
		return questions, src.Set.Topic, nil
	}

	p := pack.Starter()
	return p.Questions, p.Title, nil
}

// newSpeaker returns nil when speech is disabled or no engine is installed;
// the practice screen then skips read-aloud.
func newSpeaker() *speech.Speaker {
	if !cfg.Speech.Enabled {
		return nil
	}
	engine, err := speech.Detect(cfg.Speech.Command, cfg.Speech.Rate)
	if err != nil {
		if !errors.Is(err, speech.ErrUnavailable) || cfg.Speech.Command != "" {
			warnf("Read-aloud unavailable: %v", err)
		}
		log.Info("speech disabled", zap.Error(err))
		return nil
	}
	return speech.NewSpeaker(engine)
}
