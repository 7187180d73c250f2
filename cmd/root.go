package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/logger"
	"github.com/abhisek/wordiz/internal/metrics"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/tracing"
)

// Process-wide collaborators, built once in PersistentPreRunE.
var (
	cfg             *config.Config
	log             = zap.NewNop()
	appMetrics      *metrics.Metrics
	shutdownTracing = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "English practice for kids",
	Long: `Wordiz is a terminal app where children practice English sentences:
arrange shuffled words, fill in blanks, pick the right word and spot true
statements. Run it without arguments to play the built-in starter pack.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = log.Sync()
		return shutdownTracing(context.Background())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, playSource{})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(certificateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// consoleCommands may log to stderr. Every other command either owns the
// terminal or prints its own output.
var consoleCommands = map[string]bool{"serve": true}

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	logCfg := cfg.Log
	logCfg.Console = logCfg.Console && consoleCommands[cmd.Name()]
	l, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l.With(zap.String("command", cmd.Name()))

	appMetrics = metrics.New()

	shutdown, err := tracing.Init(cmd.Context(), cfg.Tracing, buildVersion(), log)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	} else {
		shutdownTracing = shutdown
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db setting (file or WORDIZ_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))
	return st, nil
}

// newProvider builds the configured LLM provider. events may be nil, in
// which case requests are not recorded.
func newProvider(ctx context.Context, events store.EventRepo) (llm.Provider, error) {
	lc, _ := cfg.LLM.Resolve()
	if err := lc.Validate(); err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, lc, llm.Deps{Events: events, Metrics: appMetrics, Log: log})
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
