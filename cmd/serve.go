package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordiz/internal/cache"
	"github.com/abhisek/wordiz/internal/exercisegen"
	"github.com/abhisek/wordiz/internal/lessons"
	"github.com/abhisek/wordiz/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve validation, answer checking, generation and history over HTTP.

Generation and lesson endpoints need a configured LLM provider; without one
they answer 503 and everything else keeps working.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		c := cache.New(ctx, cfg.Cache, log)
		defer c.Close()

		deps := server.Deps{
			History:   st.HistoryRepo(),
			GenConfig: cfg.Generation,
			Cache:     c,
			CacheTTL:  cfg.Cache.TTL,
			Metrics:   appMetrics,
			Log:       log,
			Ping:      st.Ping,
			Version:   buildVersion(),
		}

		provider, err := newProvider(ctx, st.EventRepo())
		if err != nil {
			log.Warn("LLM provider not configured, generation disabled", zap.Error(err))
		} else {
			deps.Generator = exercisegen.New(provider, cfg.Generation, log)
			deps.Lessons = lessons.NewService(provider, lessons.DefaultConfig())
		}

		return server.New(cfg.Server, deps).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
