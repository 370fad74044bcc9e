package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordchain/internal/config"
	"github.com/robalobadob/wordchain/internal/db"
	"github.com/robalobadob/wordchain/internal/game"
	"github.com/robalobadob/wordchain/internal/hint"
	"github.com/robalobadob/wordchain/internal/httpserver"
	"github.com/robalobadob/wordchain/internal/store"
)

var servePort string

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default: $PORT or 5175)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	setupLogging(cfg, false)
	if servePort != "" {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB); err != nil {
		return err
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	v := newValidator(cfg, src)

	hints, closeHints := openHints(ctx, cfg, v)
	defer closeHints()

	srv := httpserver.New(cfg, store.NewMemoryStore(), sqlDB, v, hints)
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Bool("hints", hints != nil).Msg("starting wordchain server")
	return srv.Start(ctx, ":"+cfg.Port)
}

// openHints connects the Gemini hint engine when GEMINI_API_KEY is set.
// A failed connection disables hints instead of stopping the server.
func openHints(ctx context.Context, cfg *config.Config, v *game.Validator) (*hint.Engine, func()) {
	if cfg.GeminiAPIKey == "" {
		return nil, func() {}
	}
	gm, err := hint.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn().Err(err).Msg("hints disabled")
		return nil, func() {}
	}
	return hint.NewEngine(gm, v), func() {
		if err := gm.Close(); err != nil {
			log.Warn().Err(err).Msg("close gemini client")
		}
	}
}
