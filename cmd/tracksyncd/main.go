package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/soundtoys/tracksync/internal/config"
	"github.com/soundtoys/tracksync/internal/logging"
	"github.com/soundtoys/tracksync/internal/player"
)

func main() {
	configPath := flag.String("config", "player.toml", "TOML player config file")
	flag.Parse()

	logging.ConfigureRuntime("tracksyncd")

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tracksyncd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Info().
		Str("mode", cfg.Mode).
		Str("editor", fmt.Sprintf("%s:%d", cfg.EditorHost, cfg.EditorPort)).
		Strs("tracks", cfg.Tracks).
		Msg("player starting")

	p := player.New(cfg)

	if cfg.StatusAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		router := player.NewStatusRouter(p, cfg.CorsOrigins)
		go func() {
			if err := router.Run(cfg.StatusAddr); err != nil {
				log.Error().Err(err).Msg("status server failed")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return p.Run(ctx)
}
