package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkaverin/streamcast/internal/adapters/http"
	wssignal "github.com/dkaverin/streamcast/internal/adapters/signal"
	"github.com/dkaverin/streamcast/internal/app"
	"github.com/dkaverin/streamcast/internal/config"
	"github.com/dkaverin/streamcast/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	reg := core.NewRegistry()
	ctl := &app.Controller{
		Registry: reg,
		Presence: &app.Presence{Registry: reg},
		Relay:    &app.Relay{Registry: reg},
	}
	if cfg.RelayRateLimit > 0 {
		ctl.Limiter = app.NewRateLimiter(cfg.RelayRateLimit, cfg.RelayRateWindow)
	}
	monitor := app.NewMonitor(ctl, cfg.HeartbeatInterval, cfg.MaxInactivity)
	go monitor.Run(ctx)

	wsCtl := wssignal.NewWSController(ctl, cfg.ReadLimit)
	r := router.SetupRouter(ctx, cfg, wsCtl, reg)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("streamcast server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
