package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pokeclone/internal/config"
	"pokeclone/internal/dex"
	"pokeclone/internal/game"
	"pokeclone/internal/save"
	"pokeclone/internal/session"
	"pokeclone/internal/web"
)

const ConfigPath = "config/server.yaml"

const (
	sweepEvery     = time.Minute
	sessionMaxIdle = 30 * time.Minute
	shutdownGrace  = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("POKECLONE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("pokeclone server starting", "log_level", cfg.LogLevel)

	d := dex.MustLoadEmbedded()

	starterRef := dex.CreatureRef{SpeciesID: cfg.Starter.SpeciesID, IndividualID: cfg.Starter.IndividualID}
	starter, err := d.LookupCreature(starterRef)
	if err != nil {
		return fmt.Errorf("starter: %w", err)
	}

	saves, err := save.Open(ctx, cfg.Save.Driver, cfg.Save.Target())
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	defer func() {
		if err := saves.Close(); err != nil {
			slog.Error("closing save store", "err", err)
		}
	}()
	slog.Info("save store ready", "driver", cfg.Save.Driver)

	newGame := func() *game.Session {
		gs := game.NewSession(d, game.Options{
			EncounterRate: cfg.EncounterRate,
			Rand:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		})
		if _, err := gs.Recruit(starterRef, cfg.Starter.Surname); err != nil {
			slog.Error("recruiting starter", "creature", starter.Name, "err", err)
		}
		return gs
	}

	store := session.NewMemoryStore[*game.Session]()
	srv := web.NewServer(d, store, saves, newGame)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return store.Run(gctx, sweepEvery, sessionMaxIdle)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
