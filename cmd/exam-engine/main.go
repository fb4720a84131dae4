package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/app"
	"github.com/finprep/exam-engine/internal/platform/config"
	db "github.com/finprep/exam-engine/internal/storage"
)

func main() {
	mode := flag.String("mode", "build", "Service mode (build, ingest, serve)")
	session := flag.String("session", "AM", "Exam session type (AM, PM)")
	count := flag.Int("count", 10, "Number of items in the exam")
	seed := flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	poolPath := flag.String("pool", "", "Candidate pool JSON file (input for build, output for ingest)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := newStore(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to ledger storage")
	}
	defer cleanup()

	application := app.New(cfg, store, &logger)

	if err := runMode(ctx, application, *mode, app.BuildOptions{
		Session:    *session,
		TotalItems: *count,
		Seed:       *seed,
		PoolPath:   *poolPath,
	}); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")

			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func newStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (app.LedgerStore, func(), error) {
	if cfg.LedgerBackend == config.LedgerBackendRedis {
		store, err := db.NewRedisLedger(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}

		return store, func() { _ = store.Close() }, nil
	}

	poolOpts := db.PoolOptions{
		MaxConns:          cfg.Database.MaxConnections,
		MinConns:          cfg.Database.MinConnections,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
	}

	database, err := db.New(ctx, cfg.PostgresDSN, poolOpts, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()

		return nil, nil, err
	}

	return database, database.Close, nil
}

func runMode(ctx context.Context, application *app.App, mode string, opts app.BuildOptions) error {
	switch mode {
	case "build":
		return application.RunBuild(ctx, opts)
	case "ingest":
		return application.RunIngest(ctx, opts)
	case "serve":
		return application.RunServe(ctx)
	default:
		log.Fatalf("Usage: %s --mode=[build|ingest|serve]", os.Args[0])

		return nil
	}
}
