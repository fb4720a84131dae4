// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together the ledger store, the classification and
// generation collaborators and the build pipeline, and exposes the
// operational modes:
//
//   - Build mode: ingest content, generate a candidate pool (or load a
//     static one), assemble one exam and export it
//   - Ingest mode: generate a candidate pool and write it to a JSON file
//     for later builds
//   - Serve mode: health and metrics endpoints plus background upkeep
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/classifier"
	"github.com/finprep/exam-engine/internal/exam"
	"github.com/finprep/exam-engine/internal/export"
	"github.com/finprep/exam-engine/internal/generate"
	"github.com/finprep/exam-engine/internal/ingest"
	"github.com/finprep/exam-engine/internal/ledger"
	"github.com/finprep/exam-engine/internal/platform/config"
	"github.com/finprep/exam-engine/internal/platform/observability"
	"github.com/finprep/exam-engine/internal/platform/worker"
)

// LedgerStore is the durable fingerprint store plus the liveness check used
// by the readiness endpoint.
type LedgerStore interface {
	ledger.Store
	Ping(ctx context.Context) error
}

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg    *config.Config
	store  LedgerStore
	logger *zerolog.Logger
}

func New(cfg *config.Config, store LedgerStore, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// StartHealthServer runs the health/readiness/metrics endpoint until the
// context is canceled.
func (a *App) StartHealthServer(ctx context.Context) error {
	server := observability.NewServer(a.store, a.cfg.HealthPort, a.logger)

	return server.Start(ctx)
}

// BuildOptions configures one build run.
type BuildOptions struct {
	Session    string
	TotalItems int
	Seed       int64
	PoolPath   string
}

// ledgerMetricsInterval is how often serve mode refreshes the ledger size
// gauge from the store.
const ledgerMetricsInterval = time.Minute

// RunServe blocks on the health server, refreshing ledger metrics in the
// background.
func (a *App) RunServe(ctx context.Context) error {
	go func() {
		_ = worker.Loop(ctx, a.logger, worker.Task{
			Name:     "ledger-metrics",
			Interval: ledgerMetricsInterval,
			Run:      a.refreshLedgerMetrics,
		})
	}()

	return a.StartHealthServer(ctx)
}

func (a *App) refreshLedgerMetrics(ctx context.Context) {
	hashes, err := a.store.LoadAll(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("ledger metrics refresh failed")

		return
	}

	observability.LedgerFingerprints.Set(float64(len(hashes)))
}

// RunBuild executes one complete build: pool acquisition, exam assembly,
// ledger commit and export.
func (a *App) RunBuild(ctx context.Context, opts BuildOptions) error {
	topicCfg, err := classifier.Load(a.cfg.TopicConfigPath)
	if err != nil {
		return fmt.Errorf("load topic config: %w", err)
	}

	rng := rand.New(rand.NewSource(seedOrNow(opts.Seed)))

	pool, err := a.acquirePool(ctx, topicCfg, opts, rng)
	if err != nil {
		return err
	}

	bodies := make(map[string]generate.Item, len(pool))
	for _, item := range pool {
		bodies[item.ID] = item
	}

	led := ledger.New(a.store, a.logger)
	builder := exam.NewBuilder(topicCfg.Weights(), led, rng, a.logger)

	result, err := builder.Build(ctx, exam.BuildRequest{
		Session:    opts.Session,
		TotalItems: opts.TotalItems,
		Pool:       generate.Candidates(pool),
	})
	if err != nil {
		return fmt.Errorf("build exam: %w", err)
	}

	exporter := export.NewExporter(a.cfg.ExamOutputDir, a.logger)

	examPath, solutionsPath, err := exporter.WriteJSON(result.Assembly, bodies)
	if err != nil {
		return fmt.Errorf("export exam: %w", err)
	}

	sheetPath, err := exporter.WriteAnswerSheet(result.Assembly)
	if err != nil {
		return fmt.Errorf("export answer sheet: %w", err)
	}

	a.logger.Info().
		Str("exam", examPath).
		Str("solutions", solutionsPath).
		Str("answer_sheet", sheetPath).
		Bool("within_bounds", result.Report.WithinBounds).
		Int("shortages", len(result.Report.Shortages)).
		Msg("build complete")

	return nil
}

// RunIngest generates a candidate pool from the content directory and writes
// it to a JSON file that later build runs can load through the pool option.
func (a *App) RunIngest(ctx context.Context, opts BuildOptions) error {
	topicCfg, err := classifier.Load(a.cfg.TopicConfigPath)
	if err != nil {
		return fmt.Errorf("load topic config: %w", err)
	}

	rng := rand.New(rand.NewSource(seedOrNow(opts.Seed)))

	pool, err := a.generatePool(ctx, topicCfg, opts.Session, rng)
	if err != nil {
		return err
	}

	path := opts.PoolPath
	if path == "" {
		path = filepath.Join(a.cfg.ExamOutputDir, "pool.json")
	}

	if err := writePoolFile(path, pool); err != nil {
		return err
	}

	a.logger.Info().Str("pool", path).Int("items", len(pool)).Msg("candidate pool written")

	return nil
}

// acquirePool loads a static pool file when given one, otherwise ingests
// the content directory and generates fresh candidates.
func (a *App) acquirePool(ctx context.Context, topicCfg *classifier.Config, opts BuildOptions, rng *rand.Rand) ([]generate.Item, error) {
	if opts.PoolPath != "" {
		return loadPoolFile(opts.PoolPath)
	}

	return a.generatePool(ctx, topicCfg, opts.Session, rng)
}

func (a *App) generatePool(ctx context.Context, topicCfg *classifier.Config, session string, rng *rand.Rand) ([]generate.Item, error) {
	cls := classifier.New(topicCfg)

	loader := ingest.NewLoader(cls, a.cfg.ChunkSize, a.cfg.ChunkOverlap, a.logger)

	chunks, err := loader.LoadDir(a.cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("ingest content: %w", err)
	}

	service := generate.NewService(a.newGenerationClient(), rng, a.logger)

	pool, err := service.BuildPool(ctx, chunks, session, 0)
	if err != nil {
		return nil, fmt.Errorf("generate pool: %w", err)
	}

	return pool, nil
}

func (a *App) newGenerationClient() generate.Client {
	if a.cfg.LLMAPIKey == generate.MockAPIKey {
		return generate.NewMock()
	}

	return generate.NewOpenAI(a.cfg.LLMAPIKey, a.cfg.LLMModel, a.cfg.RateLimitRPS, a.logger)
}

func loadPoolFile(path string) ([]generate.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool file: %w", err)
	}

	var pool []generate.Item
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("parse pool file: %w", err)
	}

	return pool, nil
}

func writePoolFile(path string, pool []generate.Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create pool dir: %w", err)
	}

	data, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pool: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pool file: %w", err)
	}

	return nil
}

func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}

	return time.Now().UnixNano()
}
