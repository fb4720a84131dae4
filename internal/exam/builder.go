package exam

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
	"github.com/finprep/exam-engine/internal/ledger"
	"github.com/finprep/exam-engine/internal/platform/observability"
)

// BuildRequest describes one exam build.
type BuildRequest struct {
	Session    string
	TotalItems int
	Pool       []domain.CandidateItem
}

// BuildReport carries non-fatal build metadata alongside the assembly.
type BuildReport struct {
	Plan          domain.AllocationPlan
	Shortages     []domain.Shortage
	WithinBounds  bool
	PoolSize      int
	EligibleItems int
	LedgerSkipped int
}

// BuildResult is the outcome of one successful build.
type BuildResult struct {
	Assembly domain.ExamAssembly
	Report   BuildReport
}

// Builder runs the build pipeline. Each build is a stateless function of
// (pool, weights, ledger snapshot); the ledger commit at the end is the only
// externally observable side effect.
type Builder struct {
	weights  []domain.TopicWeight
	ledger   *ledger.Ledger
	selector *Selector
	rng      *rand.Rand
	logger   *zerolog.Logger
}

// NewBuilder creates a builder. A nil rng is seeded from the clock; tests
// inject a fixed seed for reproducible selection and shuffling.
func NewBuilder(weights []domain.TopicWeight, led *ledger.Ledger, rng *rand.Rand, logger *zerolog.Logger) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Builder{
		weights:  weights,
		ledger:   led,
		selector: NewSelector(rng),
		rng:      rng,
		logger:   logger,
	}
}

// Build produces one exam assembly. On any error nothing is committed to the
// ledger; on success exactly the fingerprints of accepted items are.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := time.Now()

	result, err := b.build(ctx, req)
	if err != nil {
		observability.BuildsTotal.WithLabelValues("error").Inc()

		return nil, err
	}

	observability.BuildsTotal.WithLabelValues("success").Inc()
	observability.BuildDurationSeconds.Observe(time.Since(start).Seconds())
	observability.LedgerFingerprints.Set(float64(b.ledger.Size()))

	return result, nil
}

func (b *Builder) build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if err := b.ledger.Load(ctx); err != nil {
		return nil, err
	}

	eligible, skipped := b.filterPool(req.Pool)
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: pool=%d, previously used=%d", apperrors.ErrNoCandidates, len(req.Pool), skipped)
	}

	observability.PoolEligible.Set(float64(len(eligible)))

	plan, err := Allocate(req.TotalItems, b.weights)
	if err != nil {
		return nil, err
	}

	withinBounds := Validate(plan, req.TotalItems, b.weights, b.logger)

	selections := make(map[string][]domain.CandidateItem, len(plan.Topics))
	exclude := make(map[string]struct{})

	var shortages []domain.Shortage

	for _, topic := range plan.Topics {
		count := plan.Counts[topic]
		if count == 0 {
			continue
		}

		picked, shortage := b.selector.Select(topic, count, eligible, exclude)
		if shortage != nil {
			shortages = append(shortages, *shortage)
			observability.ShortagesTotal.WithLabelValues(topic).Inc()

			b.logger.Warn().
				Str("topic", topic).
				Int("requested", shortage.Requested).
				Int("available", shortage.Available).
				Msg("content shortage")
		}

		selections[topic] = picked

		// Fold picked ids into the running exclusion set so a mis-tagged
		// candidate can never land in two topics within one build.
		for _, item := range picked {
			exclude[item.ID] = struct{}{}
		}
	}

	assembly, err := Assemble(req.Session, plan.Topics, selections, b.rng)
	if err != nil {
		return nil, err
	}

	// Eligible items whose topics all fall outside the plan produce an empty
	// assembly; an exam with zero items is never shipped.
	if len(assembly.Items) == 0 {
		return nil, fmt.Errorf("%w: no eligible item matched a planned topic", apperrors.ErrNoCandidates)
	}

	hashes := make([]string, 0, len(assembly.Items))
	for _, item := range assembly.Items {
		hashes = append(hashes, item.ContentHash)
	}

	if err := b.ledger.Commit(ctx, hashes); err != nil {
		return nil, err
	}

	b.logger.Info().
		Str("exam_id", assembly.ExamID).
		Str("session", assembly.Session).
		Int("items", len(assembly.Items)).
		Int("shortages", len(shortages)).
		Msg("exam built")

	return &BuildResult{
		Assembly: assembly,
		Report: BuildReport{
			Plan:          plan,
			Shortages:     shortages,
			WithinBounds:  withinBounds,
			PoolSize:      len(req.Pool),
			EligibleItems: len(eligible),
			LedgerSkipped: skipped,
		},
	}, nil
}

// filterPool drops items whose fingerprint was consumed by a past build and
// collapses in-pool duplicates (same id or same content hash, first wins).
func (b *Builder) filterPool(pool []domain.CandidateItem) ([]domain.CandidateItem, int) {
	eligible := make([]domain.CandidateItem, 0, len(pool))
	seenIDs := make(map[string]struct{}, len(pool))
	seenHashes := make(map[string]struct{}, len(pool))

	var skipped int

	for _, item := range pool {
		if b.ledger.Contains(item.ContentHash) {
			skipped++
			continue
		}

		if _, dup := seenIDs[item.ID]; dup {
			continue
		}

		if _, dup := seenHashes[item.ContentHash]; dup {
			continue
		}

		seenIDs[item.ID] = struct{}{}
		seenHashes[item.ContentHash] = struct{}{}
		eligible = append(eligible, item)
	}

	return eligible, skipped
}
