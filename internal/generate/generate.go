// Package generate produces candidate exam items from classified content
// chunks. It is the generation collaborator at the engine's boundary: the
// build pipeline consumes the resulting pool read-only and never cares how
// items were produced.
package generate

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/core/domain"
	"github.com/finprep/exam-engine/internal/ledger"
	"github.com/finprep/exam-engine/internal/platform/observability"
)

// MockAPIKey selects the deterministic mock client instead of a live service.
const MockAPIKey = "mock"

// Item is a generated question: the candidate record the engine selects on,
// plus the rendered question body used at export time.
type Item struct {
	domain.CandidateItem
	Question string
	Answer   string
}

// Client generates one question from one content chunk.
type Client interface {
	GenerateQuestion(ctx context.Context, chunk domain.ContentChunk, session, difficulty string) (question, answer string, err error)
}

// Difficulty mix used when drawing a tier for a new item. Matches the
// published Level III split: 20% recall, 50% application, 30% synthesis.
var difficultyWeights = []struct {
	tier   string
	weight float64
}{
	{domain.DifficultyLevel1, 0.2},
	{domain.DifficultyLevel2, 0.5},
	{domain.DifficultyLevel3, 0.3},
}

// Per-item defaults by session type.
const (
	amPoints        = 20
	amEstimatedTime = 18 * time.Minute
	pmPoints        = 18
	pmEstimatedTime = 15 * time.Minute
)

// Service turns chunks into a candidate pool through a Client.
type Service struct {
	client Client
	rng    *rand.Rand
	logger *zerolog.Logger
}

// NewService creates a generation service. A nil rng is seeded from the clock.
func NewService(client Client, rng *rand.Rand, logger *zerolog.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Service{client: client, rng: rng, logger: logger}
}

// BuildPool generates one candidate item per chunk, up to limit (0 means all
// chunks). Failed generations are logged and skipped; the pool is whatever
// succeeded.
func (s *Service) BuildPool(ctx context.Context, chunks []domain.ContentChunk, session string, limit int) ([]Item, error) {
	if limit <= 0 || limit > len(chunks) {
		limit = len(chunks)
	}

	items := make([]Item, 0, limit)

	for _, chunk := range chunks[:limit] {
		difficulty := s.drawDifficulty()

		question, answer, err := s.client.GenerateQuestion(ctx, chunk, session, difficulty)
		if err != nil {
			if ctx.Err() != nil {
				return items, ctx.Err()
			}

			observability.ItemsGenerated.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("chunk", chunk.ID).Msg("question generation failed")

			continue
		}

		observability.ItemsGenerated.WithLabelValues("success").Inc()

		points, estimated := sessionDefaults(session)

		items = append(items, Item{
			CandidateItem: domain.CandidateItem{
				ID:            uuid.NewString(),
				Topic:         chunk.Topic,
				Difficulty:    difficulty,
				Points:        points,
				EstimatedTime: estimated,
				ContentHash:   ledger.Fingerprint(chunk.Text),
			},
			Question: question,
			Answer:   answer,
		})
	}

	return items, nil
}

// Candidates extracts the selection-facing records from a generated pool.
func Candidates(items []Item) []domain.CandidateItem {
	out := make([]domain.CandidateItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.CandidateItem)
	}

	return out
}

func (s *Service) drawDifficulty() string {
	draw := s.rng.Float64()

	var cumulative float64

	for _, d := range difficultyWeights {
		cumulative += d.weight
		if draw < cumulative {
			return d.tier
		}
	}

	return difficultyWeights[len(difficultyWeights)-1].tier
}

func sessionDefaults(session string) (points int, estimated time.Duration) {
	if session == domain.SessionPM {
		return pmPoints, pmEstimatedTime
	}

	return amPoints, amEstimatedTime
}
