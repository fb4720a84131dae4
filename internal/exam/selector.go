package exam

import (
	"math/rand"

	"github.com/finprep/exam-engine/internal/core/domain"
)

// Selector picks items for a single topic. All random draws run through the
// injected rng so selection is reproducible under a fixed seed.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector driven by the given source of randomness.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select returns up to count items tagged with topic whose ids are not in
// exclude. Difficulty tiers are drained in priority order, sampling without
// replacement from each; any remaining need is filled uniformly from the
// leftover filtered items regardless of tier. When fewer than count items
// are available, all of them are returned together with a shortage record.
func (s *Selector) Select(topic string, count int, pool []domain.CandidateItem, exclude map[string]struct{}) ([]domain.CandidateItem, *domain.Shortage) {
	if count <= 0 {
		return nil, nil
	}

	filtered := make([]domain.CandidateItem, 0, len(pool))

	for _, item := range pool {
		if item.Topic != topic {
			continue
		}

		if _, excluded := exclude[item.ID]; excluded {
			continue
		}

		filtered = append(filtered, item)
	}

	if len(filtered) < count {
		shortage := &domain.Shortage{Topic: topic, Requested: count, Available: len(filtered)}

		return filtered, shortage
	}

	selected := make([]domain.CandidateItem, 0, count)
	taken := make(map[string]struct{}, count)

	for _, tier := range domain.DifficultyTiers {
		if len(selected) >= count {
			break
		}

		tierItems := remainingWithDifficulty(filtered, tier, taken)
		need := count - len(selected)

		for _, item := range s.sample(tierItems, min(need, len(tierItems))) {
			selected = append(selected, item)
			taken[item.ID] = struct{}{}
		}
	}

	if len(selected) < count {
		leftovers := remainingWithDifficulty(filtered, "", taken)
		need := count - len(selected)

		for _, item := range s.sample(leftovers, min(need, len(leftovers))) {
			selected = append(selected, item)
			taken[item.ID] = struct{}{}
		}
	}

	return selected, nil
}

// remainingWithDifficulty filters items to the given tier, skipping already
// taken ids. An empty tier matches any difficulty.
func remainingWithDifficulty(items []domain.CandidateItem, tier string, taken map[string]struct{}) []domain.CandidateItem {
	out := make([]domain.CandidateItem, 0, len(items))

	for _, item := range items {
		if _, ok := taken[item.ID]; ok {
			continue
		}

		if tier != "" && item.Difficulty != tier {
			continue
		}

		out = append(out, item)
	}

	return out
}

// sample draws n items without replacement.
func (s *Selector) sample(items []domain.CandidateItem, n int) []domain.CandidateItem {
	if n <= 0 {
		return nil
	}

	perm := s.rng.Perm(len(items))

	out := make([]domain.CandidateItem, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, items[idx])
	}

	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
