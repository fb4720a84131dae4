// Package exam implements the build pipeline that turns a candidate item
// pool into a finished exam: allocation of per-topic counts, selection under
// difficulty balance and exclusions, and final assembly.
package exam

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

// weightSumTolerance is the accepted rounding slack around 100% for the sum
// of target percentages.
const weightSumTolerance = 0.5

// Allocate computes per-topic item counts for one build. Topics are sorted
// by target percentage descending (declaration order breaks ties); every
// topic except the last receives round(total * target/100) capped at the
// unallocated remainder, and the last topic absorbs whatever is left. The
// remainder rule may push the absorbing topic outside its own declared band;
// that is accepted policy, not an error.
func Allocate(totalItems int, weights []domain.TopicWeight) (domain.AllocationPlan, error) {
	if totalItems < 1 {
		return domain.AllocationPlan{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidTotal, totalItems)
	}

	if err := checkWeights(weights); err != nil {
		return domain.AllocationPlan{}, err
	}

	sorted := make([]domain.TopicWeight, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TargetPct > sorted[j].TargetPct })

	plan := domain.AllocationPlan{
		Topics: make([]string, 0, len(sorted)),
		Counts: make(map[string]int, len(sorted)),
	}

	remaining := totalItems

	for _, w := range sorted[:len(sorted)-1] {
		count := int(math.Round(float64(totalItems) * w.TargetPct / 100))
		if count > remaining {
			count = remaining
		}

		plan.Topics = append(plan.Topics, w.Topic)
		plan.Counts[w.Topic] = count
		remaining -= count
	}

	last := sorted[len(sorted)-1]
	plan.Topics = append(plan.Topics, last.Topic)
	plan.Counts[last.Topic] = remaining

	return plan, nil
}

func checkWeights(weights []domain.TopicWeight) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: empty weight table", apperrors.ErrInvalidWeights)
	}

	var sum float64

	for _, w := range weights {
		if w.MinPct < 0 || w.MinPct > w.TargetPct || w.TargetPct > w.MaxPct || w.MaxPct > 100 {
			return fmt.Errorf("%w: topic %q has bounds min=%.1f target=%.1f max=%.1f",
				apperrors.ErrInvalidWeights, w.Topic, w.MinPct, w.TargetPct, w.MaxPct)
		}

		sum += w.TargetPct
	}

	if math.Abs(sum-100) > weightSumTolerance {
		return fmt.Errorf("%w: target percentages sum to %.1f, want 100", apperrors.ErrInvalidWeights, sum)
	}

	return nil
}

// Validate recomputes each topic's realized percentage and reports whether
// all topics land inside their declared bands. A false result is advisory
// only: out-of-bound topics are logged and the plan remains usable.
func Validate(plan domain.AllocationPlan, totalItems int, weights []domain.TopicWeight, logger *zerolog.Logger) bool {
	bounds := make(map[string]domain.TopicWeight, len(weights))
	for _, w := range weights {
		bounds[w.Topic] = w
	}

	ok := true

	for _, topic := range plan.Topics {
		w, found := bounds[topic]
		if !found {
			continue
		}

		pct := float64(plan.Counts[topic]) / float64(totalItems) * 100
		if pct < w.MinPct || pct > w.MaxPct {
			logger.Warn().
				Str("topic", topic).
				Float64("realized_pct", pct).
				Float64("min_pct", w.MinPct).
				Float64("max_pct", w.MaxPct).
				Msg("topic allocation outside declared band")

			ok = false
		}
	}

	return ok
}
