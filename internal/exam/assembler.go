package exam

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

var amInstructions = []string{
	"This is the Morning Session of the CFA Level III examination.",
	"You have 3 hours (180 minutes) to complete this session.",
	"This session consists of constructed response questions.",
	"Show all calculations and provide clear explanations.",
	"Use bullet points where appropriate in your responses.",
	"Manage your time carefully - aim to spend the suggested time per question.",
}

var pmInstructions = []string{
	"This is the Afternoon Session of the CFA Level III examination.",
	"You have 3 hours (180 minutes) to complete this session.",
	"This session consists of item sets with multiple choice questions.",
	"Read each vignette carefully before answering the questions.",
	"Select the best answer for each question.",
	"There is no penalty for guessing.",
}

// Assemble combines per-topic selections into the final exam. Items are
// concatenated in plan order and fully shuffled so topic blocks are not
// visually grouped; total time is the fixed session duration, never the sum
// of per-item estimates.
func Assemble(session string, topics []string, selections map[string][]domain.CandidateItem, rng *rand.Rand) (domain.ExamAssembly, error) {
	instructions, err := instructionsFor(session)
	if err != nil {
		return domain.ExamAssembly{}, err
	}

	var items []domain.CandidateItem
	counts := make(map[string]int, len(topics))

	for _, topic := range topics {
		items = append(items, selections[topic]...)
		if n := len(selections[topic]); n > 0 {
			counts[topic] = n
		}
	}

	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	var totalPoints int
	for _, item := range items {
		totalPoints += item.Points
	}

	percentages := make(map[string]float64, len(counts))

	if len(items) > 0 {
		for topic, n := range counts {
			percentages[topic] = roundTenth(float64(n) / float64(len(items)) * 100)
		}
	}

	now := time.Now().UTC()

	return domain.ExamAssembly{
		ExamID:           fmt.Sprintf("CFA_L3_%s_%s", session, now.Format("20060102_150405")),
		Session:          session,
		CreatedAt:        now,
		Items:            items,
		TotalTime:        domain.SessionDuration(session),
		TotalPoints:      totalPoints,
		TopicPercentages: percentages,
		Instructions:     instructions,
	}, nil
}

func instructionsFor(session string) ([]string, error) {
	switch session {
	case domain.SessionAM:
		return amInstructions, nil
	case domain.SessionPM:
		return pmInstructions, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownSession, session)
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
