package domain

import "time"

// ContentChunk is a classified slice of source material. Chunks are created
// at ingest and are immutable once a topic has been assigned.
type ContentChunk struct {
	ID        string
	Text      string
	Topic     string
	SourceRef string
	Length    int
}

// TopicWeight declares the percentage band a topic may occupy in an exam.
// Target percentages across all configured topics sum to 100 within rounding
// tolerance.
type TopicWeight struct {
	Topic     string
	MinPct    float64
	MaxPct    float64
	TargetPct float64
}

// CandidateItem is one generated exam item eligible for selection. Items are
// produced by the generation collaborator and consumed read-only by the
// engine.
type CandidateItem struct {
	ID            string
	Topic         string
	Difficulty    string
	Points        int
	EstimatedTime time.Duration
	ContentHash   string
}

// AllocationPlan maps each topic to the number of items it contributes to one
// build. Iteration order follows Topics.
type AllocationPlan struct {
	Topics []string
	Counts map[string]int
}

// Total returns the sum of all per-topic counts.
func (p AllocationPlan) Total() int {
	var total int
	for _, topic := range p.Topics {
		total += p.Counts[topic]
	}

	return total
}

// Shortage records a topic that had fewer eligible candidates than the plan
// requested. Shortages are build metadata, never errors.
type Shortage struct {
	Topic     string
	Requested int
	Available int
}

// ExamAssembly is the final ordered exam produced by one build. Immutable
// after assembly.
type ExamAssembly struct {
	ExamID           string
	Session          string
	CreatedAt        time.Time
	Items            []CandidateItem
	TotalTime        time.Duration
	TotalPoints      int
	TopicPercentages map[string]float64
	Instructions     []string
}

// Session type constants. Each session has a fixed whole-exam duration and
// its own instruction block.
const (
	SessionAM = "AM"
	SessionPM = "PM"
)

// Difficulty tiers in selection priority order.
const (
	DifficultyLevel1 = "Level_1"
	DifficultyLevel2 = "Level_2"
	DifficultyLevel3 = "Level_3"
)

// DifficultyTiers is the fixed priority ordering used by the selector.
var DifficultyTiers = []string{DifficultyLevel1, DifficultyLevel2, DifficultyLevel3}

// SessionDuration returns the fixed whole-session duration for a session
// type. This is deliberately not the sum of per-item estimated times.
func SessionDuration(session string) time.Duration {
	// Both CFA Level III sessions run three hours.
	return 180 * time.Minute
}
