package exam

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/finprep/exam-engine/internal/core/domain"
)

func makePool(topic string, perTier int) []domain.CandidateItem {
	pool := make([]domain.CandidateItem, 0, perTier*len(domain.DifficultyTiers))

	for _, tier := range domain.DifficultyTiers {
		for i := 0; i < perTier; i++ {
			id := fmt.Sprintf("%s_%s_%d", topic, tier, i)
			pool = append(pool, domain.CandidateItem{
				ID:          id,
				Topic:       topic,
				Difficulty:  tier,
				ContentHash: "hash_" + id,
			})
		}
	}

	return pool
}

func TestSelectRespectsCountAndTopic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSelector(rng)

	pool := append(makePool("Alpha", 4), makePool("Beta", 4)...)

	picked, shortage := s.Select("Alpha", 5, pool, nil)
	if shortage != nil {
		t.Fatalf("unexpected shortage %+v", shortage)
	}

	if len(picked) != 5 {
		t.Fatalf("picked %d items, want 5", len(picked))
	}

	seen := make(map[string]struct{})

	for _, item := range picked {
		if item.Topic != "Alpha" {
			t.Errorf("picked item %s with topic %s", item.ID, item.Topic)
		}

		if _, dup := seen[item.ID]; dup {
			t.Errorf("item %s picked twice", item.ID)
		}

		seen[item.ID] = struct{}{}
	}
}

func TestSelectSkipsExcludedIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSelector(rng)

	pool := makePool("Alpha", 2)

	exclude := map[string]struct{}{
		pool[0].ID: {},
		pool[1].ID: {},
	}

	picked, shortage := s.Select("Alpha", 5, pool, exclude)
	if shortage == nil {
		t.Fatal("expected shortage after exclusion")
	}

	if len(picked) != 4 {
		t.Fatalf("picked %d items, want the 4 non-excluded", len(picked))
	}

	for _, item := range picked {
		if _, excluded := exclude[item.ID]; excluded {
			t.Errorf("excluded item %s was picked", item.ID)
		}
	}
}

func TestSelectShortageReturnsEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSelector(rng)

	pool := []domain.CandidateItem{
		{ID: "a", Topic: "Risk", Difficulty: domain.DifficultyLevel1},
		{ID: "b", Topic: "Risk", Difficulty: domain.DifficultyLevel3},
	}

	picked, shortage := s.Select("Risk", 5, pool, nil)

	if len(picked) != 2 {
		t.Fatalf("picked %d items, want all 2 available", len(picked))
	}

	if shortage == nil {
		t.Fatal("expected a shortage record")
	}

	if shortage.Topic != "Risk" || shortage.Requested != 5 || shortage.Available != 2 {
		t.Fatalf("shortage = %+v, want {Risk 5 2}", shortage)
	}
}

func TestSelectDrainsTiersInPriorityOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSelector(rng)

	pool := makePool("Alpha", 3)

	picked, shortage := s.Select("Alpha", 4, pool, nil)
	if shortage != nil {
		t.Fatalf("unexpected shortage %+v", shortage)
	}

	byTier := make(map[string]int)
	for _, item := range picked {
		byTier[item.Difficulty]++
	}

	// All three easy items first, then one from the next tier.
	if byTier[domain.DifficultyLevel1] != 3 {
		t.Errorf("Level_1 count = %d, want 3", byTier[domain.DifficultyLevel1])
	}

	if byTier[domain.DifficultyLevel2] != 1 {
		t.Errorf("Level_2 count = %d, want 1", byTier[domain.DifficultyLevel2])
	}

	if byTier[domain.DifficultyLevel3] != 0 {
		t.Errorf("Level_3 count = %d, want 0", byTier[domain.DifficultyLevel3])
	}
}

func TestSelectReproducibleUnderFixedSeed(t *testing.T) {
	pool := makePool("Alpha", 10)

	run := func() []string {
		s := NewSelector(rand.New(rand.NewSource(42)))

		picked, _ := s.Select("Alpha", 6, pool, nil)

		ids := make([]string, len(picked))
		for i, item := range picked {
			ids[i] = item.ID
		}

		return ids
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("runs picked %d and %d items", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestSelectZeroCount(t *testing.T) {
	s := NewSelector(rand.New(rand.NewSource(1)))

	picked, shortage := s.Select("Alpha", 0, makePool("Alpha", 2), nil)
	if picked != nil || shortage != nil {
		t.Fatalf("Select(0) = %v, %v, want nil, nil", picked, shortage)
	}
}
