package exam

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

func TestAssembleTotalsAndOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	selections := map[string][]domain.CandidateItem{
		"Alpha": {
			{ID: "a1", Topic: "Alpha", Points: 20, EstimatedTime: 18 * time.Minute},
			{ID: "a2", Topic: "Alpha", Points: 20, EstimatedTime: 18 * time.Minute},
		},
		"Beta": {
			{ID: "b1", Topic: "Beta", Points: 20, EstimatedTime: 18 * time.Minute},
		},
	}

	assembly, err := Assemble(domain.SessionAM, []string{"Alpha", "Beta"}, selections, rng)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(assembly.Items) != 3 {
		t.Fatalf("assembly has %d items, want 3", len(assembly.Items))
	}

	if assembly.TotalPoints != 60 {
		t.Errorf("TotalPoints = %d, want 60", assembly.TotalPoints)
	}

	// Whole-session duration, never the sum of per-item estimates.
	if assembly.TotalTime != 180*time.Minute {
		t.Errorf("TotalTime = %v, want 3h", assembly.TotalTime)
	}

	seen := make(map[string]struct{})
	for _, item := range assembly.Items {
		seen[item.ID] = struct{}{}
	}

	for _, id := range []string{"a1", "a2", "b1"} {
		if _, ok := seen[id]; !ok {
			t.Errorf("item %s missing from assembly", id)
		}
	}
}

func TestAssembleTopicPercentages(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	selections := map[string][]domain.CandidateItem{
		"Alpha": {{ID: "a1", Topic: "Alpha"}, {ID: "a2", Topic: "Alpha"}},
		"Beta":  {{ID: "b1", Topic: "Beta"}},
	}

	assembly, err := Assemble(domain.SessionPM, []string{"Alpha", "Beta"}, selections, rng)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if got := assembly.TopicPercentages["Alpha"]; got != 66.7 {
		t.Errorf("Alpha percentage = %v, want 66.7", got)
	}

	if got := assembly.TopicPercentages["Beta"]; got != 33.3 {
		t.Errorf("Beta percentage = %v, want 33.3", got)
	}
}

func TestAssembleExamIDAndInstructions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	selections := map[string][]domain.CandidateItem{
		"Alpha": {{ID: "a1", Topic: "Alpha"}},
	}

	am, err := Assemble(domain.SessionAM, []string{"Alpha"}, selections, rng)
	if err != nil {
		t.Fatalf("Assemble(AM) error = %v", err)
	}

	pm, err := Assemble(domain.SessionPM, []string{"Alpha"}, selections, rng)
	if err != nil {
		t.Fatalf("Assemble(PM) error = %v", err)
	}

	if !strings.HasPrefix(am.ExamID, "CFA_L3_AM_") {
		t.Errorf("AM ExamID = %q", am.ExamID)
	}

	if !strings.HasPrefix(pm.ExamID, "CFA_L3_PM_") {
		t.Errorf("PM ExamID = %q", pm.ExamID)
	}

	if len(am.Instructions) == 0 || len(pm.Instructions) == 0 {
		t.Fatal("instruction blocks must not be empty")
	}

	if am.Instructions[2] == pm.Instructions[2] {
		t.Error("AM and PM instruction blocks should differ")
	}
}

func TestAssembleUnknownSession(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	_, err := Assemble("EVENING", []string{"Alpha"}, nil, rng)
	if !errors.Is(err, apperrors.ErrUnknownSession) {
		t.Fatalf("Assemble() error = %v, want ErrUnknownSession", err)
	}
}

func TestAssembleEmptySelections(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	assembly, err := Assemble(domain.SessionAM, []string{"Alpha"}, nil, rng)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(assembly.Items) != 0 || assembly.TotalPoints != 0 {
		t.Fatalf("assembly = %+v, want empty", assembly)
	}

	if len(assembly.TopicPercentages) != 0 {
		t.Fatalf("TopicPercentages = %v, want empty", assembly.TopicPercentages)
	}
}
