package classifier

import (
	"os"
	"path/filepath"
	"testing"
)

func testConfig() *Config {
	return &Config{
		DefaultTopic: "General",
		Topics: []TopicConfig{
			{Topic: "General", Keywords: []string{"overview"}},
			{Topic: "Rates", Keywords: []string{"duration", "yield curve"}},
			{Topic: "Equity", Keywords: []string{"dividend", "valuation"}},
		},
	}
}

func TestClassifyKeywordFrequency(t *testing.T) {
	c := New(testConfig())

	text := "The yield curve steepened. Duration rose, and duration hedging followed. One valuation note."
	if got := c.Classify(text); got != "Rates" {
		t.Fatalf("Classify() = %q, want Rates", got)
	}
}

func TestClassifyDefaultOnZeroScore(t *testing.T) {
	c := New(testConfig())

	tests := []struct {
		name string
		text string
	}{
		{"no keywords", "completely unrelated text about sailing"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != "General" {
				t.Fatalf("Classify(%q) = %q, want General", tt.text, got)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(testConfig())

	text := "dividend discount models and valuation against the yield curve"

	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		if got := c.Classify(text); got != first {
			t.Fatalf("Classify() = %q on run %d, want %q", got, i, first)
		}
	}
}

func TestClassifyTieBreaksByDeclarationOrder(t *testing.T) {
	c := New(testConfig())

	// One hit for Rates, one for Equity: first-declared wins.
	if got := c.Classify("duration and dividend"); got != "Rates" {
		t.Fatalf("Classify() = %q, want Rates on tie", got)
	}
}

func TestClassifyWholeWordMatching(t *testing.T) {
	c := New(testConfig())

	// Keywords embedded inside larger words must not count.
	if got := c.Classify("misdividend redurationing"); got != "General" {
		t.Fatalf("Classify() = %q, want General for embedded keywords", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(testConfig())

	if got := c.Classify("YIELD CURVE analysis"); got != "Rates" {
		t.Fatalf("Classify() = %q, want Rates", got)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")

	content := `default_topic: Alpha
topics:
  - topic: Alpha
    min_pct: 40
    max_pct: 60
    target_pct: 50
    keywords: ["alpha"]
  - topic: Beta
    min_pct: 40
    max_pct: 60
    target_pct: 50
    keywords: ["beta"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Topics) != 2 || cfg.DefaultTopic != "Alpha" {
		t.Fatalf("Load() = %+v, want 2 topics with default Alpha", cfg)
	}

	weights := cfg.Weights()
	if len(weights) != 2 || weights[0].Topic != "Alpha" || weights[0].TargetPct != 50 {
		t.Fatalf("Weights() = %+v", weights)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Topics) != 6 {
		t.Fatalf("default table has %d topics, want 6", len(cfg.Topics))
	}

	var sum float64
	for _, topic := range cfg.Topics {
		sum += topic.TargetPct
	}

	if sum != 100 {
		t.Fatalf("default targets sum to %v, want 100", sum)
	}
}

func TestLoadRejectsUnknownDefaultTopic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")

	content := `default_topic: Missing
topics:
  - topic: Alpha
    target_pct: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for undeclared default topic")
	}
}
