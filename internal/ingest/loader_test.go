package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/classifier"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims ends", "  hello world  ", "hello world"},
		{"already clean", "hello world", "hello world"},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitChunksShortText(t *testing.T) {
	chunks := SplitChunks("short passage.", 100, 20)

	if len(chunks) != 1 || chunks[0] != "short passage." {
		t.Fatalf("SplitChunks() = %v, want the text unchanged", chunks)
	}
}

func TestSplitChunksRespectsSize(t *testing.T) {
	text := strings.Repeat("Sentence one is here. ", 100)

	for _, chunk := range SplitChunks(text, 120, 20) {
		if n := len([]rune(chunk)); n > 120 {
			t.Errorf("chunk of %d runes exceeds size 120", n)
		}
	}
}

func TestSplitChunksPrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("Alpha beta gamma delta. ", 50)

	chunks := SplitChunks(text, 100, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every non-final chunk should end at a sentence terminator.
	for i, chunk := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(chunk, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, chunk)
		}
	}
}

func TestSplitChunksCoversAllText(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	text = strings.TrimSpace(text)

	joined := strings.Join(SplitChunks(text, 150, 30), " ")

	// Overlap duplicates context, so containment is checked word by word.
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Fatalf("word %q missing from chunk output", word)
		}
	}

	last := SplitChunks(text, 150, 30)
	if !strings.HasSuffix(text, last[len(last)-1]) {
		t.Error("final chunk does not cover the end of the text")
	}
}

func TestLoadDirClassifiesChunks(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "fixed_income.txt",
		"Duration matching and yield curve positioning protect a bond portfolio against rate shifts.")
	writeFile(t, dir, "notes.md",
		"General study notes with no recognizable terminology at all.")
	writeFile(t, dir, "ignored.json", `{"skip": true}`)

	cfg := &classifier.Config{
		DefaultTopic: "General",
		Topics: []classifier.TopicConfig{
			{Topic: "General", Keywords: []string{"overview"}},
			{Topic: "Fixed Income", Keywords: []string{"duration", "yield curve"}},
		},
	}

	logger := zerolog.Nop()
	loader := NewLoader(classifier.New(cfg), 4000, 200, &logger)

	chunks, err := loader.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("LoadDir() returned %d chunks, want 2", len(chunks))
	}

	byID := make(map[string]string, len(chunks))
	for _, chunk := range chunks {
		byID[chunk.ID] = chunk.Topic

		if chunk.SourceRef == "" || chunk.Length == 0 {
			t.Errorf("chunk %s missing source ref or length", chunk.ID)
		}
	}

	if byID["fixed_income_0"] != "Fixed Income" {
		t.Errorf("fixed_income_0 topic = %q, want Fixed Income", byID["fixed_income_0"])
	}

	if byID["notes_0"] != "General" {
		t.Errorf("notes_0 topic = %q, want General", byID["notes_0"])
	}
}

func TestLoadDirEmptyDirectory(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewLoader(classifier.New(classifier.Default()), 0, 0, &logger)

	chunks, err := loader.LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(chunks) != 0 {
		t.Fatalf("LoadDir() returned %d chunks, want 0", len(chunks))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
