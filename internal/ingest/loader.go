// Package ingest loads source material from disk, splits it into overlapping
// chunks and tags each chunk with a topic. Text extraction from richer
// formats happens upstream; plain text files are the boundary here.
package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finprep/exam-engine/internal/classifier"
	"github.com/finprep/exam-engine/internal/core/domain"
	"github.com/finprep/exam-engine/internal/platform/observability"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Loader walks a content directory and produces classified chunks.
type Loader struct {
	classifier *classifier.Classifier
	chunkSize  int
	overlap    int
	logger     *zerolog.Logger
}

// NewLoader creates a loader. chunkSize and overlap are in runes; a
// non-positive overlap disables it.
func NewLoader(cls *classifier.Classifier, chunkSize, overlap int, logger *zerolog.Logger) *Loader {
	if chunkSize <= 0 {
		chunkSize = 4000
	}

	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	return &Loader{
		classifier: cls,
		chunkSize:  chunkSize,
		overlap:    overlap,
		logger:     logger,
	}
}

// LoadDir reads every .txt and .md file under root and returns the
// classified chunks in walk order.
func (l *Loader) LoadDir(root string) ([]domain.ContentChunk, error) {
	var chunks []domain.ContentChunk

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		fileChunks, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable content file")

			return nil
		}

		chunks = append(chunks, fileChunks...)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk content dir: %w", err)
	}

	l.logger.Info().Int("chunks", len(chunks)).Str("dir", root).Msg("content loaded")

	return chunks, nil
}

func (l *Loader) loadFile(path string) ([]domain.ContentChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cleaned := CleanText(string(data))
	if cleaned == "" {
		return nil, nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var chunks []domain.ContentChunk

	for i, text := range SplitChunks(cleaned, l.chunkSize, l.overlap) {
		topic := l.classifier.Classify(text)
		observability.ChunksIngested.WithLabelValues(topic).Inc()

		chunks = append(chunks, domain.ContentChunk{
			ID:        fmt.Sprintf("%s_%d", name, i),
			Text:      text,
			Topic:     topic,
			SourceRef: path,
			Length:    len([]rune(text)),
		})
	}

	return chunks, nil
}

// CleanText collapses whitespace runs into single spaces and trims the ends.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// SplitChunks splits text into windows of at most size runes. Each cut
// prefers the last sentence boundary in the second half of the window, and
// consecutive chunks share overlap runes of context.
func SplitChunks(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		cut := lastSentenceEnd(runes[start:end])
		if cut <= size/2 {
			cut = size
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:start+cut])))

		next := start + cut - overlap
		if next <= start {
			next = start + cut
		}

		start = next
	}

	return chunks
}

// lastSentenceEnd returns the index just past the last sentence terminator
// in window, or 0 when none exists.
func lastSentenceEnd(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			return i + 1
		}
	}

	return 0
}
