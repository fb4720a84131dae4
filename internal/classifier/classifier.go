// Package classifier assigns topic labels to free text by keyword-frequency
// scoring. Classification is pure and deterministic: the same text always
// yields the same topic.
package classifier

import (
	"regexp"
	"strings"
)

// Classifier scores text against the configured keyword table.
type Classifier struct {
	topics       []string
	defaultTopic string
	patterns     map[string][]*regexp.Regexp
}

// New compiles the keyword table into a classifier. Keywords match
// case-insensitively on whole-word/phrase boundaries.
func New(cfg *Config) *Classifier {
	c := &Classifier{
		topics:       make([]string, 0, len(cfg.Topics)),
		defaultTopic: cfg.DefaultTopic,
		patterns:     make(map[string][]*regexp.Regexp, len(cfg.Topics)),
	}

	for _, t := range cfg.Topics {
		c.topics = append(c.topics, t.Topic)

		compiled := make([]*regexp.Regexp, 0, len(t.Keywords))
		for _, kw := range t.Keywords {
			pattern := `\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`
			compiled = append(compiled, regexp.MustCompile(pattern))
		}

		c.patterns[t.Topic] = compiled
	}

	return c
}

// Classify returns the topic whose keywords occur most often in text. Ties
// break toward the first-declared topic; a zero score across all topics
// returns the default topic. Classify never fails, including on empty input.
func (c *Classifier) Classify(text string) string {
	lower := strings.ToLower(text)

	best := c.defaultTopic
	bestScore := 0

	for _, topic := range c.topics {
		score := 0
		for _, re := range c.patterns[topic] {
			score += len(re.FindAllStringIndex(lower, -1))
		}

		if score > bestScore {
			best = topic
			bestScore = score
		}
	}

	return best
}

// Topics returns the configured topic names in declaration order.
func (c *Classifier) Topics() []string {
	out := make([]string, len(c.topics))
	copy(out, c.topics)

	return out
}

// DefaultTopic returns the topic used when no keyword matches.
func (c *Classifier) DefaultTopic() string {
	return c.defaultTopic
}
