package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

// TopicConfig declares one weighted topic and the keyword phrases used to
// recognize it. Declaration order is significant: it breaks classification
// and allocation ties.
type TopicConfig struct {
	Topic     string   `yaml:"topic"`
	MinPct    float64  `yaml:"min_pct"`
	MaxPct    float64  `yaml:"max_pct"`
	TargetPct float64  `yaml:"target_pct"`
	Keywords  []string `yaml:"keywords"`
}

// Config is the full ordered topic table plus the default topic returned
// when no keyword matches.
type Config struct {
	Topics       []TopicConfig `yaml:"topics"`
	DefaultTopic string        `yaml:"default_topic"`
}

// Load reads a topic table from a YAML file. An empty path returns the
// built-in CFA Level III table.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topic config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse topic config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Topics) == 0 {
		return fmt.Errorf("%w: no topics declared", apperrors.ErrInvalidWeights)
	}

	if c.DefaultTopic == "" {
		c.DefaultTopic = c.Topics[0].Topic
	}

	var found bool

	for _, t := range c.Topics {
		if t.Topic == c.DefaultTopic {
			found = true
		}

		if t.Topic == "" {
			return fmt.Errorf("%w: topic with empty name", apperrors.ErrInvalidWeights)
		}
	}

	if !found {
		return fmt.Errorf("%w: default topic %q not declared", apperrors.ErrInvalidWeights, c.DefaultTopic)
	}

	return nil
}

// Weights returns the declared topic weights in declaration order.
func (c *Config) Weights() []domain.TopicWeight {
	weights := make([]domain.TopicWeight, 0, len(c.Topics))
	for _, t := range c.Topics {
		weights = append(weights, domain.TopicWeight{
			Topic:     t.Topic,
			MinPct:    t.MinPct,
			MaxPct:    t.MaxPct,
			TargetPct: t.TargetPct,
		})
	}

	return weights
}
