package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/finprep/exam-engine/internal/core/domain"
	apperrors "github.com/finprep/exam-engine/internal/core/errors"
	"github.com/finprep/exam-engine/internal/platform/observability"
)

const rateLimitBurst = 5

type openaiClient struct {
	client      *openai.Client
	model       string
	rateLimiter *rate.Limiter
	logger      *zerolog.Logger
}

// NewOpenAI creates a question generator backed by the OpenAI chat API,
// rate limited to rps requests per second.
func NewOpenAI(apiKey, model string, rps int, logger *zerolog.Logger) Client {
	if model == "" {
		model = openai.GPT4oMini
	}

	return &openaiClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimitBurst),
		logger:      logger,
	}
}

type questionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (c *openaiClient) GenerateQuestion(ctx context.Context, chunk domain.ContentChunk, session, difficulty string) (string, string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", "", fmt.Errorf("rate limiter error: %w", err)
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(chunk, session, difficulty),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("openai chat completion error: %w", err)
	}

	observability.GenerationDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())

	if len(resp.Choices) == 0 {
		return "", "", apperrors.ErrEmptyResponse
	}

	var parsed questionResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return "", "", fmt.Errorf("parse question response: %w", err)
	}

	if strings.TrimSpace(parsed.Question) == "" {
		return "", "", apperrors.ErrEmptyResponse
	}

	return parsed.Question, parsed.Answer, nil
}
