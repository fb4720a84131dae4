package generate

import (
	"context"
	"fmt"

	"github.com/finprep/exam-engine/internal/core/domain"
)

// mockClient generates deterministic questions without a live service. Used
// when LLM_API_KEY is "mock" and throughout the tests.
type mockClient struct{}

// NewMock creates the mock question generator.
func NewMock() Client {
	return mockClient{}
}

func (mockClient) GenerateQuestion(_ context.Context, chunk domain.ContentChunk, session, difficulty string) (string, string, error) {
	excerpt := chunk.Text
	if len(excerpt) > 120 {
		excerpt = excerpt[:120]
	}

	question := fmt.Sprintf("[%s/%s/%s] Discuss the following passage: %s", session, chunk.Topic, difficulty, excerpt)
	answer := fmt.Sprintf("Model answer for chunk %s.", chunk.ID)

	return question, answer, nil
}
