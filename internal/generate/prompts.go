package generate

import (
	"fmt"

	"github.com/finprep/exam-engine/internal/core/domain"
)

var difficultyDescriptions = map[string]string{
	domain.DifficultyLevel1: "Basic recall and understanding",
	domain.DifficultyLevel2: "Application and analysis",
	domain.DifficultyLevel3: "Synthesis and evaluation",
}

const amPromptFormat = `You are a CFA Level III exam question writer. Based on the following content, create ONE high-quality constructed response question matching the real CFA Level III morning session format.

Topic: %s
Difficulty: %s - %s

Content:
%s

Return a JSON object with two keys:
- "question": the full constructed response question, including any sub-parts and point allocations
- "answer": a model answer in bullet points with a grading rubric`

const pmPromptFormat = `You are a CFA Level III exam question writer. Based on the following content, create ONE item set with a vignette and three multiple choice questions matching the real CFA Level III afternoon session format.

Topic: %s
Difficulty: %s - %s

Content:
%s

Return a JSON object with two keys:
- "question": the vignette followed by the three questions, each with choices A, B and C
- "answer": the correct choice for each question with a short explanation`

func buildPrompt(chunk domain.ContentChunk, session, difficulty string) string {
	format := amPromptFormat
	if session == domain.SessionPM {
		format = pmPromptFormat
	}

	return fmt.Sprintf(format, chunk.Topic, difficulty, difficultyDescriptions[difficulty], chunk.Text)
}
