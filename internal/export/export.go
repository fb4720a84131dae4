// Package export renders a finished exam assembly to files: student and
// solutions JSON documents, and an answer-sheet workbook.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/finprep/exam-engine/internal/core/domain"
	"github.com/finprep/exam-engine/internal/generate"
)

// Exporter writes exam documents into a target directory.
type Exporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewExporter(dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

// examDocument is the serialized exam shape consumed by the rendering and
// presentation collaborators.
type examDocument struct {
	ExamID           string             `json:"exam_id"`
	Session          string             `json:"session"`
	CreatedAt        time.Time          `json:"created_at"`
	TotalQuestions   int                `json:"total_questions"`
	TotalTimeMinutes int                `json:"total_time_minutes"`
	TotalPoints      int                `json:"total_points"`
	TopicPercentages map[string]float64 `json:"topic_percentages"`
	Instructions     []string           `json:"instructions"`
	Questions        []questionDocument `json:"questions"`
}

type questionDocument struct {
	Number               int    `json:"question_number"`
	ID                   string `json:"question_id"`
	Topic                string `json:"topic"`
	Difficulty           string `json:"difficulty"`
	Points               int    `json:"points"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
	Question             string `json:"question"`
	Answer               string `json:"answer,omitempty"`
}

// WriteJSON writes the student exam (answers stripped) and the solutions
// variant, returning both paths.
func (e *Exporter) WriteJSON(assembly domain.ExamAssembly, bodies map[string]generate.Item) (string, string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	student := e.document(assembly, bodies, false)
	solutions := e.document(assembly, bodies, true)

	studentPath := filepath.Join(e.dir, assembly.ExamID+"_exam.json")
	if err := writeJSONFile(studentPath, student); err != nil {
		return "", "", err
	}

	solutionsPath := filepath.Join(e.dir, assembly.ExamID+"_solutions.json")
	if err := writeJSONFile(solutionsPath, solutions); err != nil {
		return "", "", err
	}

	e.logger.Info().Str("exam_id", assembly.ExamID).Str("dir", e.dir).Msg("exam exported")

	return studentPath, solutionsPath, nil
}

func (e *Exporter) document(assembly domain.ExamAssembly, bodies map[string]generate.Item, withAnswers bool) examDocument {
	doc := examDocument{
		ExamID:           assembly.ExamID,
		Session:          assembly.Session,
		CreatedAt:        assembly.CreatedAt,
		TotalQuestions:   len(assembly.Items),
		TotalTimeMinutes: int(assembly.TotalTime.Minutes()),
		TotalPoints:      assembly.TotalPoints,
		TopicPercentages: assembly.TopicPercentages,
		Instructions:     assembly.Instructions,
	}

	for i, item := range assembly.Items {
		q := questionDocument{
			Number:               i + 1,
			ID:                   item.ID,
			Topic:                item.Topic,
			Difficulty:           item.Difficulty,
			Points:               item.Points,
			EstimatedTimeMinutes: int(item.EstimatedTime.Minutes()),
		}

		if body, ok := bodies[item.ID]; ok {
			q.Question = body.Question
			if withAnswers {
				q.Answer = body.Answer
			}
		}

		doc.Questions = append(doc.Questions, q)
	}

	return doc
}

func writeJSONFile(path string, doc examDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal exam document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write exam document: %w", err)
	}

	return nil
}

const answerSheetName = "Answer Sheet"

// WriteAnswerSheet writes an xlsx answer sheet with one row per question and
// an empty response column for the candidate.
func (e *Exporter) WriteAnswerSheet(assembly domain.ExamAssembly) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	idx, err := f.NewSheet(answerSheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}

	f.SetActiveSheet(idx)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"Question", "Question ID", "Topic", "Difficulty", "Points", "Response"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(answerSheetName, cell, header); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for i, item := range assembly.Items {
		row := i + 2
		values := []interface{}{i + 1, item.ID, item.Topic, item.Difficulty, item.Points, ""}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(answerSheetName, cell, v); err != nil {
				return "", fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	path := filepath.Join(e.dir, assembly.ExamID+"_answer_sheet.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save answer sheet: %w", err)
	}

	return path, nil
}
