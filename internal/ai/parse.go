package ai

import (
	"encoding/json"
	"fmt"

	models "quizify/internal/models"
)

const (
	minOptions = 2
	maxOptions = 6
)

type generatedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type generatedQuestion struct {
	Question string            `json:"question"`
	Options  []generatedOption `json:"options"`
}

type generatedPayload struct {
	Questions []generatedQuestion `json:"questions"`
}

// ParseGeneratedQuestions decodes and validates the model's JSON payload.
// The model is not trusted: every question must have non-empty text,
// 2-6 options, and exactly one correct option, otherwise the whole payload
// is rejected and the caller falls back to the offline generator.
func ParseGeneratedQuestions(data []byte) ([]models.Question, error) {
	var payload generatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("ai: invalid questions payload: %w", err)
	}

	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("ai: payload contains no questions")
	}

	questions := make([]models.Question, 0, len(payload.Questions))
	for i, generated := range payload.Questions {
		if generated.Question == "" {
			return nil, fmt.Errorf("ai: question %d has empty text", i)
		}
		if len(generated.Options) < minOptions || len(generated.Options) > maxOptions {
			return nil, fmt.Errorf("ai: question %d has %d options, want %d-%d", i, len(generated.Options), minOptions, maxOptions)
		}

		question := models.Question{Question: generated.Question}
		correct := 0
		for j, option := range generated.Options {
			if option.Text == "" {
				return nil, fmt.Errorf("ai: question %d option %d has empty text", i, j)
			}
			if option.IsCorrect {
				correct++
			}
			question.Options = append(question.Options, models.Option{
				Text:      option.Text,
				IsCorrect: option.IsCorrect,
			})
		}
		if correct != 1 {
			return nil, fmt.Errorf("ai: question %d has %d correct options, want exactly 1", i, correct)
		}

		questions = append(questions, question)
	}

	return questions, nil
}
