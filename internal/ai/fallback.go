package ai

import (
	"fmt"
	"strings"

	models "quizify/internal/models"
)

// SampleQuestions is the offline fallback used when no API key is configured
// or the upstream call fails. It is deterministic: the same text and count
// always produce the same questions. Snippets are taken at evenly spaced
// offsets through the text.
func SampleQuestions(text string, numQuestions int) []models.Question {
	if numQuestions <= 0 {
		numQuestions = 5
	}

	questions := make([]models.Question, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		questions = append(questions, models.Question{
			Question: fmt.Sprintf("Question %d about: %q?", i+1, snippetAt(text, i, numQuestions)),
			Options: []models.Option{
				{Text: fmt.Sprintf("Answer option A for question %d", i+1), IsCorrect: i%4 == 0},
				{Text: fmt.Sprintf("Answer option B for question %d", i+1), IsCorrect: i%4 == 1},
				{Text: fmt.Sprintf("Answer option C for question %d", i+1), IsCorrect: i%4 == 2},
				{Text: fmt.Sprintf("Answer option D for question %d", i+1), IsCorrect: i%4 == 3},
			},
		})
	}

	return questions
}

// snippetAt returns up to ten words starting at the i-th of n evenly spaced
// positions in text.
func snippetAt(text string, i, n int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "the provided material"
	}

	start := 0
	if n > 0 {
		start = i * len(text) / n
	}
	end := start + 100
	if end > len(text) {
		end = len(text)
	}

	words := strings.Fields(text[start:end])
	if len(words) > 10 {
		words = words[:10]
	}
	return strings.Join(words, " ")
}
