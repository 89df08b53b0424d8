// Package scoring holds the pure quiz grading and statistics computations.
// Nothing here touches the database or mutates its inputs, so the functions
// are safe to call from any number of request handlers at once.
package scoring

import (
	"math"

	models "quizify/internal/models"
)

// ScoreAnswers grades one attempt against the quiz's questions. An answer
// whose question or option index is out of range scores as incorrect rather
// than failing; unanswered questions are simply absent, never scored as
// wrong. The returned score is the count of correct answers. The caller is
// responsible for recording totalQuestions = len(questions), not
// len(answers).
func ScoreAnswers(questions []models.Question, answers []models.AnswerInput) ([]models.Answer, int) {
	scored := make([]models.Answer, 0, len(answers))
	score := 0

	for _, answer := range answers {
		isCorrect := false
		if answer.QuestionIndex >= 0 && answer.QuestionIndex < len(questions) {
			options := questions[answer.QuestionIndex].Options
			if answer.SelectedOptionIndex >= 0 && answer.SelectedOptionIndex < len(options) {
				isCorrect = options[answer.SelectedOptionIndex].IsCorrect
			}
		}
		if isCorrect {
			score++
		}
		scored = append(scored, models.Answer{
			QuestionIndex:       answer.QuestionIndex,
			SelectedOptionIndex: answer.SelectedOptionIndex,
			IsCorrect:           isCorrect,
		})
	}

	return scored, score
}

// Percentage converts a raw score into a rounded integer percentage.
// A zero-question quiz reports 0 instead of dividing by zero.
func Percentage(score int, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalQuestions) * 100))
}

type QuestionStat struct {
	QuestionIndex  int `json:"questionIndex"`
	CorrectCount   int `json:"correctCount"`
	IncorrectCount int `json:"incorrectCount"`
}

// CorrectRate is the percentage of responses to this question that were
// correct. A question nobody answered reports 0.
func (s QuestionStat) CorrectRate() int {
	total := s.CorrectCount + s.IncorrectCount
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectCount) / float64(total) * 100))
}

type QuizStats struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	AverageScore     int            `json:"averageScore"`
	HighestScore     int            `json:"highestScore"`
	LowestScore      int            `json:"lowestScore"`
	QuestionStats    []QuestionStat `json:"questionStats"`
}

// Aggregate computes quiz-wide statistics over all submissions. Scores are
// compared as integer percentages. The lowest score is seeded at 100 and
// explicitly overridden to 0 when there are no submissions. Accumulation is
// commutative, so the caller's submission order does not matter.
func Aggregate(questionCount int, submissions []models.Submission) QuizStats {
	stats := QuizStats{
		TotalSubmissions: len(submissions),
		LowestScore:      100,
		QuestionStats:    make([]QuestionStat, questionCount),
	}
	for i := range stats.QuestionStats {
		stats.QuestionStats[i].QuestionIndex = i
	}

	totalScore := 0
	for _, submission := range submissions {
		percentage := Percentage(submission.Score, submission.TotalQuestions)
		totalScore += percentage

		if percentage > stats.HighestScore {
			stats.HighestScore = percentage
		}
		if percentage < stats.LowestScore {
			stats.LowestScore = percentage
		}

		for _, answer := range submission.Answers {
			if answer.QuestionIndex < 0 || answer.QuestionIndex >= questionCount {
				continue
			}
			if answer.IsCorrect {
				stats.QuestionStats[answer.QuestionIndex].CorrectCount++
			} else {
				stats.QuestionStats[answer.QuestionIndex].IncorrectCount++
			}
		}
	}

	if len(submissions) == 0 {
		stats.LowestScore = 0
		return stats
	}

	stats.AverageScore = int(math.Round(float64(totalScore) / float64(len(submissions))))
	return stats
}
