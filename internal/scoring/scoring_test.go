package scoring

import (
	"testing"

	models "quizify/internal/models"
)

func fourOptionQuestion(correct int) models.Question {
	q := models.Question{Question: "q"}
	for i := 0; i < 4; i++ {
		q.Options = append(q.Options, models.Option{Text: "opt", IsCorrect: i == correct})
	}
	return q
}

func TestScoreAnswersAllCorrect(t *testing.T) {
	questions := []models.Question{
		fourOptionQuestion(0),
		fourOptionQuestion(2),
		fourOptionQuestion(3),
	}
	answers := []models.AnswerInput{
		{QuestionIndex: 0, SelectedOptionIndex: 0},
		{QuestionIndex: 1, SelectedOptionIndex: 2},
		{QuestionIndex: 2, SelectedOptionIndex: 3},
	}

	scored, score := ScoreAnswers(questions, answers)
	if score != len(questions) {
		t.Fatalf("score = %d, want %d", score, len(questions))
	}
	for i, a := range scored {
		if !a.IsCorrect {
			t.Errorf("answer %d marked incorrect", i)
		}
	}
}

func TestScoreAnswersOutOfRangeIsIncorrect(t *testing.T) {
	questions := []models.Question{fourOptionQuestion(1)}

	cases := []struct {
		name   string
		answer models.AnswerInput
	}{
		{"option index too large", models.AnswerInput{QuestionIndex: 0, SelectedOptionIndex: 9}},
		{"option index negative", models.AnswerInput{QuestionIndex: 0, SelectedOptionIndex: -1}},
		{"question index too large", models.AnswerInput{QuestionIndex: 5, SelectedOptionIndex: 0}},
		{"question index negative", models.AnswerInput{QuestionIndex: -1, SelectedOptionIndex: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scored, score := ScoreAnswers(questions, []models.AnswerInput{tc.answer})
			if score != 0 {
				t.Errorf("score = %d, want 0", score)
			}
			if len(scored) != 1 || scored[0].IsCorrect {
				t.Errorf("scored = %+v, want one incorrect answer", scored)
			}
		})
	}
}

func TestScoreAnswersPartialSubmission(t *testing.T) {
	questions := []models.Question{
		fourOptionQuestion(0),
		fourOptionQuestion(1),
		fourOptionQuestion(2),
		fourOptionQuestion(3),
	}
	// Only two of four questions answered. Unanswered questions are absent,
	// not wrong; totalQuestions stays the quiz's question count.
	answers := []models.AnswerInput{
		{QuestionIndex: 0, SelectedOptionIndex: 0},
		{QuestionIndex: 3, SelectedOptionIndex: 1},
	}

	scored, score := ScoreAnswers(questions, answers)
	if score != 1 {
		t.Fatalf("score = %d, want 1", score)
	}
	if len(scored) != 2 {
		t.Fatalf("len(scored) = %d, want 2", len(scored))
	}
}

func TestScoreAnswersIdempotent(t *testing.T) {
	questions := []models.Question{fourOptionQuestion(1), fourOptionQuestion(0)}
	answers := []models.AnswerInput{
		{QuestionIndex: 0, SelectedOptionIndex: 1},
		{QuestionIndex: 1, SelectedOptionIndex: 3},
	}

	first, firstScore := ScoreAnswers(questions, answers)
	second, secondScore := ScoreAnswers(questions, answers)
	if firstScore != secondScore {
		t.Fatalf("scores differ: %d vs %d", firstScore, secondScore)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("answer %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67}, // rounds half up
		{1, 2, 50},
		{0, 5, 0},
		{5, 5, 100},
		{0, 0, 0}, // zero-question quiz must not divide by zero
		{1, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.score, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}

func submissionWithScore(score, total int, answers ...models.Answer) models.Submission {
	return models.Submission{Score: score, TotalQuestions: total, Answers: answers}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(3, nil)

	if stats.TotalSubmissions != 0 {
		t.Errorf("TotalSubmissions = %d, want 0", stats.TotalSubmissions)
	}
	if stats.AverageScore != 0 {
		t.Errorf("AverageScore = %d, want 0", stats.AverageScore)
	}
	if stats.HighestScore != 0 {
		t.Errorf("HighestScore = %d, want 0", stats.HighestScore)
	}
	// The lowest score is seeded at 100 during accumulation but must be
	// reported as 0 when nobody has submitted.
	if stats.LowestScore != 0 {
		t.Errorf("LowestScore = %d, want 0", stats.LowestScore)
	}
	if len(stats.QuestionStats) != 3 {
		t.Fatalf("len(QuestionStats) = %d, want 3", len(stats.QuestionStats))
	}
	for i, qs := range stats.QuestionStats {
		if qs.CorrectCount != 0 || qs.IncorrectCount != 0 {
			t.Errorf("QuestionStats[%d] = %+v, want zero counts", i, qs)
		}
	}
}

func TestAggregateSpread(t *testing.T) {
	submissions := []models.Submission{
		submissionWithScore(4, 4), // 100%
		submissionWithScore(2, 4), // 50%
		submissionWithScore(0, 4), // 0%
	}

	stats := Aggregate(4, submissions)
	if stats.TotalSubmissions != 3 {
		t.Errorf("TotalSubmissions = %d, want 3", stats.TotalSubmissions)
	}
	if stats.AverageScore != 50 {
		t.Errorf("AverageScore = %d, want 50", stats.AverageScore)
	}
	if stats.HighestScore != 100 {
		t.Errorf("HighestScore = %d, want 100", stats.HighestScore)
	}
	if stats.LowestScore != 0 {
		t.Errorf("LowestScore = %d, want 0", stats.LowestScore)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := submissionWithScore(3, 4, models.Answer{QuestionIndex: 0, IsCorrect: true})
	b := submissionWithScore(1, 4, models.Answer{QuestionIndex: 0, IsCorrect: false})
	c := submissionWithScore(2, 4, models.Answer{QuestionIndex: 1, IsCorrect: true})

	forward := Aggregate(4, []models.Submission{a, b, c})
	reverse := Aggregate(4, []models.Submission{c, b, a})

	if forward.AverageScore != reverse.AverageScore ||
		forward.HighestScore != reverse.HighestScore ||
		forward.LowestScore != reverse.LowestScore {
		t.Errorf("aggregate depends on submission order: %+v vs %+v", forward, reverse)
	}
	for i := range forward.QuestionStats {
		if forward.QuestionStats[i] != reverse.QuestionStats[i] {
			t.Errorf("QuestionStats[%d] differs: %+v vs %+v", i, forward.QuestionStats[i], reverse.QuestionStats[i])
		}
	}
}

func TestAggregateQuestionStats(t *testing.T) {
	submissions := []models.Submission{
		submissionWithScore(1, 2,
			models.Answer{QuestionIndex: 0, SelectedOptionIndex: 0, IsCorrect: true},
			models.Answer{QuestionIndex: 1, SelectedOptionIndex: 1, IsCorrect: false},
		),
		submissionWithScore(2, 2,
			models.Answer{QuestionIndex: 0, SelectedOptionIndex: 0, IsCorrect: true},
			models.Answer{QuestionIndex: 1, SelectedOptionIndex: 0, IsCorrect: true},
		),
	}

	stats := Aggregate(2, submissions)
	if got := stats.QuestionStats[0]; got.CorrectCount != 2 || got.IncorrectCount != 0 {
		t.Errorf("QuestionStats[0] = %+v, want 2 correct / 0 incorrect", got)
	}
	if got := stats.QuestionStats[1]; got.CorrectCount != 1 || got.IncorrectCount != 1 {
		t.Errorf("QuestionStats[1] = %+v, want 1 correct / 1 incorrect", got)
	}
}

func TestAggregateSkipsOutOfRangeAnswers(t *testing.T) {
	submissions := []models.Submission{
		submissionWithScore(0, 2,
			models.Answer{QuestionIndex: 7, IsCorrect: false},
			models.Answer{QuestionIndex: -1, IsCorrect: false},
		),
	}

	stats := Aggregate(2, submissions)
	for i, qs := range stats.QuestionStats {
		if qs.CorrectCount != 0 || qs.IncorrectCount != 0 {
			t.Errorf("QuestionStats[%d] = %+v, want zero counts", i, qs)
		}
	}
}

func TestCorrectRate(t *testing.T) {
	cases := []struct {
		stat QuestionStat
		want int
	}{
		{QuestionStat{CorrectCount: 3, IncorrectCount: 1}, 75},
		{QuestionStat{CorrectCount: 0, IncorrectCount: 0}, 0}, // no responses, no division
		{QuestionStat{CorrectCount: 0, IncorrectCount: 4}, 0},
		{QuestionStat{CorrectCount: 2, IncorrectCount: 0}, 100},
	}
	for _, tc := range cases {
		if got := tc.stat.CorrectRate(); got != tc.want {
			t.Errorf("CorrectRate(%+v) = %d, want %d", tc.stat, got, tc.want)
		}
	}
}
