package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	models "quizify/internal/models"
	"quizify/internal/scoring"
	httpClient "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ownedQuiz loads a quiz and verifies the requesting teacher created it.
func ownedQuiz(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Quiz, bool) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return models.Quiz{}, false
	}
	if user.Role != models.RoleTeacher {
		httpClient.RespondError(w, http.StatusForbidden, "Only teachers can view quiz statistics", nil)
		return models.Quiz{}, false
	}

	quizID := chi.URLParam(r, "id")
	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving quiz", err)
		}
		return models.Quiz{}, false
	}
	if quiz.CreatedBy != user.User_id {
		httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to view this quiz", nil)
		return models.Quiz{}, false
	}

	return quiz, true
}

func quizSubmissions(ctx context.Context, quizID string) ([]models.Submission, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cur, err := submissionCollection.Find(ctx, bson.M{"quiz_id": quizID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	submissions := []models.Submission{}
	if err := cur.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// QuizStatistics aggregates all submissions to a quiz. Statistics are
// recomputed on every read, never cached.
func QuizStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	quiz, ok := ownedQuiz(ctx, w, r)
	if !ok {
		return
	}

	submissions, err := quizSubmissions(ctx, quiz.Quiz_id)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching submissions", err)
		return
	}

	stats := scoring.Aggregate(len(quiz.Questions), submissions)
	httpClient.RespondSuccess(w, stats)
}

// ExportResults streams the quiz's results table as a CSV attachment.
func ExportResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	quiz, ok := ownedQuiz(ctx, w, r)
	if !ok {
		return
	}

	submissions, err := quizSubmissions(ctx, quiz.Quiz_id)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching submissions", err)
		return
	}

	rows := make([]scoring.ExportRow, 0, len(submissions))
	for _, submission := range submissions {
		row := scoring.ExportRow{
			SubmittedAt:    submission.SubmittedAt,
			Score:          submission.Score,
			TotalQuestions: submission.TotalQuestions,
		}
		if name, email, err := resolveStudent(ctx, submission.Student_id); err == nil {
			row.StudentName = name
			row.StudentEmail = email
		}
		rows = append(rows, row)
	}

	fileName := strings.ReplaceAll(quiz.Title, " ", "_") + "_results.csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := scoring.WriteCSV(w, rows); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error exporting results", err)
	}
}
