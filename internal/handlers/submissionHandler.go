package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	"quizify/internal/scoring"
	httpClient "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var submissionCollection *mongo.Collection = database.OpenCollection(database.Client, "submission")

type SubmissionRequest struct {
	QuizID  string               `json:"quizId"`
	Answers []models.AnswerInput `json:"answers"`
}

// SubmissionView is a submission resolved with its student's identity and
// quiz title for teacher-facing listings.
type SubmissionView struct {
	models.Submission
	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
	QuizTitle    string `json:"quizTitle,omitempty"`
}

// CreateSubmission grades and stores a student's attempt. At most one
// submission per (quiz, student) pair may exist; the unique index created by
// database.EnsureIndexes makes the insert atomic, so two racing requests
// cannot both succeed.
func CreateSubmission(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	if user.Role != models.RoleStudent {
		httpClient.RespondError(w, http.StatusForbidden, "Only students can submit quizzes", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var request SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if request.QuizID == "" || request.Answers == nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": request.QuizID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving quiz", err)
		}
		return
	}

	// Courtesy pre-check; the unique index below is what actually closes
	// the race.
	alreadySubmitted, err := submissionCollection.CountDocuments(ctx, bson.M{
		"quiz_id":    request.QuizID,
		"student_id": user.User_id,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadySubmitted > 0 {
		httpClient.RespondError(w, http.StatusConflict, "You have already submitted this quiz", nil)
		return
	}

	answers, score := scoring.ScoreAnswers(quiz.Questions, request.Answers)

	submission := models.Submission{
		ID:             primitive.NewObjectID(),
		Quiz_id:        request.QuizID,
		Student_id:     user.User_id,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		SubmittedAt:    time.Now(),
	}
	submission.Submission_id = submission.ID.Hex()

	_, err = submissionCollection.InsertOne(ctx, submission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			httpClient.RespondError(w, http.StatusConflict, "You have already submitted this quiz", nil)
			return
		}
		httpClient.RespondError(w, http.StatusInternalServerError, "Error creating submission", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submission)
}

// GetSubmissions lists submissions. Teachers see submissions for quizzes they
// created (optionally filtered by quizId or studentId); students see only
// their own.
func GetSubmissions(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	quizID := r.URL.Query().Get("quizId")
	studentID := r.URL.Query().Get("studentId")

	var filter bson.M
	if user.Role == models.RoleTeacher {
		if quizID != "" {
			var quiz models.Quiz
			err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
			if err != nil || quiz.CreatedBy != user.User_id {
				httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to view submissions for this quiz", nil)
				return
			}
			filter = bson.M{"quiz_id": quizID}
		} else {
			quizIDs, err := teacherQuizIDs(ctx, user.User_id)
			if err != nil {
				httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching submissions", err)
				return
			}
			filter = bson.M{"quiz_id": bson.M{"$in": quizIDs}}
			if studentID != "" {
				filter["student_id"] = studentID
			}
		}
	} else {
		filter = bson.M{"student_id": user.User_id}
		if quizID != "" {
			filter["quiz_id"] = quizID
		}
	}

	cur, err := submissionCollection.Find(ctx, filter)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching submissions", err)
		return
	}
	defer cur.Close(ctx)

	submissions := []models.Submission{}
	if err := cur.All(ctx, &submissions); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching submissions", err)
		return
	}

	views := make([]SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		view := SubmissionView{Submission: submission}
		if user.Role == models.RoleTeacher {
			if name, email, err := resolveStudent(ctx, submission.Student_id); err == nil {
				view.StudentName = name
				view.StudentEmail = email
			}
		}
		if title, err := resolveQuizTitle(ctx, submission.Quiz_id); err == nil {
			view.QuizTitle = title
		}
		views = append(views, view)
	}

	httpClient.RespondSuccess(w, views)
}

func GetSubmissionByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	submissionID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var submission models.Submission
	err := submissionCollection.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Submission not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving submission", err)
		}
		return
	}

	switch user.Role {
	case models.RoleStudent:
		// Students can only view their own submissions
		if submission.Student_id != user.User_id {
			httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to view this submission", nil)
			return
		}
	case models.RoleTeacher:
		// Teachers can only view submissions for quizzes they created
		var quiz models.Quiz
		err := quizCollection.FindOne(ctx, bson.M{"quiz_id": submission.Quiz_id}).Decode(&quiz)
		if err != nil || quiz.CreatedBy != user.User_id {
			httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to view this submission", nil)
			return
		}
	}

	view := SubmissionView{Submission: submission}
	if name, email, err := resolveStudent(ctx, submission.Student_id); err == nil {
		view.StudentName = name
		view.StudentEmail = email
	}
	if title, err := resolveQuizTitle(ctx, submission.Quiz_id); err == nil {
		view.QuizTitle = title
	}

	httpClient.RespondSuccess(w, view)
}

func teacherQuizIDs(ctx context.Context, teacherID string) ([]string, error) {
	cur, err := quizCollection.Find(ctx, bson.M{"created_by": teacherID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var quiz models.Quiz
		if err := cur.Decode(&quiz); err != nil {
			return nil, err
		}
		ids = append(ids, quiz.Quiz_id)
	}
	return ids, cur.Err()
}

func resolveStudent(ctx context.Context, studentID string) (name string, email string, err error) {
	var student models.User
	err = userCollection.FindOne(ctx, bson.M{"user_id": studentID}).Decode(&student)
	if err != nil {
		return "", "", err
	}
	if student.Name != nil {
		name = *student.Name
	}
	if student.Email != nil {
		email = *student.Email
	}
	return name, email, nil
}

func resolveQuizTitle(ctx context.Context, quizID string) (string, error) {
	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
	if err != nil {
		return "", err
	}
	return quiz.Title, nil
}
