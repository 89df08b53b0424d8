package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	httpClient "quizify/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var quizCollection *mongo.Collection = database.OpenCollection(database.Client, "quiz")

func CreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	if user.Role != models.RoleTeacher {
		httpClient.RespondError(w, http.StatusForbidden, "Only teachers can create quizzes", nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var quiz models.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validate.Struct(quiz); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Missing required fields", err)
		return
	}
	if !quiz.HasCorrectOption() {
		httpClient.RespondError(w, http.StatusBadRequest, "Every question must have at least one correct option", nil)
		return
	}

	quiz.ID = primitive.NewObjectID()
	quiz.Quiz_id = quiz.ID.Hex()
	quiz.CreatedBy = user.User_id
	quiz.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	quiz.Updated_at = quiz.Created_at

	_, err := quizCollection.InsertOne(ctx, quiz)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error creating quiz", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quiz)
}

// GetQuizzes lists quizzes: teachers see the ones they created, students see
// all of them.
func GetQuizzes(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	filter := bson.M{}
	if user.Role == models.RoleTeacher {
		filter = bson.M{"created_by": user.User_id}
	}

	cur, err := quizCollection.Find(ctx, filter)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching quizzes", err)
		return
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching quizzes", err)
		return
	}

	httpClient.RespondSuccess(w, quizzes)
}

func GetQuizByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	quizID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving quiz", err)
		}
		return
	}

	// Teachers may only look at their own quizzes
	if user.Role == models.RoleTeacher && quiz.CreatedBy != user.User_id {
		httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to view this quiz", nil)
		return
	}

	httpClient.RespondSuccess(w, quiz)
}

func EditQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	if user.Role != models.RoleTeacher {
		httpClient.RespondError(w, http.StatusForbidden, "Only teachers can update quizzes", nil)
		return
	}
	quizID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
	if err != nil {
		httpClient.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		return
	}
	if quiz.CreatedBy != user.User_id {
		httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to update this quiz", nil)
		return
	}

	var updatedQuiz models.Quiz
	if err := json.NewDecoder(r.Body).Decode(&updatedQuiz); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(updatedQuiz); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Missing required fields", err)
		return
	}
	if !updatedQuiz.HasCorrectOption() {
		httpClient.RespondError(w, http.StatusBadRequest, "Every question must have at least one correct option", nil)
		return
	}

	filter := bson.M{"quiz_id": quizID}
	update := bson.M{"$set": bson.M{
		"title":       updatedQuiz.Title,
		"description": updatedQuiz.Description,
		"questions":   updatedQuiz.Questions,
		"pdf_url":     updatedQuiz.PdfURL,
		"updated_at":  time.Now(),
	}}

	result, err := quizCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating quiz", err)
		return
	}

	httpClient.RespondSuccess(w, result)
}

func DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}
	if user.Role != models.RoleTeacher {
		httpClient.RespondError(w, http.StatusForbidden, "Only teachers can delete quizzes", nil)
		return
	}
	quizID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var quiz models.Quiz
	err := quizCollection.FindOne(ctx, bson.M{"quiz_id": quizID}).Decode(&quiz)
	if err != nil {
		httpClient.RespondError(w, http.StatusNotFound, "Quiz not found", nil)
		return
	}
	if quiz.CreatedBy != user.User_id {
		httpClient.RespondError(w, http.StatusForbidden, "You do not have permission to delete this quiz", nil)
		return
	}

	_, err = quizCollection.DeleteOne(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting quiz", err)
		return
	}

	// Also delete all submissions for this quiz
	_, err = submissionCollection.DeleteMany(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting quiz submissions", err)
		return
	}

	httpClient.RespondSuccess(w, "Quiz deleted successfully")
}
