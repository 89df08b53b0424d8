package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"quizify/internal/ai"
	models "quizify/internal/models"
	httpClient "quizify/internal/utility/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GenerateRequest struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"numQuestions"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	SaveToDb     bool   `json:"saveToDb"`
}

type GenerateResponse struct {
	Questions []models.Question `json:"questions"`
	Warning   string            `json:"warning,omitempty"`
	Quiz      *models.Quiz      `json:"quiz,omitempty"`
}

// GenerateQuestions returns the question-generation handler. The AI client is
// injected here rather than living in a package variable so tests and main
// decide its lifetime.
func GenerateQuestions(client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r)
		if !ok {
			httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
			return
		}
		if user.Role != models.RoleTeacher {
			httpClient.RespondError(w, http.StatusForbidden, "Only teachers can generate questions", nil)
			return
		}

		var request GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if request.Text == "" {
			httpClient.RespondError(w, http.StatusBadRequest, "Valid text content is required", nil)
			return
		}
		if request.NumQuestions <= 0 {
			request.NumQuestions = 5
		}

		response := GenerateResponse{}
		if client.Configured() {
			questions, err := client.GenerateQuestions(request.Text, request.NumQuestions)
			if err != nil {
				log.Printf("AI question generation failed: %v", err)
				response.Questions = ai.SampleQuestions(request.Text, request.NumQuestions)
				response.Warning = "Using sample questions (AI generation failed)"
			} else {
				response.Questions = questions
			}
		} else {
			response.Questions = ai.SampleQuestions(request.Text, request.NumQuestions)
			response.Warning = "Using sample questions (AI API key not configured)"
		}

		if request.SaveToDb && request.Title != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
			defer cancel()

			quiz := models.Quiz{
				ID:          primitive.NewObjectID(),
				Title:       request.Title,
				Description: request.Description,
				Questions:   response.Questions,
				CreatedBy:   user.User_id,
				Created_at:  time.Now(),
				Updated_at:  time.Now(),
			}
			quiz.Quiz_id = quiz.ID.Hex()

			if _, err := quizCollection.InsertOne(ctx, quiz); err != nil {
				httpClient.RespondError(w, http.StatusInternalServerError, "Error saving quiz", err)
				return
			}
			response.Quiz = &quiz
		}

		httpClient.RespondSuccess(w, response)
	}
}
