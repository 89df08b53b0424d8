package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	s3 "quizify/aws"
	database "quizify/database"
	"quizify/internal/ai"
	"quizify/internal/handlers"
	"quizify/internal/pdf"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	if err := database.EnsureIndexes(database.Client); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	// External collaborators are constructed once here and passed to the
	// handlers that need them.
	aiClient := ai.NewClient(os.Getenv("OPENAI_API_KEY"))
	extractor := pdf.NewExtractor(os.Getenv("CONVERT_API_SECRET"))

	awsConfig := s3.ConfigFromEnv()
	sess, err := s3.NewSession(awsConfig)
	if err != nil {
		log.Fatalf("failed to create aws session: %v", err)
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// User Routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", handlers.SignUp)
		r.Post("/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(handlers.Authentication)
			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.UpdateProfile)
		})
	})

	// Quiz routes
	r.Route("/quizzes", func(r chi.Router) {
		r.Use(handlers.Authentication)

		r.Post("/", handlers.CreateQuiz)
		r.Get("/", handlers.GetQuizzes)
		r.Get("/{id}", handlers.GetQuizByID)
		r.Put("/{id}", handlers.EditQuiz)
		r.Delete("/{id}", handlers.DeleteQuiz)
		r.Get("/{id}/statistics", handlers.QuizStatistics)
		r.Get("/{id}/export", handlers.ExportResults)
	})

	// Submission routes
	r.Route("/submissions", func(r chi.Router) {
		r.Use(handlers.Authentication)

		r.Post("/", handlers.CreateSubmission)
		r.Get("/", handlers.GetSubmissions)
		r.Get("/{id}", handlers.GetSubmissionByID)
	})

	// Content pipeline routes
	r.Group(func(r chi.Router) {
		r.Use(handlers.Authentication)

		r.Post("/generate-questions", handlers.GenerateQuestions(aiClient))
		r.Post("/upload-pdf", handlers.UploadPDF(sess, awsConfig))
		r.Post("/pdf-extractor", handlers.ExtractText(extractor))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start the server
	fmt.Printf("Server is running on http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
