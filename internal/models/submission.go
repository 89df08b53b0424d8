package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerInput is what the student submits for one question.
type AnswerInput struct {
	QuestionIndex       int `json:"questionIndex"`
	SelectedOptionIndex int `json:"selectedOptionIndex"`
}

// Answer is a stored answer annotated with its computed correctness.
type Answer struct {
	QuestionIndex       int  `bson:"question_index" json:"questionIndex"`
	SelectedOptionIndex int  `bson:"selected_option_index" json:"selectedOptionIndex"`
	IsCorrect           bool `bson:"is_correct" json:"isCorrect"`
}

// Submission is one student's single graded attempt at a quiz. Immutable
// after creation; at most one exists per (quiz, student) pair.
type Submission struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	Submission_id  string             `bson:"submission_id" json:"submission_id"`
	Quiz_id        string             `bson:"quiz_id" json:"quiz_id"`
	Student_id     string             `bson:"student_id" json:"student_id"`
	Answers        []Answer           `bson:"answers" json:"answers"`
	Score          int                `bson:"score" json:"score"`
	TotalQuestions int                `bson:"total_questions" json:"totalQuestions"`
	SubmittedAt    time.Time          `bson:"submitted_at" json:"submittedAt"`
}
