package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Option struct {
	Text      string `bson:"text" json:"text" validate:"required"`
	IsCorrect bool   `bson:"is_correct" json:"isCorrect"`
}

type Question struct {
	Question string   `bson:"question" json:"question" validate:"required"`
	Options  []Option `bson:"options" json:"options" validate:"required,min=2,max=6,dive"`
}

type Quiz struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	Quiz_id     string             `bson:"quiz_id" json:"quiz_id"`
	Title       string             `bson:"title" json:"title" validate:"required,max=100"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Questions   []Question         `bson:"questions" json:"questions" validate:"required,min=1,dive"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	PdfURL      string             `bson:"pdf_url,omitempty" json:"pdfUrl,omitempty"`
	Created_at  time.Time          `bson:"created_at" json:"created_at"`
	Updated_at  time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasCorrectOption reports whether every question carries at least one option
// marked correct. The validator tags cover counts; this covers the authoring
// invariant the tags cannot express.
func (q Quiz) HasCorrectOption() bool {
	for _, question := range q.Questions {
		correct := 0
		for _, option := range question.Options {
			if option.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return false
		}
	}
	return true
}
