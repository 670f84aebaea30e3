package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer records one selection inside a submission. SelectedOptionID is
// nullable: a null selection means the question was listed but left
// unanswered. At most one row may exist per (attempt, question).
type Answer struct {
	ID               string    `gorm:"type:uuid;primarykey" json:"id"`
	AttemptID        string    `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	QuestionID       string    `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	SelectedOptionID *string   `json:"selected_option_id,omitempty"`
	IsCorrect        bool      `json:"is_correct" gorm:"not null;default:false"`
	AnsweredAt       time.Time `json:"answered_at" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
