package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question belongs to a mock and optionally to one of its sections.
// SectionID is nullable: unsectioned questions are still scored, bucketed
// under a sentinel key by the scoring package.
type Question struct {
	ID           string    `gorm:"type:uuid;primarykey" json:"id"`
	MockID       string    `json:"mock_id" gorm:"not null;index"`
	SectionID    *string   `json:"section_id,omitempty" gorm:"index"`
	Text         *string   `json:"text,omitempty" gorm:"type:text"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Marks        float64   `json:"marks" gorm:"not null"`
	NegativeMark float64   `json:"negative_mark" gorm:"not null;default:0"`
	SortOrder    int       `json:"sort_order" gorm:"not null"`
	Options      []Option  `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type Option struct {
	ID         string    `gorm:"type:uuid;primarykey" json:"id"`
	QuestionID string    `json:"question_id" gorm:"not null;index"`
	Label      string    `json:"label" gorm:"not null"`
	Text       *string   `json:"text,omitempty" gorm:"type:text"`
	ImageURL   *string   `json:"image_url,omitempty"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	SortOrder  int       `json:"sort_order" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
