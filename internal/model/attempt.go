package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress    = "IN_PROGRESS"
	AttemptStatusSubmitted     = "SUBMITTED"
	AttemptStatusAutoSubmitted = "AUTO_SUBMITTED"
)

// IsTerminalStatus reports whether no further transition is permitted.
// AUTO_SUBMITTED is produced by an external timer, never by this service.
func IsTerminalStatus(status string) bool {
	return status == AttemptStatusSubmitted || status == AttemptStatusAutoSubmitted
}

// Attempt is one user's single timed run through one mock. It is created
// IN_PROGRESS, mutated exactly once on submission, then read-only.
type Attempt struct {
	ID          string     `gorm:"type:uuid;primarykey" json:"id"`
	UserID      string     `json:"user_id" gorm:"not null;index"`
	MockID      string     `json:"mock_id" gorm:"not null;index"`
	Mock        Mock       `json:"mock,omitempty" gorm:"foreignKey:MockID"`
	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	TimeTaken   *int       `json:"time_taken,omitempty"` // seconds
	Score       *float64   `json:"score,omitempty"`      // may be negative
	Percentage  *float64   `json:"percentage,omitempty"`
	Status      string     `json:"status" gorm:"not null;default:'IN_PROGRESS'"`
	Answers     []Answer   `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
