package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mock is one exam definition. Sections, questions and options are created
// together by the authoring endpoint and treated as read-only afterwards.
type Mock struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	Duration    int       `json:"duration" gorm:"not null"` // minutes
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	Sections    []Section `json:"sections,omitempty" gorm:"foreignKey:MockID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Mock) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Section struct {
	ID        string     `gorm:"type:uuid;primarykey" json:"id"`
	MockID    string     `json:"mock_id" gorm:"not null;index"`
	Name      string     `json:"name" gorm:"not null"`
	SortOrder int        `json:"sort_order" gorm:"not null"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
