package dto

import "time"

// SectionSummaryDTO is used when listing mocks.
type SectionSummaryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type MockSummaryDTO struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Duration    int                 `json:"duration"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	Sections    []SectionSummaryDTO `json:"sections"`
}

type MockListResponse struct {
	Mocks []MockSummaryDTO `json:"mocks"`
}

// Answer-key view: full mock content with correct options revealed.

type AnswerKeyOptionDTO struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Text      *string `json:"text,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	SortOrder int     `json:"sort_order"`
	IsCorrect bool    `json:"is_correct"`
}

type AnswerKeyQuestionDTO struct {
	ID           string               `json:"id"`
	Text         *string              `json:"text,omitempty"`
	ImageURL     *string              `json:"image_url,omitempty"`
	Marks        float64              `json:"marks"`
	NegativeMark float64              `json:"negative_mark"`
	SortOrder    int                  `json:"sort_order"`
	SectionID    *string              `json:"section_id,omitempty"`
	Options      []AnswerKeyOptionDTO `json:"options"`
}

type AnswerKeySectionDTO struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	SortOrder int                    `json:"sort_order"`
	Questions []AnswerKeyQuestionDTO `json:"questions"`
}

type MockAnswerKeyResponse struct {
	MockID      string                `json:"mock_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Duration    int                   `json:"duration"`
	Sections    []AnswerKeySectionDTO `json:"sections"`
}
