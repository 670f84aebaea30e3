package dto

import (
	"time"

	"github.com/lshigami/Axolotls/internal/scoring"
)

// --- Start attempt ---

type StartAttemptRequest struct {
	MockID string `json:"mock_id" binding:"required"`
}

// AttemptOptionDTO deliberately carries no correctness flag: the answer key
// is never exposed to a candidate who is about to take the test.
type AttemptOptionDTO struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Text      *string `json:"text,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	SortOrder int     `json:"sort_order"`
}

type AttemptQuestionDTO struct {
	ID           string             `json:"id"`
	Text         *string            `json:"text,omitempty"`
	ImageURL     *string            `json:"image_url,omitempty"`
	Marks        float64            `json:"marks"`
	NegativeMark float64            `json:"negative_mark"`
	SortOrder    int                `json:"sort_order"`
	SectionID    *string            `json:"section_id,omitempty"`
	Options      []AttemptOptionDTO `json:"options"`
}

type AttemptSectionDTO struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	SortOrder int                  `json:"sort_order"`
	Questions []AttemptQuestionDTO `json:"questions"`
}

type StartAttemptResponse struct {
	AttemptID   string              `json:"attempt_id"`
	MockID      string              `json:"mock_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Duration    int                 `json:"duration"`
	StartedAt   time.Time           `json:"started_at"`
	Sections    []AttemptSectionDTO `json:"sections"`
}

// --- Submit attempt ---

type AnswerSubmissionDTO struct {
	QuestionID string `json:"question_id" binding:"required"`
	// Nil records the question as listed-but-unanswered.
	SelectedOptionID *string `json:"selected_option_id"`
}

type SubmitAttemptRequest struct {
	AttemptID string                `json:"attempt_id" binding:"required"`
	Answers   []AnswerSubmissionDTO `json:"answers" binding:"dive"`
	TimeTaken *int                  `json:"time_taken,omitempty"` // seconds; computed from startedAt when absent
}

type SubmitAttemptResponse struct {
	AttemptID           string                  `json:"attempt_id"`
	MockID              string                  `json:"mock_id"`
	Title               string                  `json:"title"`
	Status              string                  `json:"status"`
	Score               float64                 `json:"score"`
	Percentage          float64                 `json:"percentage"`
	TotalMarks          float64                 `json:"total_marks"`
	ObtainedMarks       float64                 `json:"obtained_marks"`
	TimeTaken           int                     `json:"time_taken"`
	SubmittedAt         time.Time               `json:"submitted_at"`
	TotalQuestions      int                     `json:"total_questions"`
	AnsweredQuestions   int                     `json:"answered_questions"`
	CorrectAnswers      int                     `json:"correct_answers"`
	IncorrectAnswers    int                     `json:"incorrect_answers"`
	UnansweredQuestions int                     `json:"unanswered_questions"`
	SectionWiseResults  []scoring.SectionResult `json:"section_wise_results"`
}

// --- History ---

type AttemptSummaryDTO struct {
	ID                  string                  `json:"id"`
	MockID              string                  `json:"mock_id"`
	MockTitle           string                  `json:"mock_title"`
	StartedAt           time.Time               `json:"started_at"`
	SubmittedAt         *time.Time              `json:"submitted_at,omitempty"`
	Score               *float64                `json:"score,omitempty"`
	Percentage          *float64                `json:"percentage,omitempty"`
	Status              string                  `json:"status"`
	TotalMarks          float64                 `json:"total_marks"`
	ObtainedMarks       float64                 `json:"obtained_marks"`
	TotalQuestions      int                     `json:"total_questions"`
	AnsweredQuestions   int                     `json:"answered_questions"`
	CorrectAnswers      int                     `json:"correct_answers"`
	IncorrectAnswers    int                     `json:"incorrect_answers"`
	UnansweredQuestions int                     `json:"unanswered_questions"`
	SectionWiseResults  []scoring.SectionResult `json:"section_wise_results"`
}

type UserAttemptsResponse struct {
	Attempts []AttemptSummaryDTO `json:"attempts"`
}

// Detail view reveals correctness per question and per option.

type DetailOptionDTO struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Text      *string `json:"text,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	SortOrder int     `json:"sort_order"`
	IsCorrect bool    `json:"is_correct"`
}

type DetailQuestionDTO struct {
	ID                   string            `json:"id"`
	Text                 *string           `json:"text,omitempty"`
	ImageURL             *string           `json:"image_url,omitempty"`
	Marks                float64           `json:"marks"`
	NegativeMark         float64           `json:"negative_mark"`
	SortOrder            int               `json:"sort_order"`
	SectionID            *string           `json:"section_id,omitempty"`
	UserSelectedOptionID *string           `json:"user_selected_option_id,omitempty"`
	CorrectOptionID      *string           `json:"correct_option_id,omitempty"`
	IsCorrect            bool              `json:"is_correct"`
	Options              []DetailOptionDTO `json:"options"`
}

type DetailSectionDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	SortOrder int                 `json:"sort_order"`
	Questions []DetailQuestionDTO `json:"questions"`
}

type AttemptDetailsResponse struct {
	AttemptID           string                  `json:"attempt_id"`
	MockID              string                  `json:"mock_id"`
	Title               string                  `json:"title"`
	Description         string                  `json:"description,omitempty"`
	Duration            int                     `json:"duration"`
	StartedAt           time.Time               `json:"started_at"`
	SubmittedAt         *time.Time              `json:"submitted_at,omitempty"`
	TimeTaken           *int                    `json:"time_taken,omitempty"`
	Score               *float64                `json:"score,omitempty"`
	Percentage          *float64                `json:"percentage,omitempty"`
	Status              string                  `json:"status"`
	TotalMarks          float64                 `json:"total_marks"`
	ObtainedMarks       float64                 `json:"obtained_marks"`
	TotalQuestions      int                     `json:"total_questions"`
	AnsweredQuestions   int                     `json:"answered_questions"`
	CorrectAnswers      int                     `json:"correct_answers"`
	IncorrectAnswers    int                     `json:"incorrect_answers"`
	UnansweredQuestions int                     `json:"unanswered_questions"`
	Sections            []DetailSectionDTO      `json:"sections"`
	SectionWiseResults  []scoring.SectionResult `json:"section_wise_results"`
}
