package dto

// OptionCreateDTO is used within QuestionCreateDTO for mock authoring.
type OptionCreateDTO struct {
	Label     string  `json:"label" binding:"required"`
	Text      *string `json:"text"`
	ImageURL  *string `json:"image_url"`
	IsCorrect bool    `json:"is_correct"`
}

type QuestionCreateDTO struct {
	Text         *string           `json:"text"`
	ImageURL     *string           `json:"image_url"`
	Marks        float64           `json:"marks" binding:"min=0"`
	NegativeMark float64           `json:"negative_mark" binding:"min=0"`
	Options      []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
}

type SectionCreateDTO struct {
	Name      string              `json:"name" binding:"required"`
	SortOrder int                 `json:"sort_order" binding:"required,min=1"`
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// MockCreateDTO is for creating a mock with all its sections, questions
// and options in one call.
type MockCreateDTO struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description,omitempty"`
	Duration    int                `json:"duration" binding:"required,min=1"` // minutes
	Sections    []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
}

type MockCreateRequest struct {
	Mock MockCreateDTO `json:"mock" binding:"required"`
}

type MockCreatedDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Duration       int    `json:"duration"`
	SectionsCount  int    `json:"sections_count"`
	QuestionsCount int    `json:"questions_count"`
}
