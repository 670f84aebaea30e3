package repository

import (
	"errors"

	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

// QuestionForScoring is the question bank projection the scoring paths
// consume: every question of a mock with its section assignment, marks,
// penalty and the id of the single correct option (nil when none is
// configured). Section names ride along so submission needs no second
// name-resolution query.
type QuestionForScoring struct {
	ID              string
	SectionID       *string
	SectionName     string
	Marks           float64
	NegativeMark    float64
	CorrectOptionID *string
}

type MockRepository interface {
	// Create persists a mock together with its nested sections, questions
	// and options in one transaction (gorm association create).
	Create(mock *model.Mock) error
	FindAllActive() ([]model.Mock, error)
	// FindByIDWithContent returns (nil, nil) when the mock does not exist.
	// Sections, questions and options are preloaded in sort order.
	FindByIDWithContent(id string) (*model.Mock, error)
	// QuestionsForScoring returns every question of the mock regardless of
	// section. An empty slice means the mock has no questions; callers
	// distinguish that from "mock not found" themselves.
	QuestionsForScoring(mockID string) ([]QuestionForScoring, error)
}

type mockRepository struct {
	db *gorm.DB
}

func NewMockRepository(db *gorm.DB) MockRepository {
	return &mockRepository{db: db}
}

func (r *mockRepository) Create(mock *model.Mock) error {
	return r.db.Create(mock).Error
}

func (r *mockRepository) FindAllActive() ([]model.Mock, error) {
	var mocks []model.Mock
	err := r.db.
		Where("is_active = ?", true).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&mocks).Error
	return mocks, err
}

func (r *mockRepository) FindByIDWithContent(id string) (*model.Mock, error) {
	var mock model.Mock
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.sort_order ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.sort_order ASC")
		}).
		Preload("Sections.Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.sort_order ASC")
		}).
		First(&mock, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mock, nil
}

func (r *mockRepository) QuestionsForScoring(mockID string) ([]QuestionForScoring, error) {
	var questions []model.Question
	err := r.db.
		Where("mock_id = ?", mockID).
		Preload("Options", "is_correct = ?", true).
		Order("sort_order ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	var sections []model.Section
	if err := r.db.Where("mock_id = ?", mockID).Find(&sections).Error; err != nil {
		return nil, err
	}
	sectionNames := make(map[string]string, len(sections))
	for _, s := range sections {
		sectionNames[s.ID] = s.Name
	}

	result := make([]QuestionForScoring, 0, len(questions))
	for _, q := range questions {
		qfs := QuestionForScoring{
			ID:           q.ID,
			SectionID:    q.SectionID,
			Marks:        q.Marks,
			NegativeMark: q.NegativeMark,
		}
		if q.SectionID != nil {
			qfs.SectionName = sectionNames[*q.SectionID]
		}
		if len(q.Options) > 0 {
			correctID := q.Options[0].ID
			qfs.CorrectOptionID = &correctID
		}
		result = append(result, qfs)
	}
	return result, nil
}
