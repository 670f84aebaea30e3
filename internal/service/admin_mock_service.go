package service

import (
	"github.com/google/uuid"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
)

type AdminMockService interface {
	CreateMock(req dto.MockCreateRequest) (*dto.MockCreatedDTO, error)
}

type adminMockService struct {
	mockRepo repository.MockRepository
}

func NewAdminMockService(mockRepo repository.MockRepository) AdminMockService {
	return &adminMockService{mockRepo: mockRepo}
}

func (s *adminMockService) CreateMock(req dto.MockCreateRequest) (*dto.MockCreatedDTO, error) {
	m := req.Mock
	log.Info().Str("title", m.Title).Int("sections", len(m.Sections)).Msg("Creating mock")

	sortOrders := make(map[int]bool, len(m.Sections))
	questionsCount := 0

	// The id is generated up front: questions reference the mock directly
	// (not only through their section) and gorm's association create only
	// fills the immediate parent's foreign key.
	mockModel := model.Mock{
		ID:          uuid.NewString(),
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		IsActive:    true,
	}

	for _, sec := range m.Sections {
		if sortOrders[sec.SortOrder] {
			return nil, apperr.BadRequest("duplicate section sort_order %d", sec.SortOrder)
		}
		sortOrders[sec.SortOrder] = true

		sectionModel := model.Section{
			Name:      sec.Name,
			SortOrder: sec.SortOrder,
		}

		for qIdx, q := range sec.Questions {
			if q.Marks < 0 || q.NegativeMark < 0 {
				return nil, apperr.BadRequest("marks and negative_mark must be non-negative (section %q, question %d)", sec.Name, qIdx+1)
			}
			if len(q.Options) < 2 {
				return nil, apperr.BadRequest("a question needs at least 2 options (section %q, question %d)", sec.Name, qIdx+1)
			}
			correctCount := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correctCount++
				}
			}
			if correctCount != 1 {
				return nil, apperr.BadRequest("exactly one option must be correct, got %d (section %q, question %d)", correctCount, sec.Name, qIdx+1)
			}

			questionModel := model.Question{
				MockID:       mockModel.ID,
				Text:         q.Text,
				ImageURL:     q.ImageURL,
				Marks:        q.Marks,
				NegativeMark: q.NegativeMark,
				SortOrder:    qIdx + 1,
			}
			for oIdx, o := range q.Options {
				questionModel.Options = append(questionModel.Options, model.Option{
					Label:     o.Label,
					Text:      o.Text,
					ImageURL:  o.ImageURL,
					IsCorrect: o.IsCorrect,
					SortOrder: oIdx + 1,
				})
			}
			sectionModel.Questions = append(sectionModel.Questions, questionModel)
			questionsCount++
		}

		mockModel.Sections = append(mockModel.Sections, sectionModel)
	}

	if err := s.mockRepo.Create(&mockModel); err != nil {
		log.Error().Err(err).Str("title", m.Title).Msg("Failed to create mock")
		return nil, apperr.Internal(err, "failed to create mock")
	}

	log.Info().Str("mockID", mockModel.ID).Int("questions", questionsCount).Msg("Mock created successfully")

	return &dto.MockCreatedDTO{
		ID:             mockModel.ID,
		Title:          mockModel.Title,
		Description:    mockModel.Description,
		Duration:       mockModel.Duration,
		SectionsCount:  len(mockModel.Sections),
		QuestionsCount: questionsCount,
	}, nil
}
