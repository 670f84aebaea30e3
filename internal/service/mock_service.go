package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
)

type MockService interface {
	GetAllMocks() (*dto.MockListResponse, error)
	GetMockAnswerKey(mockID string) (*dto.MockAnswerKeyResponse, error)
}

type mockService struct {
	mockRepo repository.MockRepository
}

func NewMockService(mockRepo repository.MockRepository) MockService {
	return &mockService{mockRepo: mockRepo}
}

func (s *mockService) GetAllMocks() (*dto.MockListResponse, error) {
	mocks, err := s.mockRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch mocks")
		return nil, apperr.Internal(err, "failed to fetch mocks")
	}

	resp := dto.MockListResponse{Mocks: make([]dto.MockSummaryDTO, 0, len(mocks))}
	for _, m := range mocks {
		var summary dto.MockSummaryDTO
		if err := copier.Copy(&summary, &m); err != nil {
			log.Error().Err(err).Str("mockID", m.ID).Msg("Failed to copy mock to summary DTO")
			return nil, apperr.Internal(err, "failed to prepare mock list")
		}
		resp.Mocks = append(resp.Mocks, summary)
	}
	return &resp, nil
}

func (s *mockService) GetMockAnswerKey(mockID string) (*dto.MockAnswerKeyResponse, error) {
	mock, err := s.mockRepo.FindByIDWithContent(mockID)
	if err != nil {
		log.Error().Err(err).Str("mockID", mockID).Msg("Failed to fetch mock")
		return nil, apperr.Internal(err, "failed to fetch mock")
	}
	if mock == nil {
		return nil, apperr.NotFound("mock not found")
	}
	if len(mock.Sections) == 0 {
		return nil, apperr.BadRequest("mock has no sections")
	}

	resp := dto.MockAnswerKeyResponse{
		MockID:      mock.ID,
		Title:       mock.Title,
		Description: mock.Description,
		Duration:    mock.Duration,
	}
	for _, sec := range mock.Sections {
		secDTO := dto.AnswerKeySectionDTO{
			ID:        sec.ID,
			Name:      sec.Name,
			SortOrder: sec.SortOrder,
		}
		for _, q := range sec.Questions {
			qDTO := dto.AnswerKeyQuestionDTO{
				ID:           q.ID,
				Text:         q.Text,
				ImageURL:     q.ImageURL,
				Marks:        q.Marks,
				NegativeMark: q.NegativeMark,
				SortOrder:    q.SortOrder,
				SectionID:    q.SectionID,
			}
			for _, o := range q.Options {
				qDTO.Options = append(qDTO.Options, dto.AnswerKeyOptionDTO{
					ID:        o.ID,
					Label:     o.Label,
					Text:      o.Text,
					ImageURL:  o.ImageURL,
					SortOrder: o.SortOrder,
					IsCorrect: o.IsCorrect,
				})
			}
			secDTO.Questions = append(secDTO.Questions, qDTO)
		}
		resp.Sections = append(resp.Sections, secDTO)
	}
	return &resp, nil
}
