package service

import (
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/lshigami/Axolotls/internal/scoring"
	"github.com/rs/zerolog/log"
)

// HistoryService serves the read-only views over finished attempts. Counts
// and section breakdowns are re-derived from the persisted answers with the
// same scoring routine that produced them, so both surfaces always agree.
type HistoryService interface {
	GetUserAttempts(userID string) (*dto.UserAttemptsResponse, error)
	GetAttemptDetails(attemptID, userID string) (*dto.AttemptDetailsResponse, error)
}

type historyService struct {
	attemptRepo repository.AttemptRepository
	mockRepo    repository.MockRepository
}

func NewHistoryService(attemptRepo repository.AttemptRepository, mockRepo repository.MockRepository) HistoryService {
	return &historyService{attemptRepo: attemptRepo, mockRepo: mockRepo}
}

func (s *historyService) GetUserAttempts(userID string) (*dto.UserAttemptsResponse, error) {
	attempts, err := s.attemptRepo.FindSubmittedByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to fetch user attempts")
		return nil, apperr.Internal(err, "failed to fetch attempts")
	}

	resp := dto.UserAttemptsResponse{Attempts: make([]dto.AttemptSummaryDTO, 0, len(attempts))}
	for i := range attempts {
		a := &attempts[i]
		result, err := s.rescore(a)
		if err != nil {
			log.Error().Err(err).Str("attemptID", a.ID).Msg("Failed to rescore attempt")
			return nil, apperr.Internal(err, "failed to rescore attempt")
		}
		resp.Attempts = append(resp.Attempts, dto.AttemptSummaryDTO{
			ID:                  a.ID,
			MockID:              a.MockID,
			MockTitle:           a.Mock.Title,
			StartedAt:           a.StartedAt,
			SubmittedAt:         a.SubmittedAt,
			Score:               a.Score,
			Percentage:          a.Percentage,
			Status:              a.Status,
			TotalMarks:          result.TotalMarks,
			ObtainedMarks:       result.Score,
			TotalQuestions:      result.TotalQuestions,
			AnsweredQuestions:   result.AnsweredQuestions,
			CorrectAnswers:      result.CorrectAnswers,
			IncorrectAnswers:    result.IncorrectAnswers,
			UnansweredQuestions: result.UnansweredQuestions,
			SectionWiseResults:  result.Sections,
		})
	}
	return &resp, nil
}

func (s *historyService) GetAttemptDetails(attemptID, userID string) (*dto.AttemptDetailsResponse, error) {
	attempt, err := s.attemptRepo.FindByIDAndUserWithAnswers(attemptID, userID)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to fetch attempt details")
		return nil, apperr.Internal(err, "failed to fetch attempt details")
	}
	if attempt == nil {
		log.Warn().Str("attemptID", attemptID).Str("userID", userID).Msg("Attempt not found for user")
		return nil, apperr.NotFound("attempt with id %s not found", attemptID)
	}

	result, err := s.rescore(attempt)
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to rescore attempt")
		return nil, apperr.Internal(err, "failed to rescore attempt")
	}

	selectedByQuestion := make(map[string]*string, len(attempt.Answers))
	correctByQuestion := make(map[string]bool, len(attempt.Answers))
	for i := range attempt.Answers {
		ans := &attempt.Answers[i]
		selectedByQuestion[ans.QuestionID] = ans.SelectedOptionID
		correctByQuestion[ans.QuestionID] = ans.IsCorrect
	}

	resp := dto.AttemptDetailsResponse{
		AttemptID:           attempt.ID,
		MockID:              attempt.MockID,
		Title:               attempt.Mock.Title,
		Description:         attempt.Mock.Description,
		Duration:            attempt.Mock.Duration,
		StartedAt:           attempt.StartedAt,
		SubmittedAt:         attempt.SubmittedAt,
		TimeTaken:           attempt.TimeTaken,
		Score:               attempt.Score,
		Percentage:          attempt.Percentage,
		Status:              attempt.Status,
		TotalMarks:          result.TotalMarks,
		ObtainedMarks:       result.Score,
		TotalQuestions:      result.TotalQuestions,
		AnsweredQuestions:   result.AnsweredQuestions,
		CorrectAnswers:      result.CorrectAnswers,
		IncorrectAnswers:    result.IncorrectAnswers,
		UnansweredQuestions: result.UnansweredQuestions,
		SectionWiseResults:  result.Sections,
	}

	for _, sec := range attempt.Mock.Sections {
		secDTO := dto.DetailSectionDTO{
			ID:        sec.ID,
			Name:      sec.Name,
			SortOrder: sec.SortOrder,
		}
		for _, q := range sec.Questions {
			qDTO := dto.DetailQuestionDTO{
				ID:                   q.ID,
				Text:                 q.Text,
				ImageURL:             q.ImageURL,
				Marks:                q.Marks,
				NegativeMark:         q.NegativeMark,
				SortOrder:            q.SortOrder,
				SectionID:            q.SectionID,
				UserSelectedOptionID: selectedByQuestion[q.ID],
				IsCorrect:            correctByQuestion[q.ID],
			}
			for _, o := range q.Options {
				if o.IsCorrect {
					id := o.ID
					qDTO.CorrectOptionID = &id
				}
				qDTO.Options = append(qDTO.Options, dto.DetailOptionDTO{
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

// rescore replays the persisted answers against the mock's question bank.
// The bank reader returns every question of the mock including ones outside
// any section; rebuilding from the preloaded section tree would drop the
// no-section bucket and disagree with what submission scored.
func (s *historyService) rescore(attempt *model.Attempt) (scoring.Result, error) {
	bank, err := s.mockRepo.QuestionsForScoring(attempt.MockID)
	if err != nil {
		return scoring.Result{}, err
	}

	questions := make([]scoring.Question, 0, len(bank))
	for _, q := range bank {
		questions = append(questions, scoring.Question{
			ID:              q.ID,
			SectionID:       q.SectionID,
			SectionName:     q.SectionName,
			Marks:           q.Marks,
			NegativeMark:    q.NegativeMark,
			CorrectOptionID: q.CorrectOptionID,
		})
	}

	answers := make([]scoring.Answer, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		answers = append(answers, scoring.Answer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
		})
	}
	return scoring.Score(questions, answers), nil
}
