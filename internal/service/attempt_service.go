package service

import (
	"database/sql"
	"strings"
	"time"

	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/lshigami/Axolotls/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the attempt lifecycle: starting a timed run and the
// one-shot submission that scores it.
type AttemptService interface {
	StartAttempt(mockID, userID string) (*dto.StartAttemptResponse, error)
	SubmitAttempt(req dto.SubmitAttemptRequest, userID string) (*dto.SubmitAttemptResponse, error)
}

// txRunner is the slice of *gorm.DB the submission path needs. Satisfied
// by *gorm.DB itself.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type attemptService struct {
	mockRepo    repository.MockRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AnswerRepository
	db          txRunner
	now         func() time.Time
}

func NewAttemptService(
	mockRepo repository.MockRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		mockRepo:    mockRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		db:          db,
		now:         time.Now,
	}
}

func (s *attemptService) StartAttempt(mockID, userID string) (*dto.StartAttemptResponse, error) {
	log.Info().Str("mockID", mockID).Str("userID", userID).Msg("Starting attempt")

	mock, err := s.mockRepo.FindByIDWithContent(mockID)
	if err != nil {
		log.Error().Err(err).Str("mockID", mockID).Msg("Failed to fetch mock")
		return nil, apperr.Internal(err, "failed to fetch mock")
	}
	if mock == nil {
		log.Warn().Str("mockID", mockID).Msg("Mock not found")
		return nil, apperr.NotFound("mock not found")
	}
	if len(mock.Sections) == 0 {
		log.Warn().Str("mockID", mockID).Msg("Mock has no sections")
		return nil, apperr.BadRequest("mock has no sections")
	}

	attempt := model.Attempt{
		UserID:    userID,
		MockID:    mockID,
		StartedAt: s.now(),
		Status:    model.AttemptStatusInProgress,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("mockID", mockID).Msg("Failed to create attempt")
		return nil, apperr.Internal(err, "failed to create attempt")
	}

	log.Info().Str("attemptID", attempt.ID).Str("mockID", mockID).Str("userID", userID).Msg("Attempt created successfully")

	resp := dto.StartAttemptResponse{
		AttemptID:   attempt.ID,
		MockID:      mock.ID,
		Title:       mock.Title,
		Description: mock.Description,
		Duration:    mock.Duration,
		StartedAt:   attempt.StartedAt,
	}
	for _, sec := range mock.Sections {
		secDTO := dto.AttemptSectionDTO{
			ID:        sec.ID,
			Name:      sec.Name,
			SortOrder: sec.SortOrder,
		}
		for _, q := range sec.Questions {
			qDTO := dto.AttemptQuestionDTO{
				ID:           q.ID,
				Text:         q.Text,
				ImageURL:     q.ImageURL,
				Marks:        q.Marks,
				NegativeMark: q.NegativeMark,
				SortOrder:    q.SortOrder,
				SectionID:    q.SectionID,
			}
			// Correct-option information is stripped here.
			for _, o := range q.Options {
				qDTO.Options = append(qDTO.Options, dto.AttemptOptionDTO{
					ID:        o.ID,
					Label:     o.Label,
					Text:      o.Text,
					ImageURL:  o.ImageURL,
					SortOrder: o.SortOrder,
				})
			}
			secDTO.Questions = append(secDTO.Questions, qDTO)
		}
		resp.Sections = append(resp.Sections, secDTO)
	}
	return &resp, nil
}

// SubmitAttempt validates the submission, scores it and finalizes the
// attempt. Every validation failure happens before any write; the answer
// insert and the status transition commit in one transaction.
func (s *attemptService) SubmitAttempt(req dto.SubmitAttemptRequest, userID string) (*dto.SubmitAttemptResponse, error) {
	log.Info().Str("attemptID", req.AttemptID).Str("userID", userID).Int("answers", len(req.Answers)).Msg("Submitting attempt")

	attempt, err := s.attemptRepo.FindByID(req.AttemptID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch attempt")
	}
	if attempt == nil {
		log.Warn().Str("attemptID", req.AttemptID).Msg("Attempt not found")
		return nil, apperr.NotFound("attempt with id %s not found", req.AttemptID)
	}

	if attempt.UserID != userID {
		log.Warn().Str("attemptID", req.AttemptID).Str("ownerID", attempt.UserID).Str("userID", userID).Msg("Attempt does not belong to user")
		return nil, apperr.Forbidden("attempt does not belong to you")
	}

	if attempt.Status != model.AttemptStatusInProgress {
		log.Warn().Str("attemptID", req.AttemptID).Str("status", attempt.Status).Msg("Attempt already in a terminal state")
		return nil, apperr.Conflict("attempt has already been %s", strings.ToLower(attempt.Status))
	}

	// Reload with the mock summary; losing the row here means we raced a
	// concurrent mutation.
	attemptWithMock, err := s.attemptRepo.FindByIDAndUserWithMock(req.AttemptID, userID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch attempt details")
	}
	if attemptWithMock == nil {
		return nil, apperr.NotFound("failed to fetch attempt details")
	}

	questions, err := s.mockRepo.QuestionsForScoring(attemptWithMock.MockID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch questions")
	}
	if len(questions) == 0 {
		log.Warn().Str("mockID", attemptWithMock.MockID).Msg("Mock has no questions")
		return nil, apperr.BadRequest("mock has no questions")
	}

	questionSet := make(map[string]bool, len(questions))
	for _, q := range questions {
		questionSet[q.ID] = true
	}

	// Batch validation: every foreign id is reported, not just the first.
	var invalidIDs []string
	seen := make(map[string]bool, len(req.Answers))
	duplicate := false
	for _, a := range req.Answers {
		if !questionSet[a.QuestionID] {
			invalidIDs = append(invalidIDs, a.QuestionID)
		}
		if seen[a.QuestionID] {
			duplicate = true
		}
		seen[a.QuestionID] = true
	}
	if len(invalidIDs) > 0 {
		log.Warn().Strs("invalidQuestionIDs", invalidIDs).Str("mockID", attemptWithMock.MockID).Msg("Submission references questions outside the mock")
		return nil, apperr.BadRequest("invalid question ids: %s", strings.Join(invalidIDs, ", "))
	}
	if duplicate {
		return nil, apperr.BadRequest("duplicate question ids found in answers")
	}

	now := s.now()
	timeTaken := int(now.Sub(attemptWithMock.StartedAt).Seconds())
	if req.TimeTaken != nil {
		timeTaken = *req.TimeTaken
	}

	scoringQuestions := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		scoringQuestions = append(scoringQuestions, scoring.Question{
			ID:              q.ID,
			SectionID:       q.SectionID,
			SectionName:     q.SectionName,
			Marks:           q.Marks,
			NegativeMark:    q.NegativeMark,
			CorrectOptionID: q.CorrectOptionID,
		})
	}
	scoringAnswers := make([]scoring.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		scoringAnswers = append(scoringAnswers, scoring.Answer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
		})
	}

	result := scoring.Score(scoringQuestions, scoringAnswers)

	// One row per provided answer, null selections included. Questions
	// never mentioned get no row and stay unanswered.
	answerRows := make([]model.Answer, 0, len(result.Evaluations))
	for _, ev := range result.Evaluations {
		answerRows = append(answerRows, model.Answer{
			AttemptID:        req.AttemptID,
			QuestionID:       ev.QuestionID,
			SelectedOptionID: ev.SelectedOptionID,
			IsCorrect:        ev.IsCorrect,
			AnsweredAt:       now,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.BulkCreate(tx, answerRows); err != nil {
			return err
		}
		rows, err := s.attemptRepo.Finalize(tx, req.AttemptID, now, timeTaken, result.Score, result.Percentage)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent submission won the race between the status
			// check and this update. Roll everything back.
			return apperr.Conflict("attempt has already been submitted")
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			log.Warn().Str("attemptID", req.AttemptID).Msg("Lost submission race")
			return nil, err
		}
		log.Error().Err(err).Str("attemptID", req.AttemptID).Msg("Submission transaction failed")
		return nil, apperr.Internal(err, "failed to persist submission")
	}

	log.Info().
		Str("attemptID", req.AttemptID).
		Float64("score", result.Score).
		Float64("percentage", result.Percentage).
		Float64("totalMarks", result.TotalMarks).
		Msg("Attempt submitted successfully")

	return &dto.SubmitAttemptResponse{
		AttemptID:           req.AttemptID,
		MockID:              attemptWithMock.MockID,
		Title:               attemptWithMock.Mock.Title,
		Status:              model.AttemptStatusSubmitted,
		Score:               result.Score,
		Percentage:          result.Percentage,
		TotalMarks:          result.TotalMarks,
		ObtainedMarks:       result.Score,
		TimeTaken:           timeTaken,
		SubmittedAt:         now,
		TotalQuestions:      result.TotalQuestions,
		AnsweredQuestions:   result.AnsweredQuestions,
		CorrectAnswers:      result.CorrectAnswers,
		IncorrectAnswers:    result.IncorrectAnswers,
		UnansweredQuestions: result.UnansweredQuestions,
		SectionWiseResults:  result.Sections,
	}, nil
}
