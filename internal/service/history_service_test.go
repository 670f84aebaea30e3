package service

import (
	"testing"
	"time"

	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submittedAttempt carries the same selections as the scoring happy-path
// test: q1 correct, q2 wrong, q3 listed but unanswered.
func submittedAttempt() *model.Attempt {
	mock, _ := twoSectionMock()
	submittedAt := testNow
	timeTaken := 1500
	score := 1.5
	percentage := 18.75
	return &model.Attempt{
		ID:          "attempt-1",
		UserID:      "user-1",
		MockID:      mock.ID,
		Mock:        *mock,
		StartedAt:   testNow.Add(-25 * time.Minute),
		SubmittedAt: &submittedAt,
		TimeTaken:   &timeTaken,
		Score:       &score,
		Percentage:  &percentage,
		Status:      model.AttemptStatusSubmitted,
		Answers: []model.Answer{
			{ID: "ans-1", AttemptID: "attempt-1", QuestionID: "q1", SelectedOptionID: strPtr("q1-b"), IsCorrect: true, AnsweredAt: testNow},
			{ID: "ans-2", AttemptID: "attempt-1", QuestionID: "q2", SelectedOptionID: strPtr("q2-b"), AnsweredAt: testNow},
			{ID: "ans-3", AttemptID: "attempt-1", QuestionID: "q3", AnsweredAt: testNow},
		},
	}
}

func newHistoryServiceForTest(attemptRepo *fakeAttemptRepo) HistoryService {
	_, bank := twoSectionMock()
	return NewHistoryService(attemptRepo, &fakeMockRepo{questions: bank})
}

func TestGetUserAttempts_RederivesAggregates(t *testing.T) {
	svc := newHistoryServiceForTest(&fakeAttemptRepo{attempt: submittedAttempt()})

	resp, err := svc.GetUserAttempts("user-1")

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	a := resp.Attempts[0]

	assert.Equal(t, "General Science Mock", a.MockTitle)
	assert.Equal(t, model.AttemptStatusSubmitted, a.Status)
	require.NotNil(t, a.Score)
	assert.InDelta(t, 1.5, *a.Score, 1e-9)

	// Aggregates replayed from the persisted answers must match what the
	// submission computed.
	assert.InDelta(t, 8.0, a.TotalMarks, 1e-9)
	assert.InDelta(t, 1.5, a.ObtainedMarks, 1e-9)
	assert.Equal(t, 3, a.TotalQuestions)
	assert.Equal(t, 2, a.AnsweredQuestions)
	assert.Equal(t, 1, a.CorrectAnswers)
	assert.Equal(t, 1, a.IncorrectAnswers)
	assert.Equal(t, 1, a.UnansweredQuestions)
	require.Len(t, a.SectionWiseResults, 2)
}

func TestGetUserAttempts_EmptyHistory(t *testing.T) {
	svc := newHistoryServiceForTest(&fakeAttemptRepo{})

	resp, err := svc.GetUserAttempts("user-1")

	require.NoError(t, err)
	assert.Empty(t, resp.Attempts)
}

func TestGetAttemptDetails_NotFoundForForeignUser(t *testing.T) {
	svc := newHistoryServiceForTest(&fakeAttemptRepo{attempt: submittedAttempt()})

	_, err := svc.GetAttemptDetails("attempt-1", "someone-else")

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetAttemptDetails_RevealsAnswerKeyAndSelections(t *testing.T) {
	svc := newHistoryServiceForTest(&fakeAttemptRepo{attempt: submittedAttempt()})

	resp, err := svc.GetAttemptDetails("attempt-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "attempt-1", resp.AttemptID)
	require.NotNil(t, resp.TimeTaken)
	assert.Equal(t, 1500, *resp.TimeTaken)
	require.Len(t, resp.Sections, 2)

	questions := map[string]struct {
		selected *string
		correct  *string
		isRight  bool
	}{}
	for _, sec := range resp.Sections {
		for _, q := range sec.Questions {
			questions[q.ID] = struct {
				selected *string
				correct  *string
				isRight  bool
			}{q.UserSelectedOptionID, q.CorrectOptionID, q.IsCorrect}
		}
	}
	require.Len(t, questions, 3)

	require.NotNil(t, questions["q1"].selected)
	assert.Equal(t, "q1-b", *questions["q1"].selected)
	require.NotNil(t, questions["q1"].correct)
	assert.Equal(t, "q1-b", *questions["q1"].correct)
	assert.True(t, questions["q1"].isRight)

	require.NotNil(t, questions["q2"].selected)
	assert.Equal(t, "q2-b", *questions["q2"].selected)
	assert.False(t, questions["q2"].isRight)

	assert.Nil(t, questions["q3"].selected)
	require.NotNil(t, questions["q3"].correct)
	assert.Equal(t, "q3-a", *questions["q3"].correct)

	// Every option carries its correctness flag in the detail view.
	for _, sec := range resp.Sections {
		for _, q := range sec.Questions {
			correctCount := 0
			for _, o := range q.Options {
				if o.IsCorrect {
					correctCount++
				}
			}
			assert.Equal(t, 1, correctCount)
		}
	}
}

/* ---------------- Unsectioned questions ---------------- */

// mockWithUnsectionedQuestion: one sectioned question (2 marks) and one
// question assigned to no section (3 marks). The preloaded section tree
// only ever contains the sectioned question; the question bank holds both.
func mockWithUnsectionedQuestion() (*model.Mock, []repository.QuestionForScoring) {
	physics := "sec-phy"
	m := &model.Mock{
		ID:       "mock-2",
		Title:    "Mixed Mock",
		Duration: 30,
		IsActive: true,
		Sections: []model.Section{
			{
				ID: physics, MockID: "mock-2", Name: "Physics", SortOrder: 1,
				Questions: []model.Question{
					{
						ID: "q1", MockID: "mock-2", SectionID: &physics, Marks: 2, NegativeMark: 0.5, SortOrder: 1,
						Options: []model.Option{
							{ID: "q1-a", QuestionID: "q1", Label: "A", SortOrder: 1},
							{ID: "q1-b", QuestionID: "q1", Label: "B", IsCorrect: true, SortOrder: 2},
						},
					},
				},
			},
		},
	}
	bank := []repository.QuestionForScoring{
		{ID: "q1", SectionID: &physics, SectionName: "Physics", Marks: 2, NegativeMark: 0.5, CorrectOptionID: strPtr("q1-b")},
		{ID: "q9", SectionID: nil, Marks: 3, NegativeMark: 1, CorrectOptionID: strPtr("q9-a")},
	}
	return m, bank
}

func TestHistory_RederivesNoSectionBucket(t *testing.T) {
	mock, bank := mockWithUnsectionedQuestion()
	attempt := inProgressAttempt(mock)
	attemptRepo := &fakeAttemptRepo{attempt: attempt, finalizeRows: 1}
	answerRepo := &fakeAnswerRepo{}
	submitSvc := newAttemptService(&fakeMockRepo{mock: mock, questions: bank}, attemptRepo, answerRepo)

	// q1 correct (+2), q9 correct (+3): the unsectioned question scores too.
	submitted, err := submitSvc.SubmitAttempt(dto.SubmitAttemptRequest{
		AttemptID: attempt.ID,
		Answers: []dto.AnswerSubmissionDTO{
			{QuestionID: "q1", SelectedOptionID: strPtr("q1-b")},
			{QuestionID: "q9", SelectedOptionID: strPtr("q9-a")},
		},
	}, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, submitted.TotalMarks, 1e-9)
	assert.InDelta(t, 5.0, submitted.Score, 1e-9)
	require.Len(t, submitted.SectionWiseResults, 2)

	// Replay the persisted rows through the history reader. The attempt's
	// preloaded section tree does not contain q9.
	replayed := *attempt
	replayed.Status = model.AttemptStatusSubmitted
	replayed.SubmittedAt = &testNow
	replayed.Score = &submitted.Score
	replayed.Percentage = &submitted.Percentage
	replayed.Answers = answerRepo.inserted
	historySvc := NewHistoryService(&fakeAttemptRepo{attempt: &replayed}, &fakeMockRepo{questions: bank})

	resp, err := historySvc.GetUserAttempts("user-1")

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	a := resp.Attempts[0]

	// History aggregates must equal what submission computed.
	assert.InDelta(t, submitted.TotalMarks, a.TotalMarks, 1e-9)
	assert.InDelta(t, submitted.Score, a.ObtainedMarks, 1e-9)
	assert.Equal(t, submitted.TotalQuestions, a.TotalQuestions)
	assert.Equal(t, submitted.AnsweredQuestions, a.AnsweredQuestions)
	assert.Equal(t, submitted.CorrectAnswers, a.CorrectAnswers)
	assert.Equal(t, submitted.IncorrectAnswers, a.IncorrectAnswers)
	assert.Equal(t, submitted.UnansweredQuestions, a.UnansweredQuestions)
	require.Len(t, a.SectionWiseResults, 2)
	assert.Equal(t, submitted.SectionWiseResults, a.SectionWiseResults)

	// The detail view replays the same rows without error.
	details, err := historySvc.GetAttemptDetails(attempt.ID, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, submitted.TotalMarks, details.TotalMarks, 1e-9)
	require.Len(t, details.SectionWiseResults, 2)
}

func TestHistory_UnsectionedMarksCountWhenUnanswered(t *testing.T) {
	mock, bank := mockWithUnsectionedQuestion()
	submittedAt := testNow
	attempt := &model.Attempt{
		ID:          "attempt-2",
		UserID:      "user-1",
		MockID:      mock.ID,
		Mock:        *mock,
		StartedAt:   testNow.Add(-10 * time.Minute),
		SubmittedAt: &submittedAt,
		Status:      model.AttemptStatusSubmitted,
		Answers: []model.Answer{
			{ID: "ans-1", AttemptID: "attempt-2", QuestionID: "q1", SelectedOptionID: strPtr("q1-b"), IsCorrect: true, AnsweredAt: testNow},
		},
	}
	svc := NewHistoryService(&fakeAttemptRepo{attempt: attempt}, &fakeMockRepo{questions: bank})

	resp, err := svc.GetUserAttempts("user-1")

	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	a := resp.Attempts[0]

	// The never-answered unsectioned question still contributes its marks
	// to the totals and its bucket to the breakdown.
	assert.InDelta(t, 5.0, a.TotalMarks, 1e-9)
	assert.Equal(t, 2, a.TotalQuestions)
	assert.Equal(t, 1, a.UnansweredQuestions)
	require.Len(t, a.SectionWiseResults, 2)
}
