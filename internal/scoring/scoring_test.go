package scoring

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mcq(id, sectionID, correctOptionID string, marks, negative float64) Question {
	q := Question{ID: id, Marks: marks, NegativeMark: negative}
	if sectionID != "" {
		q.SectionID = strPtr(sectionID)
		q.SectionName = "Section " + sectionID
	}
	if correctOptionID != "" {
		q.CorrectOptionID = strPtr(correctOptionID)
	}
	return q
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		selected *string
		correct  bool
		marks    float64
	}{
		{name: "correct selection", question: mcq("q1", "s1", "o1", 4, 1), selected: strPtr("o1"), correct: true, marks: 4},
		{name: "wrong selection", question: mcq("q1", "s1", "o1", 4, 1), selected: strPtr("o2"), correct: false, marks: -1},
		{name: "abstention contributes zero", question: mcq("q1", "s1", "o1", 4, 5), selected: nil, correct: false, marks: 0},
		{name: "wrong with zero penalty", question: mcq("q1", "s1", "o1", 4, 0), selected: strPtr("o2"), correct: false, marks: 0},
		{name: "no correct option configured still penalised", question: mcq("q1", "s1", "", 4, 2), selected: strPtr("o1"), correct: false, marks: -2},
		{name: "no correct option and abstention", question: mcq("q1", "s1", "", 4, 2), selected: nil, correct: false, marks: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotCorrect, gotMarks := Evaluate(tc.question, tc.selected)
			assert.Equal(t, tc.correct, gotCorrect)
			assert.Equal(t, tc.marks, gotMarks)
		})
	}
}

func TestScore_SingleSection(t *testing.T) {
	questions := []Question{
		mcq("q1", "s1", "o11", 4, 1),
		mcq("q2", "s1", "o21", 4, 1),
	}

	t.Run("one correct one wrong", func(t *testing.T) {
		res := Score(questions, []Answer{
			{QuestionID: "q1", SelectedOptionID: strPtr("o11")},
			{QuestionID: "q2", SelectedOptionID: strPtr("o22")},
		})

		assert.Equal(t, 3.0, res.Score)
		assert.Equal(t, 8.0, res.TotalMarks)
		assert.Equal(t, 37.5, res.Percentage)
		assert.Equal(t, 2, res.AnsweredQuestions)
		assert.Equal(t, 1, res.CorrectAnswers)
		assert.Equal(t, 1, res.IncorrectAnswers)
		assert.Equal(t, 0, res.UnansweredQuestions)

		require.Len(t, res.Sections, 1)
		sec := res.Sections[0]
		assert.Equal(t, "s1", sec.SectionID)
		assert.Equal(t, 3.0, sec.ObtainedMarks)
		assert.Equal(t, 37.5, sec.Percentage)
	})

	t.Run("all abstained", func(t *testing.T) {
		res := Score(questions, nil)

		assert.Equal(t, 0.0, res.Score)
		assert.Equal(t, 0.0, res.Percentage)
		assert.Equal(t, 0, res.AnsweredQuestions)
		assert.Equal(t, 2, res.UnansweredQuestions)
	})

	t.Run("listed but unanswered is not penalised", func(t *testing.T) {
		res := Score(questions, []Answer{
			{QuestionID: "q1", SelectedOptionID: nil},
			{QuestionID: "q2", SelectedOptionID: nil},
		})

		assert.Equal(t, 0.0, res.ObtainedMarks)
		assert.Equal(t, 0, res.AnsweredQuestions)
		assert.Equal(t, 2, res.UnansweredQuestions)
		require.Len(t, res.Evaluations, 2)
		for _, ev := range res.Evaluations {
			assert.False(t, ev.IsCorrect)
			assert.Equal(t, 0.0, ev.Marks)
		}
	})

	t.Run("score may go negative", func(t *testing.T) {
		res := Score(questions, []Answer{
			{QuestionID: "q1", SelectedOptionID: strPtr("wrong")},
			{QuestionID: "q2", SelectedOptionID: strPtr("wrong")},
		})

		assert.Equal(t, -2.0, res.Score)
		assert.Equal(t, -25.0, res.Percentage)
	})
}

func TestScore_ZeroMarkSection(t *testing.T) {
	questions := []Question{
		mcq("q1", "a", "o1", 10, 0),
		mcq("q2", "b", "o2", 0, 0),
	}
	res := Score(questions, []Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("o1")},
		{QuestionID: "q2", SelectedOptionID: strPtr("o2")},
	})

	require.Len(t, res.Sections, 2)
	var zeroSection SectionResult
	for _, sec := range res.Sections {
		if sec.SectionID == "b" {
			zeroSection = sec
		}
	}
	assert.Equal(t, 0.0, zeroSection.TotalMarks)
	assert.Equal(t, 0.0, zeroSection.Percentage)
	assert.Equal(t, 1, zeroSection.CorrectAnswers)
	assert.False(t, math.IsNaN(res.Percentage))
	assert.Equal(t, 100.0, res.Percentage)
}

func TestScore_NoSectionBucket(t *testing.T) {
	questions := []Question{
		mcq("q1", "s1", "o1", 2, 0),
		mcq("q2", "", "o2", 3, 0), // unsectioned
	}
	res := Score(questions, []Answer{
		{QuestionID: "q2", SelectedOptionID: strPtr("o2")},
	})

	require.Len(t, res.Sections, 2)
	var sentinel SectionResult
	for _, sec := range res.Sections {
		if sec.SectionID == "" {
			sentinel = sec
		}
	}
	assert.Equal(t, 1, sentinel.TotalQuestions)
	assert.Equal(t, 3.0, sentinel.ObtainedMarks)
	assert.Equal(t, 100.0, sentinel.Percentage)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 5.0, res.TotalMarks)
}

func TestScore_IgnoresAnswersOutsideQuestionSet(t *testing.T) {
	questions := []Question{
		mcq("q1", "s1", "o1", 2, 1),
	}
	res := Score(questions, []Answer{
		{QuestionID: "q1", SelectedOptionID: strPtr("o1")},
		{QuestionID: "ghost", SelectedOptionID: strPtr("x")},
	})

	assert.Equal(t, 2.0, res.Score)
	assert.Equal(t, 1, res.AnsweredQuestions)
	require.Len(t, res.Sections, 1)
	require.Len(t, res.Evaluations, 1)
	assert.Equal(t, "q1", res.Evaluations[0].QuestionID)
}

func TestScore_RoundingHalfAwayFromZero(t *testing.T) {
	// 1/3 of 1 mark: 33.333... must round to 33.33, and .335 style halves
	// round away from zero.
	questions := []Question{
		mcq("q1", "s1", "o1", 1, 0),
		mcq("q2", "s1", "o2", 1, 0),
		mcq("q3", "s1", "o3", 1, 0),
	}
	res := Score(questions, []Answer{{QuestionID: "q1", SelectedOptionID: strPtr("o1")}})
	assert.Equal(t, 33.33, res.Percentage)

	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
}

func randomFixture(r *rand.Rand) ([]Question, []Answer) {
	numSections := r.Intn(4) // 0..3 real sections plus the sentinel
	questions := make([]Question, 0, 24)
	answers := make([]Answer, 0, 24)
	for i := 0; i < 4+r.Intn(20); i++ {
		id := fmt.Sprintf("q%d", i)
		sectionID := ""
		if numSections > 0 && r.Intn(4) > 0 {
			sectionID = fmt.Sprintf("s%d", r.Intn(numSections))
		}
		correct := ""
		if r.Intn(10) > 0 {
			correct = id + "-correct"
		}
		q := mcq(id, sectionID, correct, float64(r.Intn(6)), float64(r.Intn(3)))
		questions = append(questions, q)

		switch r.Intn(4) {
		case 0: // never mentioned
		case 1: // listed, abstained
			answers = append(answers, Answer{QuestionID: id})
		case 2: // correct (when configured)
			answers = append(answers, Answer{QuestionID: id, SelectedOptionID: strPtr(id + "-correct")})
		default: // wrong
			answers = append(answers, Answer{QuestionID: id, SelectedOptionID: strPtr(id + "-wrong")})
		}
	}
	return questions, answers
}

func TestScore_DeterminismAndSumInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		questions, answers := randomFixture(r)

		first := Score(questions, answers)
		second := Score(questions, answers)
		assert.Equal(t, first, second, "scoring must be deterministic")

		var sumObtained, sumTotal float64
		var sumQuestions, sumAnswered int
		for _, sec := range first.Sections {
			sumObtained += sec.ObtainedMarks
			sumTotal += sec.TotalMarks
			sumQuestions += sec.TotalQuestions
			sumAnswered += sec.AnsweredQuestions
			assert.Equal(t, sec.TotalQuestions-sec.AnsweredQuestions, sec.UnansweredQuestions)
			assert.False(t, math.IsNaN(sec.Percentage))
			assert.False(t, math.IsInf(sec.Percentage, 0))
		}
		assert.InDelta(t, first.ObtainedMarks, sumObtained, 1e-9)
		assert.InDelta(t, first.TotalMarks, sumTotal, 1e-9)
		assert.Equal(t, first.TotalQuestions, sumQuestions)
		assert.Equal(t, first.AnsweredQuestions, sumAnswered)
		assert.Equal(t, len(questions), first.TotalQuestions)
	}
}
