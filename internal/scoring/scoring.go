// Package scoring turns a set of questions and submitted selections into
// per-section and overall aggregates. It is pure: no I/O, no clock, no
// randomness, so the same inputs always produce the same result whether
// computed at submission time or re-derived later for history views.
package scoring

import "math"

// NoSectionKey buckets questions that are not assigned to any section.
// They still count toward every aggregate.
const NoSectionKey = "no-section"

// Question carries the facts scoring needs about one question.
// CorrectOptionID is nil when no option is flagged correct; such a question
// can be answered but never scored correct.
type Question struct {
	ID              string
	SectionID       *string
	SectionName     string
	Marks           float64
	NegativeMark    float64 // stored as a positive magnitude
	CorrectOptionID *string
}

// Answer is one submitted selection. A nil SelectedOptionID means the
// question was listed but left unanswered.
type Answer struct {
	QuestionID       string
	SelectedOptionID *string
}

// Evaluation is the per-question outcome for one submitted answer, in the
// order the answers were provided.
type Evaluation struct {
	QuestionID       string
	SectionID        *string
	SelectedOptionID *string
	IsCorrect        bool
	Marks            float64
}

type SectionResult struct {
	SectionID           string `json:"section_id"` // empty for the no-section bucket
	SectionName         string `json:"section_name"`
	TotalQuestions      int    `json:"total_questions"`
	AnsweredQuestions   int    `json:"answered_questions"`
	CorrectAnswers      int    `json:"correct_answers"`
	IncorrectAnswers    int    `json:"incorrect_answers"`
	UnansweredQuestions int    `json:"unanswered_questions"`
	// ObtainedMarks may be negative under negative marking; there is no
	// floor at zero.
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	Percentage    float64 `json:"percentage"` // rounded to 2 decimals, 0 when TotalMarks is 0
}

// Result aggregates every section bucket. The overall numbers are sums of
// the bucket-level values, never recomputed independently.
type Result struct {
	TotalQuestions      int
	AnsweredQuestions   int
	CorrectAnswers      int
	IncorrectAnswers    int
	UnansweredQuestions int
	TotalMarks          float64
	ObtainedMarks       float64 // unrounded running sum
	Score               float64 // ObtainedMarks rounded to 2 decimals
	Percentage          float64 // rounded to 2 decimals, 0 when TotalMarks is 0
	Sections            []SectionResult
	Evaluations         []Evaluation
}

// Round2 rounds half away from zero to 2 decimal places. Applied only at
// presentation boundaries; internal sums stay unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Evaluate scores a single selection against a question. An abstention
// (nil selection) contributes exactly zero, never a penalty.
func Evaluate(q Question, selectedOptionID *string) (isCorrect bool, marks float64) {
	if selectedOptionID == nil {
		return false, 0
	}
	if q.CorrectOptionID != nil && *selectedOptionID == *q.CorrectOptionID {
		return true, q.Marks
	}
	return false, -q.NegativeMark
}

// Score computes the full breakdown for one attempt. The caller guarantees
// at most one answer per question; questions never mentioned in answers
// count as unanswered. Answers referencing a question outside the slice are
// ignored rather than scored against a zero-value question.
func Score(questions []Question, answers []Answer) Result {
	type bucket struct {
		result SectionResult
	}

	buckets := make(map[string]*bucket, 4)
	order := make([]string, 0, 4)

	keyOf := func(sectionID *string) string {
		if sectionID == nil {
			return NoSectionKey
		}
		return *sectionID
	}

	// Seed a bucket for every question so sections with zero answers and
	// unsectioned questions are still reported.
	questionByID := make(map[string]Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
		key := keyOf(q.SectionID)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			if key != NoSectionKey {
				b.result.SectionID = key
			}
			b.result.SectionName = q.SectionName
			buckets[key] = b
			order = append(order, key)
		}
		b.result.TotalQuestions++
		b.result.TotalMarks += q.Marks
	}

	evaluations := make([]Evaluation, 0, len(answers))
	for _, a := range answers {
		q, ok := questionByID[a.QuestionID]
		if !ok {
			continue
		}
		isCorrect, marks := Evaluate(q, a.SelectedOptionID)
		evaluations = append(evaluations, Evaluation{
			QuestionID:       a.QuestionID,
			SectionID:        q.SectionID,
			SelectedOptionID: a.SelectedOptionID,
			IsCorrect:        isCorrect,
			Marks:            marks,
		})

		if a.SelectedOptionID == nil {
			continue
		}
		b := buckets[keyOf(q.SectionID)]
		b.result.AnsweredQuestions++
		if isCorrect {
			b.result.CorrectAnswers++
		} else {
			b.result.IncorrectAnswers++
		}
		b.result.ObtainedMarks += marks
	}

	res := Result{Evaluations: evaluations}
	res.Sections = make([]SectionResult, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.result.UnansweredQuestions = b.result.TotalQuestions - b.result.AnsweredQuestions
		if b.result.TotalMarks > 0 {
			b.result.Percentage = Round2(b.result.ObtainedMarks / b.result.TotalMarks * 100)
		}
		res.Sections = append(res.Sections, b.result)

		res.TotalQuestions += b.result.TotalQuestions
		res.AnsweredQuestions += b.result.AnsweredQuestions
		res.CorrectAnswers += b.result.CorrectAnswers
		res.IncorrectAnswers += b.result.IncorrectAnswers
		res.UnansweredQuestions += b.result.UnansweredQuestions
		res.TotalMarks += b.result.TotalMarks
		res.ObtainedMarks += b.result.ObtainedMarks
	}

	res.Score = Round2(res.ObtainedMarks)
	if res.TotalMarks > 0 {
		res.Percentage = Round2(res.ObtainedMarks / res.TotalMarks * 100)
	}
	return res
}
