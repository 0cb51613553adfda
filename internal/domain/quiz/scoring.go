// Package quiz implements onboarding quiz grading.
//
// Grading is pure: it runs on question definitions already loaded from the
// store and never touches storage itself.
package quiz

import (
	"errors"
	"fmt"
	"math"
)

// DefaultPassPercent is the minimum percentage (inclusive) required to pass.
const DefaultPassPercent = 70

var (
	// ErrAnswerCountMismatch is returned by positional grading when the answer
	// and question sequences differ in length.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	// ErrUnknownQuestion means an answer references a question that is not in the set.
	ErrUnknownQuestion = errors.New("answer references unknown question")
	// ErrDuplicateAnswer means a question was answered more than once.
	ErrDuplicateAnswer = errors.New("question answered more than once")
	// ErrMissingAnswer means a question in the set has no answer.
	ErrMissingAnswer = errors.New("question left unanswered")
)

// Question is the grading view of a stored question.
type Question struct {
	ID            int64
	CorrectAnswer string
}

// Answer pairs a chosen option with the question it answers.
type Answer struct {
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
}

// Result is the outcome of grading a submission.
type Result struct {
	Correct    int
	Total      int
	Percentage float64
	Passed     bool
}

// Rounded returns the percentage rounded to the nearest integer, halves away from zero.
func (r Result) Rounded() int {
	return int(math.Round(r.Percentage))
}

// Engine grades submissions against a pass threshold.
type Engine struct {
	passPercent int
}

// NewEngine returns an Engine using passPercent, clamped to 1..100.
func NewEngine(passPercent int) Engine {
	if passPercent < 1 {
		passPercent = 1
	}
	if passPercent > 100 {
		passPercent = 100
	}
	return Engine{passPercent: passPercent}
}

// PassPercent returns the engine's inclusive pass threshold.
func (e Engine) PassPercent() int {
	if e.passPercent == 0 {
		return DefaultPassPercent
	}
	return e.passPercent
}

// Score grades answers paired to questions by id. Every question must be
// answered exactly once and every answer must reference a question in the set.
func (e Engine) Score(questions []Question, answers []Answer) (Result, error) {
	byID := make(map[int64]string, len(questions))
	for _, q := range questions {
		byID[q.ID] = q.CorrectAnswer
	}

	seen := make(map[int64]struct{}, len(answers))
	correct := 0
	for _, a := range answers {
		want, ok := byID[a.QuestionID]
		if !ok {
			return Result{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, a.QuestionID)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return Result{}, fmt.Errorf("%w: %d", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
		if a.Answer == want {
			correct++
		}
	}
	if len(seen) != len(byID) {
		return Result{}, ErrMissingAnswer
	}
	return e.result(correct, len(questions)), nil
}

// ScorePositional grades answers[i] against questions[i].
// The question order must be identical to the order the quiz was presented in.
func (e Engine) ScorePositional(questions []Question, answers []string) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, fmt.Errorf("%w: %d answers for %d questions", ErrAnswerCountMismatch, len(answers), len(questions))
	}
	correct := 0
	for i, q := range questions {
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return e.result(correct, len(questions)), nil
}

func (e Engine) result(correct, total int) Result {
	if total == 0 {
		return Result{}
	}
	return Result{
		Correct:    correct,
		Total:      total,
		Percentage: float64(correct) / float64(total) * 100,
		// Integer comparison keeps the boundary exact (7/10 is a pass at 70).
		Passed: correct*100 >= e.PassPercent()*total,
	}
}

// Score grades with the default threshold.
func Score(questions []Question, answers []Answer) (Result, error) {
	return NewEngine(DefaultPassPercent).Score(questions, answers)
}

// ScorePositional grades positionally with the default threshold.
func ScorePositional(questions []Question, answers []string) (Result, error) {
	return NewEngine(DefaultPassPercent).ScorePositional(questions, answers)
}
