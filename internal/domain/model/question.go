//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	"github.com/target/onboarding-portal/internal/domain/quiz"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const (
	minQuestionOptions = 2
	maxQuestionOptions = 10
)

// Question is a stored quiz question. CorrectAnswer is always one of Options.
type Question struct {
	ID            int64     `json:"id"            db:"id"`
	Prompt        string    `json:"question"      db:"prompt"`
	Options       []string  `json:"options"       db:"options"`
	CorrectAnswer string    `json:"correctAnswer" db:"correct_answer"`
	CreatedAt     time.Time `json:"createdAt"     db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt"     db:"updated_at"`
}

// QuestionView is what employees see; it never carries the answer.
type QuestionView struct {
	ID      int64    `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// View strips the correct answer.
func (q Question) View() QuestionView {
	return QuestionView{ID: q.ID, Prompt: q.Prompt, Options: append([]string(nil), q.Options...)}
}

// Grading returns the scoring engine's view of the question.
func (q Question) Grading() quiz.Question {
	return quiz.Question{ID: q.ID, CorrectAnswer: q.CorrectAnswer}
}

// QuestionRequest carries the full mutable field set of a question.
type QuestionRequest struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate normalizes and validates the request.
func (r *QuestionRequest) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	r.CorrectAnswer = strings.TrimSpace(r.CorrectAnswer)

	if r.Prompt == "" {
		return apperrors.ValidationField("question", "question is required")
	}

	opts := make([]string, 0, len(r.Options))
	seen := make(map[string]struct{}, len(r.Options))
	for _, o := range r.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return apperrors.ValidationField("options", "options cannot be empty")
		}
		if _, dup := seen[o]; dup {
			return apperrors.ValidationField("options", "options must be distinct")
		}
		seen[o] = struct{}{}
		opts = append(opts, o)
	}
	if len(opts) < minQuestionOptions || len(opts) > maxQuestionOptions {
		return apperrors.ValidationField("options", "a question needs between 2 and 10 options")
	}
	r.Options = opts

	if _, ok := seen[r.CorrectAnswer]; !ok {
		return apperrors.ValidationField("correctAnswer", "correct answer must be one of the options")
	}
	return nil
}
