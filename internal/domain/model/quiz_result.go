//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	"github.com/target/onboarding-portal/internal/domain/quiz"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// QuizResult is one graded quiz attempt. Score is the rounded percentage.
type QuizResult struct {
	ID          int64     `json:"id"          db:"id"`
	UserID      int64     `json:"userId"      db:"user_id"`
	Score       int       `json:"score"       db:"score"`
	Passed      bool      `json:"passed"      db:"passed"`
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// NewQuizResult captures a grading outcome for persistence.
type NewQuizResult struct {
	UserID int64
	Score  int
	Passed bool
}

// ScoreEntry is a quiz result joined with the identity that produced it.
type ScoreEntry struct {
	ResultID    int64     `json:"id"          db:"id"`
	UserID      int64     `json:"userId"      db:"user_id"`
	UserName    string    `json:"userName"    db:"user_name"`
	UserEmail   string    `json:"userEmail"   db:"user_email"`
	Score       int       `json:"score"       db:"score"`
	Passed      bool      `json:"passed"      db:"passed"`
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// QuizSubmission is an employee's answer sheet. The server grades it; any
// client-computed score is ignored.
type QuizSubmission struct {
	Answers []quiz.Answer `json:"answers"`
}

// Validate checks the submission is structurally usable.
func (s *QuizSubmission) Validate() error {
	if len(s.Answers) == 0 {
		return apperrors.ValidationField("answers", "answers are required")
	}
	for _, a := range s.Answers {
		if a.QuestionID <= 0 {
			return apperrors.ValidationField("answers", "every answer needs a questionId")
		}
	}
	return nil
}

// ScoresListOptions controls paging for the admin scores listing.
type ScoresListOptions struct {
	Limit  int
	Offset int
}
