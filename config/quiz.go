package config

// QuizConfig controls quiz grading.
type QuizConfig struct {
	// PassPercent is the inclusive pass threshold, 1..100.
	PassPercent int `env:"QUIZ_PASS_PERCENT" envDefault:"70"`
}

// Sanitize clamps the pass threshold.
func (q *QuizConfig) Sanitize() {
	if q.PassPercent < 1 {
		q.PassPercent = 70
	}
	if q.PassPercent > 100 {
		q.PassPercent = 100
	}
}
