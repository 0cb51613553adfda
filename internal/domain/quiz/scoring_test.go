package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionsWith(correct ...string) []Question {
	qs := make([]Question, len(correct))
	for i, c := range correct {
		qs[i] = Question{ID: int64(i + 1), CorrectAnswer: c}
	}
	return qs
}

func TestScorePositional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		answers   []string
		correct   []string
		wantPct   int
		wantPass  bool
		wantRight int
	}{
		{name: "all correct", answers: []string{"A", "B"}, correct: []string{"A", "B"}, wantPct: 100, wantPass: true, wantRight: 2},
		{name: "half correct", answers: []string{"A", "X"}, correct: []string{"A", "B"}, wantPct: 50, wantPass: false, wantRight: 1},
		{name: "empty quiz", answers: []string{}, correct: []string{}, wantPct: 0, wantPass: false},
		{name: "none correct", answers: []string{"X", "Y", "Z"}, correct: []string{"A", "B", "C"}, wantPct: 0, wantPass: false},
		{
			name:      "five of seven passes",
			answers:   []string{"A", "A", "A", "A", "A", "X", "X"},
			correct:   []string{"A", "A", "A", "A", "A", "A", "A"},
			wantPct:   71,
			wantPass:  true,
			wantRight: 5,
		},
		{
			name:      "seven of ten is the inclusive boundary",
			answers:   []string{"A", "A", "A", "A", "A", "A", "A", "X", "X", "X"},
			correct:   []string{"A", "A", "A", "A", "A", "A", "A", "A", "A", "A"},
			wantPct:   70,
			wantPass:  true,
			wantRight: 7,
		},
		{
			name:      "two of three rounds up but fails",
			answers:   []string{"A", "A", "X"},
			correct:   []string{"A", "A", "A"},
			wantPct:   67,
			wantPass:  false,
			wantRight: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := ScorePositional(questionsWith(tt.correct...), tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, res.Rounded())
			assert.Equal(t, tt.wantPass, res.Passed)
			assert.Equal(t, tt.wantRight, res.Correct)
		})
	}
}

func TestScorePositional_LengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := ScorePositional(questionsWith("A", "B"), []string{"A"})
	require.ErrorIs(t, err, ErrAnswerCountMismatch)
}

func TestScore_PairsByID(t *testing.T) {
	t.Parallel()

	qs := []Question{{ID: 10, CorrectAnswer: "A"}, {ID: 20, CorrectAnswer: "B"}}

	// Order of answers does not matter.
	res, err := Score(qs, []Answer{{QuestionID: 20, Answer: "B"}, {QuestionID: 10, Answer: "A"}})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Rounded())
	assert.True(t, res.Passed)

	res, err = Score(qs, []Answer{{QuestionID: 10, Answer: "A"}, {QuestionID: 20, Answer: "X"}})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.Percentage, 0.0001)
	assert.False(t, res.Passed)
}

func TestScore_RejectsMisalignedSubmissions(t *testing.T) {
	t.Parallel()

	qs := []Question{{ID: 1, CorrectAnswer: "A"}, {ID: 2, CorrectAnswer: "B"}}

	_, err := Score(qs, []Answer{{QuestionID: 1, Answer: "A"}, {QuestionID: 3, Answer: "B"}})
	require.ErrorIs(t, err, ErrUnknownQuestion)

	_, err = Score(qs, []Answer{{QuestionID: 1, Answer: "A"}, {QuestionID: 1, Answer: "A"}})
	require.ErrorIs(t, err, ErrDuplicateAnswer)

	_, err = Score(qs, []Answer{{QuestionID: 1, Answer: "A"}})
	require.ErrorIs(t, err, ErrMissingAnswer)
}

func TestScore_Empty(t *testing.T) {
	t.Parallel()

	res, err := Score(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rounded())
	assert.False(t, res.Passed)
}

func TestEngine_CustomThreshold(t *testing.T) {
	t.Parallel()

	strict := NewEngine(80)
	res, err := strict.ScorePositional(questionsWith("A", "A", "A", "A", "A"), []string{"A", "A", "A", "A", "X"})
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = strict.ScorePositional(questionsWith("A", "A", "A", "A", "A"), []string{"A", "A", "A", "X", "X"})
	require.NoError(t, err)
	assert.False(t, res.Passed)

	assert.Equal(t, 1, NewEngine(-5).PassPercent())
	assert.Equal(t, 100, NewEngine(500).PassPercent())
	assert.Equal(t, DefaultPassPercent, Engine{}.PassPercent())
}
