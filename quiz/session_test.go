package quiz_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanskriti/quiz"
)

// answerAll plays a session answering the first correctCount questions right
// and the rest wrong, advancing after each.
func answerAll(t *testing.T, s *quiz.Session, correctCount int) {
	t.Helper()
	for i := 0; i < s.Total(); i++ {
		q, ok := s.Current()
		require.True(t, ok)

		answer := q.CorrectOption()
		if i >= correctCount {
			answer = wrongOption(q)
		}

		_, err := s.SubmitAnswer(answer)
		require.NoError(t, err)

		_, err = s.Advance()
		require.NoError(t, err)
	}
}

func wrongOption(q quiz.Question) string {
	for _, opt := range q.Options {
		if !opt.IsCorrect {
			return opt.Text
		}
	}
	return ""
}

func TestSession_InitialState(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 5))

	assert.Equal(t, quiz.StateAwaitingAnswer, s.State())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 50, s.MaxScore())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint(1), q.ID)
}

func TestSession_CorrectAnswerScoresTen(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))
	q, _ := s.Current()

	res, err := s.SubmitAnswer(q.CorrectOption())
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 10, res.Score)
	assert.Equal(t, q.ID, res.QuestionID)
	assert.Equal(t, quiz.StateAnswered, s.State())
}

func TestSession_WrongAnswerScoresNothing(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))
	q, _ := s.Current()

	res, err := s.SubmitAnswer(wrongOption(q))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, q.CorrectOption(), res.CorrectOption, "feedback carries the right answer")
}

func TestSession_RejectsSecondAnswer(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))
	q, _ := s.Current()

	_, err := s.SubmitAnswer(q.CorrectOption())
	require.NoError(t, err)

	_, err = s.SubmitAnswer(q.CorrectOption())
	assert.ErrorIs(t, err, quiz.ErrAlreadyAnswered)
	assert.Equal(t, 10, s.Score(), "score unchanged by the rejected answer")
}

func TestSession_AdvanceRequiresAnswer(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))

	_, err := s.Advance()
	assert.ErrorIs(t, err, quiz.ErrNotAnswered)
}

func TestSession_CompleteSevenOfTen(t *testing.T) {
	s := quiz.NewSession(2, makePool(2, 10))
	answerAll(t, s, 7)

	assert.Equal(t, quiz.StateComplete, s.State())

	outcome, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, 70, outcome.Score)
	assert.Equal(t, 100, outcome.MaxScore)
	assert.Equal(t, 7, outcome.CorrectAnswers)
	assert.False(t, outcome.Perfect())
	assert.Len(t, outcome.QuestionIDs, 10)

	next, unlocks := quiz.NextLevelToUnlock(outcome.Level, outcome.Score)
	assert.True(t, unlocks)
	assert.Equal(t, 3, next)
}

func TestSession_ScoreAlwaysMultipleOfTen(t *testing.T) {
	for correct := 0; correct <= 6; correct++ {
		s := quiz.NewSession(1, makePool(1, 6))
		answerAll(t, s, correct)

		outcome, ok := s.Outcome()
		require.True(t, ok)
		assert.Zero(t, outcome.Score%quiz.PointsPerQuestion)
		assert.LessOrEqual(t, outcome.Score, quiz.PointsPerQuestion*s.Total())
	}
}

func TestSession_PerfectRun(t *testing.T) {
	s := quiz.NewSession(4, makePool(4, 10))
	answerAll(t, s, 10)

	outcome, ok := s.Outcome()
	require.True(t, ok)
	assert.True(t, outcome.Perfect())
	assert.Equal(t, 100, outcome.Score)
}

func TestSession_NoInputAfterComplete(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 2))
	answerAll(t, s, 2)

	_, err := s.SubmitAnswer("anything")
	assert.ErrorIs(t, err, quiz.ErrSessionComplete)

	done, err := s.Advance()
	assert.NoError(t, err)
	assert.True(t, done)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_OutcomeOnlyWhenComplete(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))

	_, ok := s.Outcome()
	assert.False(t, ok)
}

func TestSession_AnsweredIDsTrackOrder(t *testing.T) {
	s := quiz.NewSession(1, makePool(1, 3))
	answerAll(t, s, 1)

	assert.Equal(t, []uint{1, 2, 3}, s.AnsweredQuestionIDs())
}

func TestSession_SimultaneousAnswersGradeOnce(t *testing.T) {
	// A double-clicked submit races two answers at the same index. Exactly
	// one may grade; the rest get ErrAlreadyAnswered and never touch the
	// score.
	s := quiz.NewSession(1, makePool(1, 3))
	q, _ := s.Current()

	const submitters = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SubmitAnswer(q.CorrectOption())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case err == quiz.ErrAlreadyAnswered:
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, submitters-1, rejected)
	assert.Equal(t, 10, s.Score())
	assert.Equal(t, []uint{1}, s.AnsweredQuestionIDs(), "the question is recorded once")
}
