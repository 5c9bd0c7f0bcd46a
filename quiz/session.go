// quiz/session.go - single-player quiz session state machine
package quiz

import (
	"errors"
	"sync"
	"time"
)

// PointsPerQuestion is the fixed score increment for a correct answer, so a
// full 10-question session tops out at 100.
const PointsPerQuestion = 10

// State is the session's position in its lifecycle.
type State int

const (
	// StateAwaitingAnswer: the current question is shown and unanswered.
	StateAwaitingAnswer State = iota
	// StateAnswered: the current question was answered; feedback is being
	// shown. The index is immutable until Advance.
	StateAnswered
	// StateComplete: every question was answered; the final score is fixed.
	StateComplete
)

var (
	// ErrAlreadyAnswered rejects a second answer for the same question.
	ErrAlreadyAnswered = errors.New("current question already answered")
	// ErrSessionComplete rejects input after the terminal state.
	ErrSessionComplete = errors.New("quiz session already complete")
	// ErrNotAnswered rejects advancing past an unanswered question.
	ErrNotAnswered = errors.New("current question not answered yet")
)

// AnswerResult is the feedback for one submitted answer. QuestionID names the
// question that was graded, so callers need no separate (racy) lookup.
type AnswerResult struct {
	QuestionID    uint   `json:"question_id"`
	Correct       bool   `json:"correct"`
	CorrectOption string `json:"correct_option"`
	Explanation   string `json:"explanation,omitempty"`
	Score         int    `json:"score"`
}

// Outcome summarizes a completed session.
type Outcome struct {
	Level          int
	Score          int
	MaxScore       int
	TotalQuestions int
	CorrectAnswers int
	QuestionIDs    []uint
}

// Perfect reports a 100%-correct session.
func (o Outcome) Perfect() bool {
	return o.MaxScore > 0 && o.Score == o.MaxScore
}

// Session drives one quiz run, one question at a time. Methods are safe for
// concurrent use: a double-submitted answer grades once and the duplicate
// gets ErrAlreadyAnswered.
type Session struct {
	Level     int
	StartedAt time.Time

	mu        sync.Mutex
	questions []Question
	index     int
	score     int
	correct   int
	answered  []uint
	state     State
}

// NewSession starts a session over the selected questions in their given
// order, awaiting the answer to question 0.
func NewSession(level int, questions []Question) *Session {
	return &Session{
		Level:     level,
		StartedAt: time.Now(),
		questions: questions,
		answered:  make([]uint, 0, len(questions)),
		state:     StateAwaitingAnswer,
	}
}

// State returns the machine's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index returns the current question index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the running score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// MaxScore returns the highest score this session can reach.
func (s *Session) MaxScore() int { return PointsPerQuestion * len(s.questions) }

// Current returns the question awaiting an answer or being reviewed. ok is
// false once the session is complete.
func (s *Session) Current() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateComplete || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// AnsweredQuestionIDs returns the ids answered so far, in order.
func (s *Session) AnsweredQuestionIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint, len(s.answered))
	copy(out, s.answered)
	return out
}

// SubmitAnswer records the selected option for the current question, scoring
// PointsPerQuestion when it matches the option flagged correct. A question
// accepts exactly one answer; simultaneous submissions grade exactly once.
func (s *Session) SubmitAnswer(selected string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateComplete:
		return AnswerResult{}, ErrSessionComplete
	case StateAnswered:
		return AnswerResult{}, ErrAlreadyAnswered
	}

	q := s.questions[s.index]
	correctText := q.CorrectOption()
	result := AnswerResult{
		QuestionID:    q.ID,
		Correct:       selected == correctText,
		CorrectOption: correctText,
		Explanation:   q.Explanation,
	}
	if result.Correct {
		s.score += PointsPerQuestion
		s.correct++
	}
	s.answered = append(s.answered, q.ID)
	s.state = StateAnswered
	result.Score = s.score
	return result, nil
}

// Advance moves from Answered(i) to AwaitingAnswer(i+1), or to Complete when
// the last question was answered. The caller drives this after the feedback
// pause. Returns true once the session is complete.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateComplete:
		return true, nil
	case StateAwaitingAnswer:
		return false, ErrNotAnswered
	}

	if s.index+1 < len(s.questions) {
		s.index++
		s.state = StateAwaitingAnswer
		return false, nil
	}
	s.state = StateComplete
	return true, nil
}

// Outcome returns the session summary. ok is false until the session is
// complete. QuestionIDs lists every question in the session, answered right
// or wrong; all of them count as consumed for future selection.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateComplete {
		return Outcome{}, false
	}
	ids := make([]uint, 0, len(s.questions))
	for _, q := range s.questions {
		ids = append(ids, q.ID)
	}
	return Outcome{
		Level:          s.Level,
		Score:          s.score,
		MaxScore:       s.MaxScore(),
		TotalQuestions: len(s.questions),
		CorrectAnswers: s.correct,
		QuestionIDs:    ids,
	}, true
}
