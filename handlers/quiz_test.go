package handlers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanskriti/models"
	"sanskriti/quiz"
)

func TestToEngineQuestion(t *testing.T) {
	row := models.QuizQuestion{
		ID:          7,
		Level:       2,
		Category:    "mythology",
		Text:        "Who is the remover of obstacles?",
		Options:     `[{"text":"Ganesha","is_correct":true},{"text":"Hanuman","is_correct":false},{"text":"Krishna","is_correct":false},{"text":"Arjuna","is_correct":false}]`,
		Explanation: "Ganesha is invoked at the start of new ventures.",
	}

	q, err := toEngineQuestion(row)
	require.NoError(t, err)
	assert.Equal(t, uint(7), q.ID)
	assert.Equal(t, 2, q.Level)
	assert.True(t, q.Valid())
	assert.Equal(t, "Ganesha", q.CorrectOption())
}

func TestToEngineQuestionRejectsBadJSON(t *testing.T) {
	row := models.QuizQuestion{ID: 8, Options: `not json`}

	_, err := toEngineQuestion(row)
	assert.Error(t, err)
}

func TestQuestionViewHidesCorrectFlags(t *testing.T) {
	q := quiz.Question{
		ID:   3,
		Text: "Which festival is the festival of lights?",
		Options: []quiz.Option{
			{Text: "Holi"},
			{Text: "Diwali", IsCorrect: true},
			{Text: "Navratri"},
			{Text: "Onam"},
		},
	}
	session := quiz.NewSession(1, []quiz.Question{q})

	view := toQuestionView(q, session)
	assert.Equal(t, []string{"Holi", "Diwali", "Navratri", "Onam"}, view.Options)
	assert.Equal(t, 1, view.Total)
	assert.Zero(t, view.Index)
}

func TestPutSessionIfAbsentWinnerTakesSlot(t *testing.T) {
	// Two racing starts must not both claim the slot; the loser gets false
	// and the winner's session stays registered.
	const userID = uint(987654)
	defer func() {
		sessionsMu.Lock()
		delete(activeSessions, userID)
		sessionsMu.Unlock()
	}()

	const starters = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < starters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := quiz.NewSession(1, nil)
			if putSessionIfAbsent(userID, s) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)

	_, ok := getSession(userID)
	assert.True(t, ok)
}
