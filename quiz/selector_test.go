package quiz_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanskriti/quiz"
)

func makeQuestion(id uint, level int) quiz.Question {
	return quiz.Question{
		ID:       id,
		Level:    level,
		Category: "mythology",
		Text:     fmt.Sprintf("question %d", id),
		Options: []quiz.Option{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
			{Text: "c"},
			{Text: "d"},
		},
	}
}

func makePool(level, count int) []quiz.Question {
	pool := make([]quiz.Question, 0, count)
	for i := 1; i <= count; i++ {
		pool = append(pool, makeQuestion(uint(i), level))
	}
	return pool
}

func TestSelectQuestions_SkipsCompleted(t *testing.T) {
	pool := makePool(2, 12)
	completed := []uint{3, 7}

	selected, err := quiz.SelectQuestions(2, pool, completed, 10)
	require.NoError(t, err)
	assert.Len(t, selected, 10, "12 eligible minus 2 completed still fills a full session")

	seen := map[uint]bool{}
	for _, q := range selected {
		assert.NotContains(t, completed, q.ID, "completed questions must never be re-selected")
		assert.False(t, seen[q.ID], "no duplicate ids in one session")
		seen[q.ID] = true
	}
}

func TestSelectQuestions_CapsAtAvailable(t *testing.T) {
	pool := makePool(1, 4)

	selected, err := quiz.SelectQuestions(1, pool, nil, 10)
	require.NoError(t, err)
	assert.Len(t, selected, 4)
}

func TestSelectQuestions_ExhaustedLevel(t *testing.T) {
	pool := makePool(3, 5)
	completed := []uint{1, 2, 3, 4, 5}

	_, err := quiz.SelectQuestions(3, pool, completed, 10)
	assert.ErrorIs(t, err, quiz.ErrLevelExhausted)
}

func TestSelectQuestions_EmptyPool(t *testing.T) {
	_, err := quiz.SelectQuestions(1, nil, nil, 10)
	assert.ErrorIs(t, err, quiz.ErrLevelExhausted)
}

func TestSelectQuestions_FiltersWrongLevel(t *testing.T) {
	pool := append(makePool(1, 3), makePool(2, 3)...)

	selected, err := quiz.SelectQuestions(1, pool, nil, 10)
	require.NoError(t, err)
	assert.Len(t, selected, 3)
	for _, q := range selected {
		assert.Equal(t, 1, q.Level)
	}
}

func TestSelectQuestions_RejectsMalformed(t *testing.T) {
	noCorrect := makeQuestion(1, 1)
	noCorrect.Options[0].IsCorrect = false

	twoCorrect := makeQuestion(2, 1)
	twoCorrect.Options[1].IsCorrect = true

	threeOptions := makeQuestion(3, 1)
	threeOptions.Options = threeOptions.Options[:3]

	good := makeQuestion(4, 1)

	selected, err := quiz.SelectQuestions(1, []quiz.Question{noCorrect, twoCorrect, threeOptions, good}, nil, 10)
	require.NoError(t, err)
	require.Len(t, selected, 1, "malformed questions are excluded, not fatal")
	assert.Equal(t, uint(4), selected[0].ID)
}

func TestSelectQuestions_DeduplicatesPool(t *testing.T) {
	q := makeQuestion(9, 1)
	selected, err := quiz.SelectQuestions(1, []quiz.Question{q, q, q}, nil, 10)
	require.NoError(t, err)
	assert.Len(t, selected, 1)
}

func TestSelectQuestions_UnionNeverExceedsPool(t *testing.T) {
	pool := makePool(2, 15)

	first, err := quiz.SelectQuestions(2, pool, nil, 10)
	require.NoError(t, err)

	completed := make([]uint, 0, len(first))
	for _, q := range first {
		completed = append(completed, q.ID)
	}

	second, err := quiz.SelectQuestions(2, pool, completed, 10)
	require.NoError(t, err)
	assert.Len(t, second, 5, "only the 5 unseen questions remain")

	union := map[uint]bool{}
	for _, q := range first {
		union[q.ID] = true
	}
	for _, q := range second {
		assert.False(t, union[q.ID], "second selection must be disjoint from the first")
		union[q.ID] = true
	}
	assert.LessOrEqual(t, len(union), len(pool))
}
