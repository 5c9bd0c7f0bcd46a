package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanskriti/quiz"
	"sanskriti/services"
)

func TestMemoryStore_LoadCreatesDefaults(t *testing.T) {
	store := services.NewMemoryProgressStore()

	p, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), p.UserID)
	assert.Zero(t, p.TotalScore)
	require.Len(t, p.Levels, 5)
	assert.True(t, p.Levels[1].Unlocked)
	assert.False(t, p.Levels[2].Unlocked)
}

func TestMemoryStore_LoadHealsCorruptedRecord(t *testing.T) {
	store := services.NewMemoryProgressStore()

	// Legacy record: level 1 re-locked, levels 3-5 missing entirely.
	corrupted := &quiz.Progress{
		UserID: 2,
		Levels: map[int]*quiz.LevelProgress{
			1: {Unlocked: false, Score: 30, CompletedQuestions: []uint{5}},
			2: {Unlocked: true, Score: 70},
		},
	}
	store.Seed(corrupted)

	p, err := store.Load(2)
	require.NoError(t, err)
	assert.True(t, p.Levels[1].Unlocked, "level 1 is unlocked after every load")
	assert.Equal(t, 30, p.Levels[1].Score, "healing keeps stored data")
	require.Len(t, p.Levels, 5)
	assert.False(t, p.Levels[4].Unlocked)
}

func TestMemoryStore_SaveMergesFields(t *testing.T) {
	store := services.NewMemoryProgressStore()
	now := time.Now()

	require.NoError(t, store.Save(3, quiz.Update{
		Level:              1,
		LevelScore:         80,
		CompletedQuestions: []uint{1, 2},
		UnlockLevel:        2,
		AddTotalScore:      80,
		Achievements:       []string{quiz.AchievementFirstQuiz},
		LastPlayed:         &now,
	}))
	require.NoError(t, store.Save(3, quiz.Update{
		Level:              1,
		LevelScore:         50,
		CompletedQuestions: []uint{2, 3},
		AddTotalScore:      50,
	}))

	p, err := store.Load(3)
	require.NoError(t, err)
	assert.Equal(t, 130, p.TotalScore)
	assert.Equal(t, 80, p.Levels[1].Score, "a weaker later session never lowers the best score")
	assert.Equal(t, []uint{1, 2, 3}, p.Levels[1].CompletedQuestions)
	assert.True(t, p.Levels[2].Unlocked)
	assert.Equal(t, []string{quiz.AchievementFirstQuiz}, p.Achievements)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := services.NewMemoryProgressStore()

	first, err := store.Load(4)
	require.NoError(t, err)
	first.TotalScore = 999
	first.Levels[1].Score = 999

	second, err := store.Load(4)
	require.NoError(t, err)
	assert.Zero(t, second.TotalScore, "mutating a loaded record must not leak into the store")
	assert.Zero(t, second.Levels[1].Score)
}

func TestMemoryStore_PartialThenFinalMerge(t *testing.T) {
	// Partial-credit writes carry only the advisory level score and answered
	// id; the completion merge is the sole writer of total_score.
	store := services.NewMemoryProgressStore()

	require.NoError(t, store.Save(5, quiz.Update{Level: 1, LevelScore: 10, CompletedQuestions: []uint{11}}))
	require.NoError(t, store.Save(5, quiz.Update{Level: 1, LevelScore: 20, CompletedQuestions: []uint{12}}))

	mid, err := store.Load(5)
	require.NoError(t, err)
	assert.Zero(t, mid.TotalScore, "partial credit never touches total score")

	require.NoError(t, store.Save(5, quiz.Update{
		Level:              1,
		LevelScore:         70,
		CompletedQuestions: []uint{11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
		UnlockLevel:        2,
		AddTotalScore:      70,
	}))

	p, err := store.Load(5)
	require.NoError(t, err)
	assert.Equal(t, 70, p.TotalScore)
	assert.Len(t, p.Levels[1].CompletedQuestions, 10)
}
