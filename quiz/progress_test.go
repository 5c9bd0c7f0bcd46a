package quiz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanskriti/quiz"
)

func TestNewProgress_Defaults(t *testing.T) {
	p := quiz.NewProgress(42)

	assert.Equal(t, uint(42), p.UserID)
	assert.Zero(t, p.TotalScore)
	assert.Empty(t, p.Achievements)
	require.Len(t, p.Levels, 5)

	assert.True(t, p.Levels[1].Unlocked)
	assert.Equal(t, quiz.LevelStatusActive, p.Levels[1].Status)
	for lvl := 2; lvl <= 5; lvl++ {
		assert.False(t, p.Levels[lvl].Unlocked, "level %d starts locked", lvl)
		assert.Equal(t, quiz.LevelStatusLocked, p.Levels[lvl].Status)
		assert.Empty(t, p.Levels[lvl].CompletedQuestions)
	}
}

func TestNormalize_HealsLockedLevelOne(t *testing.T) {
	p := quiz.NewProgress(1)
	p.Levels[1].Unlocked = false
	p.Levels[1].Status = quiz.LevelStatusLocked

	changed := p.Normalize()
	assert.True(t, changed)
	assert.True(t, p.Levels[1].Unlocked, "level 1 is always unlocked after load")
	assert.Equal(t, quiz.LevelStatusActive, p.Levels[1].Status)
}

func TestNormalize_BackfillsMissingLevels(t *testing.T) {
	p := &quiz.Progress{
		UserID: 7,
		Levels: map[int]*quiz.LevelProgress{
			2: {Unlocked: true, Score: 80, CompletedQuestions: []uint{1, 2}},
		},
	}

	changed := p.Normalize()
	assert.True(t, changed)
	require.Len(t, p.Levels, 5)
	assert.True(t, p.Levels[1].Unlocked)
	assert.True(t, p.Levels[2].Unlocked, "stored data survives normalization")
	assert.Equal(t, 80, p.Levels[2].Score)
	assert.NotNil(t, p.Achievements)
}

func TestNormalize_DerivesStatusFromUnlocked(t *testing.T) {
	p := quiz.NewProgress(1)
	p.Levels[3].Unlocked = true
	p.Levels[3].Status = quiz.LevelStatusLocked

	p.Normalize()
	assert.Equal(t, quiz.LevelStatusActive, p.Levels[3].Status)
}

func TestNormalize_NoChangeIsIdempotent(t *testing.T) {
	p := quiz.NewProgress(1)
	p.Normalize()
	assert.False(t, p.Normalize(), "a normalized record needs no repair")
}

func TestApply_LevelScoreKeepsMaximum(t *testing.T) {
	p := quiz.NewProgress(1)

	p.Apply(quiz.Update{Level: 1, LevelScore: 60, AddTotalScore: 60})
	p.Apply(quiz.Update{Level: 1, LevelScore: 40, AddTotalScore: 40})

	assert.Equal(t, 60, p.Levels[1].Score, "level score stores the best session, not the sum")
	assert.Equal(t, 100, p.TotalScore, "total score accumulates across sessions")
}

func TestApply_CompletedQuestionsUnion(t *testing.T) {
	p := quiz.NewProgress(1)

	p.Apply(quiz.Update{Level: 2, CompletedQuestions: []uint{1, 2, 3}})
	p.Apply(quiz.Update{Level: 2, CompletedQuestions: []uint{3, 4}})

	assert.Equal(t, []uint{1, 2, 3, 4}, p.Levels[2].CompletedQuestions)
}

func TestApply_UnlockIsMonotonic(t *testing.T) {
	p := quiz.NewProgress(1)

	p.Apply(quiz.Update{UnlockLevel: 3})
	assert.True(t, p.Levels[3].Unlocked)

	// A later low-score session never re-locks.
	p.Apply(quiz.Update{Level: 3, LevelScore: 10, AddTotalScore: 10})
	assert.True(t, p.Levels[3].Unlocked)
	assert.Equal(t, quiz.LevelStatusActive, p.Levels[3].Status)
}

func TestApply_AchievementsUnion(t *testing.T) {
	p := quiz.NewProgress(1)

	p.Apply(quiz.Update{Achievements: []string{"first_quiz", "perfect_score"}})
	p.Apply(quiz.Update{Achievements: []string{"perfect_score", "level_master_1"}})

	assert.Equal(t, []string{"first_quiz", "perfect_score", "level_master_1"}, p.Achievements)
}

func TestApply_CompletionMergeScenario(t *testing.T) {
	// Session of 10 questions on level 2, 7 correct: final score 70 unlocks
	// level 3 after the merge.
	p := quiz.NewProgress(9)
	now := time.Now()

	next, ok := quiz.NextLevelToUnlock(2, 70)
	require.True(t, ok)

	p.Apply(quiz.Update{
		Level:              2,
		LevelScore:         70,
		CompletedQuestions: []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		UnlockLevel:        next,
		AddTotalScore:      70,
		LastPlayed:         &now,
	})

	assert.True(t, p.Levels[3].Unlocked)
	assert.Equal(t, 70, p.Levels[2].Score)
	assert.Equal(t, 70, p.TotalScore)
	require.NotNil(t, p.LastPlayed)
	assert.Equal(t, now, *p.LastPlayed)
}

func TestHasAchievement(t *testing.T) {
	p := quiz.NewProgress(1)
	p.Achievements = []string{"first_quiz"}

	assert.True(t, p.HasAchievement("first_quiz"))
	assert.False(t, p.HasAchievement("perfect_score"))
}
