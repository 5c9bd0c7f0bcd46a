package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sanskriti/quiz"
)

func outcome(level, score, max int) quiz.Outcome {
	return quiz.Outcome{
		Level:          level,
		Score:          score,
		MaxScore:       max,
		TotalQuestions: max / quiz.PointsPerQuestion,
	}
}

func TestEvaluateAchievements_FirstQuiz(t *testing.T) {
	got := quiz.EvaluateAchievements(nil, outcome(1, 30, 100), quiz.LifetimeStats{SessionsCompleted: 0})
	assert.Equal(t, []string{quiz.AchievementFirstQuiz}, got)

	got = quiz.EvaluateAchievements(nil, outcome(1, 30, 100), quiz.LifetimeStats{SessionsCompleted: 3})
	assert.Empty(t, got, "first_quiz only fires on the very first completion")
}

func TestEvaluateAchievements_PerfectRunStacks(t *testing.T) {
	// 100% correct also clears the 90-point master bar; first session adds
	// first_quiz on top.
	got := quiz.EvaluateAchievements(nil, outcome(3, 100, 100), quiz.LifetimeStats{SessionsCompleted: 0})
	assert.ElementsMatch(t, []string{
		quiz.AchievementFirstQuiz,
		quiz.AchievementPerfectScore,
		"level_master_3",
	}, got)
}

func TestEvaluateAchievements_LevelMasterThreshold(t *testing.T) {
	stats := quiz.LifetimeStats{SessionsCompleted: 5}

	got := quiz.EvaluateAchievements(nil, outcome(2, 90, 100), stats)
	assert.Contains(t, got, "level_master_2")
	assert.NotContains(t, got, quiz.AchievementPerfectScore)

	got = quiz.EvaluateAchievements(nil, outcome(2, 80, 100), stats)
	assert.NotContains(t, got, "level_master_2")
}

func TestEvaluateAchievements_PerfectOnShortSession(t *testing.T) {
	// 5 questions, all correct: perfect, but 50 < 90 so no master badge.
	got := quiz.EvaluateAchievements(nil, outcome(1, 50, 50), quiz.LifetimeStats{SessionsCompleted: 1})
	assert.Contains(t, got, quiz.AchievementPerfectScore)
	assert.NotContains(t, got, "level_master_1")
}

func TestEvaluateAchievements_Idempotent(t *testing.T) {
	o := outcome(4, 100, 100)
	stats := quiz.LifetimeStats{SessionsCompleted: 0}

	once := quiz.EvaluateAchievements([]string{"level_master_1"}, o, stats)
	twice := quiz.EvaluateAchievements(once, o, stats)
	assert.Equal(t, once, twice)
}

func TestEvaluateAchievements_NeverRevokes(t *testing.T) {
	existing := []string{quiz.AchievementFirstQuiz, quiz.AchievementPerfectScore, "level_master_5"}

	got := quiz.EvaluateAchievements(existing, outcome(1, 0, 100), quiz.LifetimeStats{SessionsCompleted: 10})
	for _, id := range existing {
		assert.Contains(t, got, id)
	}
}

func TestEvaluateAchievements_DeduplicatesExisting(t *testing.T) {
	existing := []string{quiz.AchievementPerfectScore, quiz.AchievementPerfectScore}

	got := quiz.EvaluateAchievements(existing, outcome(1, 100, 100), quiz.LifetimeStats{SessionsCompleted: 1})
	count := 0
	for _, id := range got {
		if id == quiz.AchievementPerfectScore {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCatalog_CoversEveryGrantableID(t *testing.T) {
	ids := map[string]bool{}
	for _, entry := range quiz.Catalog() {
		ids[entry.ID] = true
	}

	assert.True(t, ids[quiz.AchievementFirstQuiz])
	assert.True(t, ids[quiz.AchievementPerfectScore])
	for lvl := quiz.MinLevel; lvl <= quiz.MaxLevel; lvl++ {
		assert.True(t, ids[quiz.LevelMasterAchievement(lvl)])
	}
}
