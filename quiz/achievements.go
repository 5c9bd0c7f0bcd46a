// quiz/achievements.go - achievement rules and catalog
package quiz

import "fmt"

// Achievement ids. Level-master badges are per level, e.g. level_master_3.
const (
	AchievementFirstQuiz    = "first_quiz"
	AchievementPerfectScore = "perfect_score"

	// LevelMasterThreshold is the session score that earns the per-level
	// master badge.
	LevelMasterThreshold = 90
)

// LevelMasterAchievement returns the per-level master badge id.
func LevelMasterAchievement(level int) string {
	return fmt.Sprintf("level_master_%d", level)
}

// LifetimeStats feeds rules that look beyond a single session.
type LifetimeStats struct {
	// SessionsCompleted counts sessions finished before the one being
	// evaluated.
	SessionsCompleted int
}

// EvaluateAchievements returns the achievement set after applying every rule
// to the session outcome. The result is always a superset of existing, with
// no duplicates; re-running with the same inputs returns the same set.
func EvaluateAchievements(existing []string, outcome Outcome, stats LifetimeStats) []string {
	result := make([]string, 0, len(existing)+3)
	held := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		if _, ok := held[id]; ok {
			continue
		}
		held[id] = struct{}{}
		result = append(result, id)
	}

	grant := func(id string) {
		if _, ok := held[id]; ok {
			return
		}
		held[id] = struct{}{}
		result = append(result, id)
	}

	if stats.SessionsCompleted == 0 {
		grant(AchievementFirstQuiz)
	}
	if outcome.Perfect() {
		grant(AchievementPerfectScore)
	}
	if outcome.Score >= LevelMasterThreshold {
		grant(LevelMasterAchievement(outcome.Level))
	}

	return result
}

// CatalogEntry describes one achievement for display.
type CatalogEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// Catalog returns every achievement a user can earn, in display order.
func Catalog() []CatalogEntry {
	entries := []CatalogEntry{
		{
			ID:          AchievementFirstQuiz,
			Title:       "First Steps",
			Description: "Complete your first quiz",
			Icon:        "school",
			Color:       "#4CAF50",
		},
		{
			ID:          AchievementPerfectScore,
			Title:       "Perfect Score",
			Description: "Get 100% on any quiz",
			Icon:        "star",
			Color:       "#FFC107",
		},
	}
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		entries = append(entries, CatalogEntry{
			ID:          LevelMasterAchievement(lvl),
			Title:       fmt.Sprintf("Level %d Master", lvl),
			Description: fmt.Sprintf("Score %d or more on a level %d quiz", LevelMasterThreshold, lvl),
			Icon:        "trophy",
			Color:       "#2196F3",
		})
	}
	return entries
}
