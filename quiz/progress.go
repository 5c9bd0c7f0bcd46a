// quiz/progress.go - per-user progress record and merge semantics
package quiz

import "time"

const (
	// MinLevel and MaxLevel bound the difficulty tiers. There is no level 6.
	MinLevel = 1
	MaxLevel = 5

	// LevelStatusActive and LevelStatusLocked are the derived level states.
	LevelStatusActive = "active"
	LevelStatusLocked = "locked"
)

// LevelProgress tracks one user's state for a single level. Score keeps the
// best session score for the level, not a running sum. CompletedQuestions is
// append-only.
type LevelProgress struct {
	Unlocked           bool   `json:"unlocked"`
	Score              int    `json:"score"`
	CompletedQuestions []uint `json:"completed_questions"`
	Status             string `json:"status"`
}

// Progress is the normalized in-memory form of a user's progress record.
type Progress struct {
	UserID       uint                   `json:"user_id"`
	TotalScore   int                    `json:"total_score"`
	Levels       map[int]*LevelProgress `json:"levels"`
	Achievements []string               `json:"achievements"`
	LastPlayed   *time.Time             `json:"last_played"`
}

// NewProgress returns the default record for a user: level 1 unlocked,
// everything else locked and empty.
func NewProgress(userID uint) *Progress {
	p := &Progress{
		UserID:       userID,
		Levels:       make(map[int]*LevelProgress, MaxLevel),
		Achievements: []string{},
	}
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		p.Levels[lvl] = defaultLevel(lvl)
	}
	return p
}

func defaultLevel(level int) *LevelProgress {
	lp := &LevelProgress{
		CompletedQuestions: []uint{},
		Status:             LevelStatusLocked,
	}
	if level == MinLevel {
		lp.Unlocked = true
		lp.Status = LevelStatusActive
	}
	return lp
}

// Normalize restores the record's invariants: every level 1..5 is present,
// level 1 is unlocked no matter what was stored, and Status mirrors Unlocked.
// Returns true when anything was repaired.
func (p *Progress) Normalize() bool {
	changed := false
	if p.Levels == nil {
		p.Levels = make(map[int]*LevelProgress, MaxLevel)
		changed = true
	}
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		lp, ok := p.Levels[lvl]
		if !ok || lp == nil {
			p.Levels[lvl] = defaultLevel(lvl)
			changed = true
			continue
		}
		if lvl == MinLevel && !lp.Unlocked {
			lp.Unlocked = true
			changed = true
		}
		if lp.CompletedQuestions == nil {
			lp.CompletedQuestions = []uint{}
			changed = true
		}
		status := LevelStatusLocked
		if lp.Unlocked {
			status = LevelStatusActive
		}
		if lp.Status != status {
			lp.Status = status
			changed = true
		}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
		changed = true
	}
	return changed
}

// HasAchievement reports whether the given achievement id is already held.
func (p *Progress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Update is a field-level merge applied to a progress record. Zero values
// mean "leave alone"; the merge never lowers a level score, re-locks a level
// or removes an achievement.
type Update struct {
	Level              int
	LevelScore         int
	CompletedQuestions []uint
	UnlockLevel        int
	AddTotalScore      int
	Achievements       []string
	LastPlayed         *time.Time
}

// Apply merges u into p. Level scores take the maximum of stored and new,
// completed-question ids are unioned, unlocks and achievements are monotonic
// and TotalScore accumulates.
func (p *Progress) Apply(u Update) {
	p.Normalize()

	if u.Level >= MinLevel && u.Level <= MaxLevel {
		lp := p.Levels[u.Level]
		if u.LevelScore > lp.Score {
			lp.Score = u.LevelScore
		}
		if len(u.CompletedQuestions) > 0 {
			seen := make(map[uint]struct{}, len(lp.CompletedQuestions))
			for _, id := range lp.CompletedQuestions {
				seen[id] = struct{}{}
			}
			for _, id := range u.CompletedQuestions {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				lp.CompletedQuestions = append(lp.CompletedQuestions, id)
			}
		}
	}

	if u.UnlockLevel >= MinLevel && u.UnlockLevel <= MaxLevel {
		lp := p.Levels[u.UnlockLevel]
		lp.Unlocked = true
		lp.Status = LevelStatusActive
	}

	if u.AddTotalScore > 0 {
		p.TotalScore += u.AddTotalScore
	}

	for _, id := range u.Achievements {
		if !p.HasAchievement(id) {
			p.Achievements = append(p.Achievements, id)
		}
	}

	if u.LastPlayed != nil {
		p.LastPlayed = u.LastPlayed
	}
}
