package quiz

// UnlockThreshold is the minimum session score (0-100 scale) that opens the
// next level.
const UnlockThreshold = 70

// NextLevelToUnlock decides whether finishing level with score opens the
// level above it. A score of exactly 70 unlocks; level 5 never unlocks
// anything further. The second return is false when no unlock applies.
func NextLevelToUnlock(level, score int) (int, bool) {
	if score >= UnlockThreshold && level >= MinLevel && level < MaxLevel {
		return level + 1, true
	}
	return 0, false
}
