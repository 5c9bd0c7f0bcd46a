// quiz/selector.go - question pool filtering and random sampling
package quiz

import (
	"errors"
	"math/rand"
)

// MaxSessionQuestions caps how many questions one session may hold.
const MaxSessionQuestions = 10

// OptionsPerQuestion is the required number of answer choices.
const OptionsPerQuestion = 4

// ErrLevelExhausted signals that the user has completed every eligible
// question in a level. It is a designed terminal state, not a failure; the
// caller shows a congratulatory message.
var ErrLevelExhausted = errors.New("all questions for this level are completed")

// Option is one answer choice.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is the engine's view of an authored question. Approval filtering
// happens at the storage query; the selector still re-checks level and shape.
type Question struct {
	ID          uint     `json:"id"`
	Level       int      `json:"level"`
	Category    string   `json:"category"`
	Text        string   `json:"question"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
}

// Valid reports whether the question has exactly four options with exactly
// one flagged correct. Anything else is a data-authoring defect and is kept
// out of live sessions.
func (q Question) Valid() bool {
	if len(q.Options) != OptionsPerQuestion {
		return false
	}
	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	return correct == 1
}

// CorrectOption returns the text of the option flagged correct.
func (q Question) CorrectOption() string {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.Text
		}
	}
	return ""
}

// SelectQuestions filters pool to well-formed questions for level that the
// user has not completed, removes duplicate ids, then returns an unbiased
// random sample of at most maxCount of them. Returns ErrLevelExhausted when
// nothing remains.
func SelectQuestions(level int, pool []Question, completedIDs []uint, maxCount int) ([]Question, error) {
	if maxCount <= 0 || maxCount > MaxSessionQuestions {
		maxCount = MaxSessionQuestions
	}

	done := make(map[uint]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		done[id] = struct{}{}
	}

	seen := make(map[uint]struct{}, len(pool))
	eligible := make([]Question, 0, len(pool))
	for _, q := range pool {
		if q.Level != level || !q.Valid() {
			continue
		}
		if _, ok := done[q.ID]; ok {
			continue
		}
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		eligible = append(eligible, q)
	}

	if len(eligible) == 0 {
		return nil, ErrLevelExhausted
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if len(eligible) > maxCount {
		eligible = eligible[:maxCount]
	}
	return eligible, nil
}
