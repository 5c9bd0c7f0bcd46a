// handlers/quiz.go - kids quiz session endpoints
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/middleware"
	"sanskriti/models"
	"sanskriti/quiz"
	"sanskriti/services"
)

// One live session per user. Sessions are in-memory only; an abandoned or
// crashed session simply disappears, partial credit already written stays.
var (
	activeSessions = make(map[uint]*quiz.Session)
	sessionsMu     sync.RWMutex
)

type StartQuizRequest struct {
	Level int `json:"level"`
	Count int `json:"count,omitempty"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type questionView struct {
	ID       uint     `json:"id"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Category string   `json:"category"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// StartQuiz begins a new session for the requested level.
func StartQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Level < quiz.MinLevel || req.Level > quiz.MaxLevel {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Level must be between 1 and 5"})
	}

	sessionsMu.RLock()
	_, exists := activeSessions[userID]
	sessionsMu.RUnlock()
	if exists {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "A quiz is already in progress. Finish or abandon it first.",
		})
	}

	store := services.GetProgressStore()
	progress, loadErr := store.Load(userID)
	if loadErr != nil {
		log.Printf("Progress load failed for user %d, continuing with defaults: %v", userID, loadErr)
	}

	levelProgress := progress.Levels[req.Level]
	if !levelProgress.Unlocked {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Level is locked. Score 70 or more on the previous level to unlock it.",
		})
	}

	pool, err := loadQuestionPool(req.Level)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load questions"})
	}

	questions, err := quiz.SelectQuestions(req.Level, pool, levelProgress.CompletedQuestions, req.Count)
	if errors.Is(err, quiz.ErrLevelExhausted) {
		// Running out of questions is a win, not an error.
		return c.JSON(fiber.Map{
			"success":   true,
			"exhausted": true,
			"message":   "Amazing! You have answered every question in this level. Try the next one!",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to select questions"})
	}

	session := quiz.NewSession(req.Level, questions)

	// The early existence check above is only a cheap pre-filter; this is
	// the authoritative guard against two racing starts.
	if !putSessionIfAbsent(userID, session) {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "A quiz is already in progress. Finish or abandon it first.",
		})
	}

	current, _ := session.Current()
	return c.JSON(fiber.Map{
		"success":   true,
		"level":     req.Level,
		"total":     session.Total(),
		"max_score": session.MaxScore(),
		"question":  toQuestionView(current, session),
	})
}

// GetQuestion returns the current question without its answer flags.
func GetQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	session, ok := getSession(userID)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active quiz session"})
	}

	current, ok := session.Current()
	if !ok {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Quiz already complete"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"question": toQuestionView(current, session),
		"answered": session.State() == quiz.StateAnswered,
		"score":    session.Score(),
	})
}

// SubmitAnswer grades the current question and writes partial credit in the
// background. Correct-answer feedback goes back immediately; the client shows
// it and then calls next.
func SubmitAnswer(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	session, ok := getSession(userID)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active quiz session"})
	}

	result, err := session.SubmitAnswer(req.Answer)
	if errors.Is(err, quiz.ErrAlreadyAnswered) {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Question already answered"})
	}
	if errors.Is(err, quiz.ErrSessionComplete) {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Quiz already complete"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to submit answer"})
	}

	if result.Correct {
		// Fire-and-forget partial credit: the running level score and the
		// answered id, never the lifetime total. The completion merge is the
		// sole writer of total_score.
		level := session.Level
		score := result.Score
		questionID := result.QuestionID
		go func() {
			err := services.GetProgressStore().Save(userID, quiz.Update{
				Level:              level,
				LevelScore:         score,
				CompletedQuestions: []uint{questionID},
			})
			if err != nil {
				log.Printf("Partial progress save failed for user %d: %v", userID, err)
			}
		}()
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"correct":        result.Correct,
		"correct_option": result.CorrectOption,
		"explanation":    result.Explanation,
		"score":          result.Score,
	})
}

// NextQuestion advances past the feedback pause. On the last question it
// finalizes the session: unlocks, achievements, the authoritative progress
// merge and the attempt record.
func NextQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	session, ok := getSession(userID)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active quiz session"})
	}

	done, err := session.Advance()
	if errors.Is(err, quiz.ErrNotAnswered) {
		return c.Status(409).JSON(fiber.Map{"success": false, "error": "Answer the current question first"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to advance quiz"})
	}

	if !done {
		current, _ := session.Current()
		return c.JSON(fiber.Map{
			"success":  true,
			"complete": false,
			"question": toQuestionView(current, session),
			"score":    session.Score(),
		})
	}

	outcome, _ := session.Outcome()
	summary := finalizeSession(userID, outcome)

	sessionsMu.Lock()
	delete(activeSessions, userID)
	sessionsMu.Unlock()

	return c.JSON(summary)
}

// AbandonQuiz drops the active session. Partial credit already written is
// kept; nothing else is recorded.
func AbandonQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	sessionsMu.Lock()
	_, ok := activeSessions[userID]
	delete(activeSessions, userID)
	sessionsMu.Unlock()

	if !ok {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active quiz session"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Quiz abandoned"})
}

// GetQuizState lets a reconnecting client resume its in-memory session.
func GetQuizState(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	session, ok := getSession(userID)
	if !ok {
		return c.JSON(fiber.Map{"success": true, "active": false})
	}

	state := fiber.Map{
		"success":   true,
		"active":    true,
		"level":     session.Level,
		"index":     session.Index(),
		"total":     session.Total(),
		"score":     session.Score(),
		"max_score": session.MaxScore(),
		"answered":  session.State() == quiz.StateAnswered,
	}
	if current, ok := session.Current(); ok {
		state["question"] = toQuestionView(current, session)
	}
	return c.JSON(state)
}

// finalizeSession applies the completed outcome: unlock check, achievement
// evaluation, the authoritative progress merge and the attempt row.
func finalizeSession(userID uint, outcome quiz.Outcome) fiber.Map {
	store := services.GetProgressStore()
	progress, loadErr := store.Load(userID)
	if loadErr != nil {
		log.Printf("Progress load failed during completion for user %d: %v", userID, loadErr)
	}

	db := database.GetDB()

	var priorAttempts int64
	if err := db.Model(&models.QuizAttempt{}).Where("user_id = ?", userID).Count(&priorAttempts).Error; err != nil {
		log.Printf("Failed to count attempts for user %d: %v", userID, err)
	}

	unlockLevel, unlocked := quiz.NextLevelToUnlock(outcome.Level, outcome.Score)
	achievements := quiz.EvaluateAchievements(progress.Achievements, outcome, quiz.LifetimeStats{
		SessionsCompleted: int(priorAttempts),
	})

	newAchievements := make([]string, 0, 3)
	for _, id := range achievements {
		if !progress.HasAchievement(id) {
			newAchievements = append(newAchievements, id)
		}
	}

	now := time.Now()
	update := quiz.Update{
		Level:              outcome.Level,
		LevelScore:         outcome.Score,
		CompletedQuestions: outcome.QuestionIDs,
		AddTotalScore:      outcome.Score,
		Achievements:       achievements,
		LastPlayed:         &now,
	}
	if unlocked {
		update.UnlockLevel = unlockLevel
	}

	if err := store.Save(userID, update); err != nil {
		log.Printf("Failed to save quiz completion for user %d: %v", userID, err)
	}

	attempt := models.QuizAttempt{
		UserID:         userID,
		Level:          outcome.Level,
		Score:          outcome.Score,
		MaxScore:       outcome.MaxScore,
		TotalQuestions: outcome.TotalQuestions,
		CorrectAnswers: outcome.CorrectAnswers,
		IsPerfect:      outcome.Perfect(),
	}
	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Failed to record quiz attempt for user %d: %v", userID, err)
	}

	BroadcastLive(LiveEvent{
		Type:         "quiz_completed",
		UserID:       userID,
		Level:        outcome.Level,
		Score:        outcome.Score,
		Perfect:      outcome.Perfect(),
		Achievements: newAchievements,
	})

	return fiber.Map{
		"success":          true,
		"complete":         true,
		"level":            outcome.Level,
		"score":            outcome.Score,
		"max_score":        outcome.MaxScore,
		"total_questions":  outcome.TotalQuestions,
		"correct_answers":  outcome.CorrectAnswers,
		"perfect":          outcome.Perfect(),
		"level_unlocked":   unlocked,
		"unlocked_level":   unlockLevel,
		"new_achievements": newAchievements,
	}
}

// Helper functions

func getSession(userID uint) (*quiz.Session, bool) {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	session, ok := activeSessions[userID]
	return session, ok
}

// putSessionIfAbsent registers the session for the user unless one is already
// live, so concurrent starts can never silently replace each other.
func putSessionIfAbsent(userID uint, session *quiz.Session) bool {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	if _, ok := activeSessions[userID]; ok {
		return false
	}
	activeSessions[userID] = session
	return true
}

// loadQuestionPool fetches approved questions for a level and converts them
// to engine questions, skipping rows whose options column is malformed.
func loadQuestionPool(level int) ([]quiz.Question, error) {
	db := database.GetDB()

	var rows []models.QuizQuestion
	if err := db.Where("level = ? AND approved = ?", level, true).Find(&rows).Error; err != nil {
		return nil, err
	}

	pool := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		q, err := toEngineQuestion(row)
		if err != nil {
			log.Printf("Skipping malformed question %d: %v", row.ID, err)
			continue
		}
		pool = append(pool, q)
	}
	return pool, nil
}

func toEngineQuestion(row models.QuizQuestion) (quiz.Question, error) {
	var options []models.QuestionOption
	if err := json.Unmarshal([]byte(row.Options), &options); err != nil {
		return quiz.Question{}, err
	}

	q := quiz.Question{
		ID:          row.ID,
		Level:       row.Level,
		Category:    row.Category,
		Text:        row.Text,
		Explanation: row.Explanation,
		Options:     make([]quiz.Option, 0, len(options)),
	}
	for _, opt := range options {
		q.Options = append(q.Options, quiz.Option{Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	return q, nil
}

// toQuestionView strips the correct flags before a question leaves the server.
func toQuestionView(q quiz.Question, s *quiz.Session) questionView {
	options := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, opt.Text)
	}
	return questionView{
		ID:       q.ID,
		Index:    s.Index(),
		Total:    s.Total(),
		Category: q.Category,
		Question: q.Text,
		Options:  options,
	}
}
