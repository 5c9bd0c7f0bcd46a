// handlers/admin/stats.go - platform overview
package admin

import (
	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/models"
	"sanskriti/quiz"
)

type levelCount struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// GetStats returns a platform snapshot: user counts, review queue sizes,
// attempt volume and approved questions per level.
func GetStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalUsers, guestUsers, bannedUsers int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_guest = ?", true).Count(&guestUsers)
	db.Model(&models.User{}).Where("is_banned = ?", true).Count(&bannedUsers)

	var pendingQuestions, approvedQuestions, pendingStories, approvedStories int64
	db.Model(&models.QuizQuestion{}).Where("approved = ?", false).Count(&pendingQuestions)
	db.Model(&models.QuizQuestion{}).Where("approved = ?", true).Count(&approvedQuestions)
	db.Model(&models.Story{}).Where("approved = ?", false).Count(&pendingStories)
	db.Model(&models.Story{}).Where("approved = ?", true).Count(&approvedStories)

	var totalAttempts, perfectAttempts int64
	db.Model(&models.QuizAttempt{}).Count(&totalAttempts)
	db.Model(&models.QuizAttempt{}).Where("is_perfect = ?", true).Count(&perfectAttempts)

	// Approved questions per level so admins can spot thin pools.
	questionsByLevel := make([]levelCount, 0, quiz.MaxLevel)
	for lvl := quiz.MinLevel; lvl <= quiz.MaxLevel; lvl++ {
		var count int64
		db.Model(&models.QuizQuestion{}).Where("level = ? AND approved = ?", lvl, true).Count(&count)
		questionsByLevel = append(questionsByLevel, levelCount{Level: lvl, Count: count})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users": fiber.Map{
			"total":  totalUsers,
			"guests": guestUsers,
			"banned": bannedUsers,
		},
		"questions": fiber.Map{
			"pending":  pendingQuestions,
			"approved": approvedQuestions,
			"by_level": questionsByLevel,
		},
		"stories": fiber.Map{
			"pending":  pendingStories,
			"approved": approvedStories,
		},
		"attempts": fiber.Map{
			"total":   totalAttempts,
			"perfect": perfectAttempts,
		},
	})
}
