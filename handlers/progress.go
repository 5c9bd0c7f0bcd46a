// handlers/progress.go - progress and achievement views
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"sanskriti/middleware"
	"sanskriti/quiz"
	"sanskriti/services"
)

// GetProgress returns the user's normalized progress record.
func GetProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	progress, loadErr := services.GetProgressStore().Load(userID)
	if loadErr != nil {
		log.Printf("Progress load degraded for user %d: %v", userID, loadErr)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"progress": progress,
	})
}

// GetAchievements returns the full catalog with the user's unlocked state.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	progress, loadErr := services.GetProgressStore().Load(userID)
	if loadErr != nil {
		log.Printf("Progress load degraded for user %d: %v", userID, loadErr)
	}

	type achievementView struct {
		quiz.CatalogEntry
		Unlocked bool `json:"unlocked"`
	}

	catalog := quiz.Catalog()
	achievements := make([]achievementView, 0, len(catalog))
	unlocked := 0
	for _, entry := range catalog {
		held := progress.HasAchievement(entry.ID)
		if held {
			unlocked++
		}
		achievements = append(achievements, achievementView{CatalogEntry: entry, Unlocked: held})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"unlocked":     unlocked,
		"total":        len(catalog),
	})
}
