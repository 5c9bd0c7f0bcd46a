// handlers/admin/stories.go - story review queue
package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/models"
)

// ListPendingStories returns stories awaiting review, oldest first.
func ListPendingStories(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()

	var total int64
	db.Model(&models.Story{}).Where("approved = ?", false).Count(&total)

	var stories []models.Story
	if err := db.Where("approved = ?", false).Order("created_at ASC").Limit(limit).Offset(offset).Find(&stories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load stories"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stories": stories,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// ApproveStory publishes a story to the library.
func ApproveStory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid story id"})
	}

	db := database.GetDB()

	result := db.Model(&models.Story{}).Where("id = ?", id).Updates(map[string]interface{}{
		"approved":   true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to approve story"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Story not found"})
	}

	return c.JSON(fiber.Map{"success": true, "id": id, "approved": true})
}

// DeleteStory removes a story, approved or not.
func DeleteStory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid story id"})
	}

	db := database.GetDB()

	result := db.Delete(&models.Story{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete story"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Story not found"})
	}

	return c.JSON(fiber.Map{"success": true, "id": id, "deleted": true})
}
