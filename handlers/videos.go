// handlers/videos.go - kids learning video library
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/models"
)

// GetVideos lists the curated video library, newest first. The library is
// admin-curated, so every stored video is live.
func GetVideos(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 6)
	if limit < 1 || limit > 50 {
		limit = 6
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()

	var total int64
	db.Model(&models.Video{}).Count(&total)

	var videos []models.Video
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&videos).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load videos"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"videos":  videos,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
