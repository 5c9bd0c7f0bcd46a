// handlers/admin/videos.go - video library curation
package admin

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/middleware"
	"sanskriti/models"
)

type AddVideoRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Accepts the usual YouTube URL shapes: watch?v=, youtu.be/, embed/, v/.
var youtubeIDPattern = regexp.MustCompile(`(?:youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// extractYouTubeID pulls the 11-character video id out of a YouTube URL.
// Returns "" when the URL carries no usable id.
func extractYouTubeID(url string) string {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if match == nil || len(match[1]) != 11 {
		return ""
	}
	return match[1]
}

// ListVideos returns the whole library for curation, newest first.
func ListVideos(c *fiber.Ctx) error {
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

// AddVideo adds a YouTube video to the kids library.
func AddVideo(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req AddVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title required"})
	}

	videoID := extractYouTubeID(req.URL)
	if videoID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid YouTube URL"})
	}

	db := database.GetDB()

	video := models.Video{
		Title:     req.Title,
		URL:       req.URL,
		VideoID:   videoID,
		CreatedBy: &adminID,
	}

	if err := db.Create(&video).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to add video"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "video": video})
}

// DeleteVideo removes a video from the library.
func DeleteVideo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid video id"})
	}

	db := database.GetDB()

	result := db.Delete(&models.Video{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete video"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Video not found"})
	}

	return c.JSON(fiber.Map{"success": true, "id": id, "deleted": true})
}
