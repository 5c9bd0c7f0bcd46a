// handlers/stories.go - cultural story library
package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/middleware"
	"sanskriti/models"
)

type SubmitStoryRequest struct {
	Title   string `json:"title"`
	Deity   string `json:"deity"`
	Theme   string `json:"theme"`
	Content string `json:"content"`
	Moral   string `json:"moral"`
}

// GetStories lists approved stories, optionally filtered by deity.
func GetStories(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	query := db.Where("approved = ?", true)
	if deity := c.Query("deity"); deity != "" {
		query = query.Where("deity = ?", deity)
	}

	var total int64
	query.Model(&models.Story{}).Count(&total)

	var stories []models.Story
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&stories).Error; err != nil {
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

// GetStory returns one approved story by id.
func GetStory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid story id"})
	}

	db := database.GetDB()

	var story models.Story
	if err := db.Where("id = ? AND approved = ?", id, true).First(&story).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Story not found"})
	}

	return c.JSON(fiber.Map{"success": true, "story": story})
}

// SubmitStory queues a community story for admin review.
func SubmitStory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req SubmitStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Title == "" || req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title and content required"})
	}

	db := database.GetDB()

	story := models.Story{
		Title:     req.Title,
		Deity:     req.Deity,
		Theme:     req.Theme,
		Content:   req.Content,
		Moral:     req.Moral,
		WordCount: len(strings.Fields(req.Content)),
		Approved:  false,
		CreatedBy: &userID,
	}

	if err := db.Create(&story).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to submit story"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Story submitted for review",
		"id":      story.ID,
	})
}
