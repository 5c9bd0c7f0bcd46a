// handlers/questions.go - community question submission
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/middleware"
	"sanskriti/models"
	"sanskriti/quiz"
)

type SubmitQuestionRequest struct {
	Level       int                     `json:"level"`
	Category    string                  `json:"category"`
	Question    string                  `json:"question"`
	Options     []models.QuestionOption `json:"options"`
	Explanation string                  `json:"explanation"`
}

// GetCategories lists the allowed question categories.
func GetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"categories": models.QuestionCategories,
	})
}

// SubmitQuestion queues a community-authored question for admin review.
// Shape is enforced at the door so reviewers only see well-formed questions.
func SubmitQuestion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req SubmitQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Level < quiz.MinLevel || req.Level > quiz.MaxLevel {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Level must be between 1 and 5"})
	}
	if req.Question == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Question text required"})
	}
	if !validCategory(req.Category) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid category"})
	}
	if len(req.Options) != quiz.OptionsPerQuestion {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Exactly 4 options required"})
	}
	correct := 0
	for _, opt := range req.Options {
		if opt.Text == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Options must not be empty"})
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Exactly one option must be correct"})
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to encode options"})
	}

	db := database.GetDB()

	question := models.QuizQuestion{
		Level:       req.Level,
		Category:    req.Category,
		Text:        req.Question,
		Options:     string(optionsJSON),
		Explanation: req.Explanation,
		Approved:    false,
		CreatedBy:   &userID,
	}

	if err := db.Create(&question).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to submit question"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Question submitted for review",
		"id":      question.ID,
	})
}

func validCategory(category string) bool {
	for _, c := range models.QuestionCategories {
		if c == category {
			return true
		}
	}
	return false
}
