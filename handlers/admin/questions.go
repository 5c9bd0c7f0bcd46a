// handlers/admin/questions.go - question review queue
package admin

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sanskriti/database"
	"sanskriti/models"
	"sanskriti/quiz"
)

type UpdateQuestionRequest struct {
	Level       *int                    `json:"level"`
	Category    *string                 `json:"category"`
	Question    *string                 `json:"question"`
	Options     []models.QuestionOption `json:"options"`
	Explanation *string                 `json:"explanation"`
}

type BatchQuestionRequest struct {
	IDs    []uint `json:"ids"`
	Action string `json:"action"` // approve, reject, delete
}

// ListQuestions returns questions for review, filterable by level, category
// and approval status (pending, approved, all).
func ListQuestions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	query := db.Model(&models.QuizQuestion{})

	if level := c.QueryInt("level", 0); level >= quiz.MinLevel && level <= quiz.MaxLevel {
		query = query.Where("level = ?", level)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	switch c.Query("status", "pending") {
	case "pending":
		query = query.Where("approved = ?", false)
	case "approved":
		query = query.Where("approved = ?", true)
	case "all":
	}

	var total int64
	query.Count(&total)

	var questions []models.QuizQuestion
	if err := query.Preload("Creator").Order("created_at DESC").Limit(limit).Offset(offset).Find(&questions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load questions"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"questions": questions,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// ApproveQuestion publishes a question to the live pool.
func ApproveQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question id"})
	}

	db := database.GetDB()

	result := db.Model(&models.QuizQuestion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"approved":   true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to approve question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Question not found"})
	}

	return c.JSON(fiber.Map{"success": true, "id": id, "approved": true})
}

// RejectQuestion removes a submission from the queue.
func RejectQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question id"})
	}

	db := database.GetDB()

	result := db.Delete(&models.QuizQuestion{}, id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to reject question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Question not found"})
	}

	return c.JSON(fiber.Map{"success": true, "id": id, "deleted": true})
}

// UpdateQuestion edits a question in place, re-validating the option shape
// when options change.
func UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid question id"})
	}

	var req UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()

	var question models.QuizQuestion
	if err := db.First(&question, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Question not found"})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}

	if req.Level != nil {
		if *req.Level < quiz.MinLevel || *req.Level > quiz.MaxLevel {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Level must be between 1 and 5"})
		}
		updates["level"] = *req.Level
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Question != nil {
		updates["text"] = *req.Question
	}
	if req.Explanation != nil {
		updates["explanation"] = *req.Explanation
	}
	if req.Options != nil {
		if len(req.Options) != quiz.OptionsPerQuestion {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Exactly 4 options required"})
		}
		correct := 0
		for _, opt := range req.Options {
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
		updates["options"] = string(optionsJSON)
	}

	if err := db.Model(&question).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update question"})
	}

	db.First(&question, id)
	return c.JSON(fiber.Map{"success": true, "question": question})
}

// DeleteQuestion removes a question entirely, approved or not.
func DeleteQuestion(c *fiber.Ctx) error {
	return RejectQuestion(c)
}

// BatchQuestions applies one action to many questions atomically. Either
// every id is processed or none are.
func BatchQuestions(c *fiber.Ctx) error {
	var req BatchQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if len(req.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No question ids provided"})
	}
	if len(req.IDs) > 100 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "At most 100 questions per batch"})
	}

	db := database.GetDB()

	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		switch req.Action {
		case "approve":
			result := tx.Model(&models.QuizQuestion{}).Where("id IN ?", req.IDs).Updates(map[string]interface{}{
				"approved":   true,
				"updated_at": time.Now(),
			})
			affected = result.RowsAffected
			return result.Error
		case "reject", "delete":
			result := tx.Where("id IN ?", req.IDs).Delete(&models.QuizQuestion{})
			affected = result.RowsAffected
			return result.Error
		default:
			return fiber.NewError(400, "Unknown batch action")
		}
	})
	if err != nil {
		if ferr, ok := err.(*fiber.Error); ok {
			return c.Status(ferr.Code).JSON(fiber.Map{"success": false, "error": ferr.Message})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Batch operation failed"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"action":   req.Action,
		"affected": affected,
	})
}
