// handlers/leaderboard.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
)

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	TotalScore  int    `json:"total_score"`
}

// GetLeaderboard returns the top players by lifetime total score.
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()

	var entries []LeaderboardEntry
	err := db.Table("user_progress").
		Select("user_progress.user_id, users.username, users.display_name, users.avatar, user_progress.total_score").
		Joins("JOIN users ON users.id = user_progress.user_id").
		Where("users.is_banned = ?", false).
		Order("user_progress.total_score DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load leaderboard"})
	}

	for i := range entries {
		entries[i].Rank = offset + i + 1
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"leaderboard": entries,
		"limit":       limit,
		"offset":      offset,
	})
}
