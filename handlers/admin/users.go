// handlers/admin/users.go - user administration
package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sanskriti/database"
	"sanskriti/models"
)

// ListUsers returns users, newest first, with optional username search.
func ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	query := db.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		query = query.Where("username ILIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load users"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GrantAdmin promotes a registered user to admin. Guests cannot be admins.
func GrantAdmin(c *fiber.Ctx) error {
	return setAdminFlag(c, true)
}

// RevokeAdmin removes a user's admin rights.
func RevokeAdmin(c *fiber.Ctx) error {
	return setAdminFlag(c, false)
}

func setAdminFlag(c *fiber.Ctx, isAdmin bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user id"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	if isAdmin && user.IsGuest {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Guest accounts cannot be admins"})
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"is_admin":   isAdmin,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user_id":  user.ID,
		"is_admin": isAdmin,
	})
}

// BanUser suspends an account; banned users drop off the leaderboard and
// cannot log in.
func BanUser(c *fiber.Ctx) error {
	return setBanFlag(c, true)
}

// UnbanUser lifts a suspension.
func UnbanUser(c *fiber.Ctx) error {
	return setBanFlag(c, false)
}

func setBanFlag(c *fiber.Ctx, banned bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid user id"})
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	if user.IsAdmin && banned {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Cannot ban an admin account"})
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"is_banned":  banned,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"user_id":   user.ID,
		"is_banned": banned,
	})
}
