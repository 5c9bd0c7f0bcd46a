// models/progress.go
package models

import "time"

// UserProgress is the stored per-user progress record. Levels and
// Achievements hold JSON (a map of level number to level progress, and an
// array of achievement ids) the same way other structured columns are stored
// as encoded text.
type UserProgress struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"not null;uniqueIndex"`
	User         *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalScore   int        `json:"total_score" gorm:"default:0;index"`
	Levels       string     `json:"levels" gorm:"type:text"`
	Achievements string     `json:"achievements" gorm:"type:text"`
	LastPlayed   *time.Time `json:"last_played"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
