// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"sanskriti/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.QuizQuestion{},
		&models.Story{},
		&models.Video{},
		&models.UserProgress{},
		&models.QuizAttempt{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate derives from tags
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_admin ON users(is_admin)")

	// Question indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_questions_level_approved ON quiz_questions(level, approved)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_questions_category ON quiz_questions(category)")

	// Progress and attempt indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_progress_total_score ON user_progress(total_score DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_attempts_user ON quiz_attempts(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quiz_attempts_created ON quiz_attempts(created_at DESC)")

	// Story indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_stories_approved ON stories(approved)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_stories_deity ON stories(deity)")

	// Video indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_youtube_videos_created ON youtube_videos(created_at DESC)")

	log.Println("✅ Indexes created successfully")
}
