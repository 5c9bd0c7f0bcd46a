// main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"sanskriti/database"
	"sanskriti/handlers"
	"sanskriti/handlers/admin"
	"sanskriti/middleware"
	"sanskriti/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Initialize progress store
	services.InitProgressStore()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/upgrade", middleware.AuthMiddleware, handlers.UpgradeGuest)

	// Kids quiz routes (require authentication)
	kidsGroup := api.Group("/kids")
	kidsGroup.Use(middleware.AuthMiddleware)
	kidsGroup.Post("/quiz/start", handlers.StartQuiz)
	kidsGroup.Get("/quiz/question", handlers.GetQuestion)
	kidsGroup.Post("/quiz/answer", handlers.SubmitAnswer)
	kidsGroup.Post("/quiz/next", handlers.NextQuestion)
	kidsGroup.Post("/quiz/abandon", handlers.AbandonQuiz)
	kidsGroup.Get("/quiz/state", handlers.GetQuizState)
	kidsGroup.Get("/progress", handlers.GetProgress)
	kidsGroup.Get("/achievements", handlers.GetAchievements)

	// Story library
	api.Get("/stories", handlers.GetStories)
	api.Get("/stories/:id", handlers.GetStory)
	api.Post("/stories", middleware.AuthMiddleware, handlers.SubmitStory)

	// Learning video library
	api.Get("/videos", handlers.GetVideos)

	// Community question submission
	api.Get("/questions/categories", handlers.GetCategories)
	api.Post("/questions", middleware.AuthMiddleware, handlers.SubmitQuestion)

	// Leaderboard
	api.Get("/leaderboard", handlers.GetLeaderboard)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", admin.AdminLogin)

	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/stats", admin.GetStats)
	adminProtected.Get("/users", admin.ListUsers)
	adminProtected.Post("/users/:id/grant-admin", admin.GrantAdmin)
	adminProtected.Post("/users/:id/revoke-admin", admin.RevokeAdmin)
	adminProtected.Post("/users/:id/ban", admin.BanUser)
	adminProtected.Post("/users/:id/unban", admin.UnbanUser)
	adminProtected.Get("/questions", admin.ListQuestions)
	adminProtected.Post("/questions/batch", admin.BatchQuestions)
	adminProtected.Post("/questions/:id/approve", admin.ApproveQuestion)
	adminProtected.Post("/questions/:id/reject", admin.RejectQuestion)
	adminProtected.Put("/questions/:id", admin.UpdateQuestion)
	adminProtected.Delete("/questions/:id", admin.DeleteQuestion)
	adminProtected.Get("/stories", admin.ListPendingStories)
	adminProtected.Post("/stories/:id/approve", admin.ApproveStory)
	adminProtected.Delete("/stories/:id", admin.DeleteStory)
	adminProtected.Get("/videos", admin.ListVideos)
	adminProtected.Post("/videos", admin.AddVideo)
	adminProtected.Delete("/videos/:id", admin.DeleteVideo)

	// Live completion feed
	app.Use("/ws/live", handlers.LiveUpgradeMiddleware)
	app.Get("/ws/live", handlers.LiveFeedHandler)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Live feed available at ws://localhost:%s/ws/live", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

// Helper functions

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
