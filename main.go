package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"ENCRYPTION_KEY",
		"PUBLIC_BASE_URL",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient(config.LoadDatabaseConfig())
}

func setupRouter(cfg config.AppConfig) *gin.Engine {
	router := gin.Default()

	notesRepo := repository.GetNotesRepo(utils.MongoClient, cfg.EncryptionKey)
	usersRepo := repository.GetUsersRepo(utils.MongoClient)

	notesService := &usecase.NotesService{NotesRepo: notesRepo}
	userService := &usecase.UserService{UsersRepo: usersRepo}

	baseURL := cfg.PublicBaseURL

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService)
			})
		}

		// Anonymous share-link access; the token is the credential
		public.GET("/public/:token", func(c *gin.Context) {
			handler.GetPublicNoteHandler(c, notesService)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userService)
			})
			user.POST("/logout", handler.LogoutHandler)
		}

		notes := protected.Group("/notes")
		{
			// Search and list operations
			notes.GET("/", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService, baseURL)
			})
			notes.GET("/search", func(c *gin.Context) {
				handler.SearchNotesHandler(c, notesService, baseURL)
			})

			// Basic CRUD operations
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService, baseURL)
			})
			notes.POST("/", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService, baseURL)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService, baseURL)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})

			// Display-state actions
			notes.POST("/:id/pin", func(c *gin.Context) {
				handler.TogglePinHandler(c, notesService)
			})
			notes.POST("/:id/archive", func(c *gin.Context) {
				handler.ToggleArchiveHandler(c, notesService)
			})
			notes.POST("/reorder", func(c *gin.Context) {
				handler.ReorderNotesHandler(c, notesService)
			})

			// Collaboration
			notes.POST("/:id/collaborators", func(c *gin.Context) {
				handler.AddCollaboratorHandler(c, notesService, baseURL)
			})
			notes.DELETE("/:id/collaborators", func(c *gin.Context) {
				handler.RemoveCollaboratorHandler(c, notesService, baseURL)
			})

			// Public sharing
			notes.POST("/:id/share", func(c *gin.Context) {
				handler.ShareNoteHandler(c, notesService, baseURL)
			})
			notes.DELETE("/:id/share", func(c *gin.Context) {
				handler.UnshareNoteHandler(c, notesService, baseURL)
			})
			notes.POST("/:id/share/regenerate", func(c *gin.Context) {
				handler.RegenerateShareTokenHandler(c, notesService, baseURL)
			})
		}
	}

	return router
}

func main() {
	cfg := config.LoadAppConfig()

	// Ensure indexes, including the unique share_token constraint
	dbCfg := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbCfg.DatabaseName)); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	// Redis-backed token blacklist for logout
	blacklist, err := services.NewTokenBlacklist(cfg.RedisURL)
	if err != nil {
		log.Printf("Token blacklist unavailable: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	router := setupRouter(cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
