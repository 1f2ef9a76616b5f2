package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/database"
	"github.com/n0cod3develper-byte/Documental/handlers"
	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/middleware"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("starting documental service")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.Department{},
		&models.User{},
		&models.Folder{},
		&models.FolderShare{},
		&models.Document{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migration completed")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@documental.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "ChangeMe123!"
	}
	if err := database.SeedDefaults(adminEmail, adminPassword); err != nil {
		log.Fatalf("seed defaults failed: %v", err)
	}

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.Storage.BasePath)
	if err != nil {
		log.Fatalf("init storage failed: %v", err)
	}
	thumbnails := storage.NewImageThumbnailer(store, 0)

	repoContainer := repositories.NewGormRepositories(database.DB).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, store, thumbnails)
	handlers.SetServices(serviceContainer)

	if cfg.Cleanup.Enabled {
		interval := time.Duration(cfg.Cleanup.IntervalMinutes) * time.Minute
		serviceContainer.Cleanup.Start(context.Background(), interval)
		log.Println("orphan cleanup worker started")
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, cfg, repoContainer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, cfg *config.Config, repos repositories.Container) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	{
		login := auth.Group("")
		if cfg.RateLimit.Enabled {
			window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			login.Use(middleware.LoginRateLimit(database.RedisClient, cfg.RateLimit.LoginMax, window))
		}
		login.POST("/login", handlers.Login)

		auth.POST("/refresh", handlers.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(repos.Users))
	{
		protected.GET("/auth/me", handlers.Me)
		protected.POST("/auth/logout", handlers.Logout)

		protected.GET("/folders", handlers.ListFolders)
		protected.GET("/folders/:id", handlers.GetFolder)
		protected.POST("/folders", handlers.CreateFolder)
		protected.PUT("/folders/:id", handlers.UpdateFolder)
		protected.DELETE("/folders/:id", handlers.DeleteFolder)

		protected.GET("/documents", handlers.ListDocuments)
		protected.GET("/documents/:id", handlers.GetDocument)
		protected.POST("/documents", handlers.UploadDocument)
		protected.GET("/documents/:id/download", handlers.DownloadDocument)
		protected.GET("/documents/:id/preview", handlers.PreviewDocument)
		protected.GET("/documents/:id/thumbnail", handlers.DocumentThumbnail)
		protected.PUT("/documents/:id", handlers.UpdateDocument)
		protected.DELETE("/documents/:id", handlers.DeleteDocument)

		protected.GET("/departments", handlers.ListDepartments)
		protected.GET("/departments/:id", handlers.GetDepartment)
		protected.POST("/departments", handlers.CreateDepartment)
		protected.PUT("/departments/:id", handlers.UpdateDepartment)
		protected.DELETE("/departments/:id", handlers.DeleteDepartment)

		protected.GET("/users", handlers.ListUsers)
		protected.GET("/users/:id", handlers.GetUser)
		protected.POST("/users", handlers.CreateUser)
		protected.PUT("/users/:id", handlers.UpdateUser)
		protected.DELETE("/users/:id", handlers.DeactivateUser)

		protected.GET("/search", handlers.Search)

		protected.GET("/audit-logs", handlers.ListAuditLogs)
	}
}
