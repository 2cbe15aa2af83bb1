package main

import (
	"context"
	"log"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/bootstrap"
	"github.com/AmineGaf/fraud-detection-system/internal/config"
	"github.com/AmineGaf/fraud-detection-system/internal/handler"
	"github.com/AmineGaf/fraud-detection-system/internal/middleware"
	"github.com/AmineGaf/fraud-detection-system/internal/ml"
	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/repository"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/AmineGaf/fraud-detection-system/pkg/database"
	"github.com/AmineGaf/fraud-detection-system/pkg/mail"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	}

	// The model handle is created once and shared read-only across requests.
	inferenceClient := ml.NewInferenceClient(cfg.InferenceURL)
	if err := inferenceClient.CheckHealth(context.Background()); err != nil {
		log.Printf("Warning: inference service not available: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	classRepo := repository.NewClassRepository(db)
	examRepo := repository.NewExamRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	mailer := mail.NewSMTPMailer(cfg)

	authService := service.NewAuthService(userRepo, cfg.SecretKey, cfg.AccessTokenTTL)
	resetService := service.NewPasswordResetService(userRepo, tokenRepo, mailer, cfg.ResetTokenTTL)
	userService := service.NewUserService(userRepo, roleRepo, classRepo)
	classService := service.NewClassService(classRepo, userRepo)
	examService := service.NewExamService(examRepo, classRepo)
	detectionService := service.NewDetectionService(inferenceClient, cfg.DetectionMinConfidence)

	authHandler := handler.NewAuthHandler(authService, resetService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)
	classHandler := handler.NewClassHandler(classService)
	examHandler := handler.NewExamHandler(examService)
	detectionHandler := handler.NewDetectionHandler(detectionService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.Default()
	router.Use(middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	auth := router.Group("/auth")
	auth.Use(middleware.RateLimit(rdb, cfg.AuthRateLimit))
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	api := router.Group("/")
	api.Use(authMiddleware.RequireAuth())
	{
		users := api.Group("/users")
		{
			users.GET("/me", userHandler.Me)

			users.GET("", authMiddleware.RequireRoles(model.RoleSupervisor, model.RoleAdmin), userHandler.List)

			admin := users.Group("", authMiddleware.RequireRoles(model.RoleAdmin))
			{
				admin.POST("", userHandler.Create)
				admin.GET("/:id", userHandler.Get)
				admin.PATCH("/:id", userHandler.Update)
				admin.DELETE("/:id", userHandler.Delete)
				admin.POST("/:id/assign-class", userHandler.AssignClass)
				admin.DELETE("/:id/remove-class/:classId", userHandler.RemoveClass)
				admin.POST("/bulk-assign", userHandler.BulkAssign)
			}
		}

		roles := api.Group("/roles")
		{
			roles.GET("", roleHandler.List)
			roles.GET("/:id", roleHandler.Get)
		}

		classes := api.Group("/classes", authMiddleware.RequireRoles(model.RoleSupervisor, model.RoleAdmin))
		{
			classes.GET("", classHandler.List)
			classes.GET("/:id", classHandler.Get)
			classes.GET("/:id/users", classHandler.GetWithUsers)

			adminOnly := classes.Group("", authMiddleware.RequireRoles(model.RoleAdmin))
			{
				adminOnly.POST("", classHandler.Create)
				adminOnly.PUT("/:id", classHandler.Update)
				adminOnly.DELETE("/:id", classHandler.Delete)
				adminOnly.POST("/:id/users/:userId", classHandler.AddUser)
				adminOnly.DELETE("/:id/users/:userId", classHandler.RemoveUser)
			}
		}

		exams := api.Group("/exams", authMiddleware.RequireRoles(model.RoleSupervisor, model.RoleAdmin))
		{
			exams.GET("", examHandler.List)
			exams.GET("/:id", examHandler.Get)
			exams.GET("/class/:classId", examHandler.ListByClass)

			adminOnly := exams.Group("", authMiddleware.RequireRoles(model.RoleAdmin))
			{
				adminOnly.POST("", examHandler.Create)
				adminOnly.PUT("/:id", examHandler.Update)
				adminOnly.DELETE("/:id", examHandler.Delete)
			}
		}

		api.POST("/ai/detect", detectionHandler.Detect)
	}

	// Background sweep for expired reset tokens.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			count, err := resetService.PurgeExpiredTokens(context.Background())
			if err != nil {
				log.Printf("token purge failed: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("purged %d expired reset tokens", count)
			}
		}
	}()

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
