package app

import (
	"fmt"

	"mentorhub_backend/database"
	"mentorhub_backend/internal/auth"
	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/handlers"
	"mentorhub_backend/internal/logger"
	"mentorhub_backend/internal/middleware"
	"mentorhub_backend/internal/repositories"
	"mentorhub_backend/internal/routes"
	"mentorhub_backend/internal/services"
	"mentorhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полностью сконфигурированный *gin.Engine.
// Вынесен отдельно, чтобы тесты могли поднять сервер на транзакции.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	tokens := auth.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.AccessTTL(),
		cfg.RefreshTTL(),
	)

	serviceContainer, userRepo := initializeServices(tokens)
	appHandlers := initializeHandlers(serviceContainer, cfg, tokens, userRepo)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(tokens *auth.TokenManager) (*services.ServiceContainer, repositories.UserRepository) {
	userRepo := repositories.NewUserRepository()
	mentorshipRepo := repositories.NewMentorshipRepository()

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	mentorshipService := services.NewMentorshipService(mentorshipRepo, userRepo)

	return &services.ServiceContainer{
		AuthService:       authService,
		UserService:       userService,
		MentorshipService: mentorshipService,
	}, userRepo
}

func initializeHandlers(
	container *services.ServiceContainer,
	cfg *config.Config,
	tokens *auth.TokenManager,
	userRepo repositories.UserRepository,
) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService, cfg, tokens, userRepo),
		UserHandler:       handlers.NewUserHandler(baseHandler, container.UserService, tokens, userRepo),
		MentorshipHandler: handlers.NewMentorshipHandler(baseHandler, container.MentorshipService, tokens, userRepo),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origin))
	router.Use(middleware.DBMiddleware(db))
	return router
}
