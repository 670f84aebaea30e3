package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Axolotls/config"
	"github.com/lshigami/Axolotls/database"
	_ "github.com/lshigami/Axolotls/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Axolotls/internal/controller/admin"
	userctrl "github.com/lshigami/Axolotls/internal/controller/user"
	"github.com/lshigami/Axolotls/internal/logger"
	"github.com/lshigami/Axolotls/internal/middleware"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/lshigami/Axolotls/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Mock Examination API
// @version 1.0
// @description API for taking timed mock examinations: catalogue, attempts, scoring and history.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewMockRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAuthService,
			service.NewAdminMockService,
			service.NewMockService,
			service.NewAttemptService,
			service.NewHistoryService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewMockController,
			userctrl.NewAttemptController,
			adminctrl.NewAdminMockController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	mockCtrl *userctrl.MockController,
	attemptCtrl *userctrl.AttemptController,
	adminMockCtrl *adminctrl.AdminMockController,
) {
	apiV1 := router.Group("/api/v1")

	// Public routes
	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
	}

	// Authenticated user routes
	authed := apiV1.Group("")
	authed.Use(middleware.JWTAuth(cfg))
	{
		authed.GET("/mocks", mockCtrl.GetAllMocks)

		attempts := authed.Group("/attempts")
		attempts.POST("", attemptCtrl.StartAttempt)
		attempts.POST("/submit", attemptCtrl.SubmitAttempt)
		attempts.GET("", attemptCtrl.GetUserAttempts)
		attempts.GET("/:attempt_id", attemptCtrl.GetAttemptDetails)
	}

	// Admin routes
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(cfg))
	{
		adminGroup.POST("/mocks", adminMockCtrl.CreateMock)
		adminGroup.GET("/mocks/:mock_id/answers", adminMockCtrl.GetMockAnswerKey)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Mock examination API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Mock{},
		&model.Section{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
