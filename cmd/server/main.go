package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Mattiasalardi/VDP/auth"
	"github.com/Mattiasalardi/VDP/cache"
	"github.com/Mattiasalardi/VDP/config"
	"github.com/Mattiasalardi/VDP/handlers"
	"github.com/Mattiasalardi/VDP/openrouter"
	"github.com/Mattiasalardi/VDP/ratelimit"
	"github.com/Mattiasalardi/VDP/repository"
	"github.com/Mattiasalardi/VDP/service"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to initialize Postgres", zap.Error(err))
	}
	defer db.Close()

	// Redis backs the rate limiter and guidelines cache. Without it both fall
	// back to in-process implementations, which is fine for a single replica.
	limiter, aiCache := initRedis(cfg)

	// Repositories
	orgRepo := repository.NewOrganizationRepository(db)
	programRepo := repository.NewProgramRepository(db)
	questionnaireRepo := repository.NewQuestionnaireRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	calibrationRepo := repository.NewCalibrationRepository(db)
	guidelineRepo := repository.NewGuidelineRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	// Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)
	orgService := service.NewOrganizationService(orgRepo, tokens)
	programService := service.NewProgramService(programRepo)
	questionnaireService := service.NewQuestionnaireService(programRepo, questionnaireRepo)
	questionService := service.NewQuestionService(programRepo, questionnaireRepo, questionRepo)
	calibrationService := service.NewCalibrationService(programRepo, calibrationRepo)
	applicationService := service.NewApplicationService(programRepo, questionnaireRepo, questionRepo, applicationRepo, responseRepo)

	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.AppDomain)
	guidelinesService := service.NewGuidelinesService(
		service.GuidelinesWithProgramStore(programRepo),
		service.GuidelinesWithCalibrationStore(calibrationRepo),
		service.GuidelinesWithGuidelineStore(guidelineRepo),
		service.GuidelinesWithLLMClient(llm),
		service.GuidelinesWithLimiter(limiter),
		service.GuidelinesWithCache(aiCache),
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(orgService)
	programHandler := handlers.NewProgramHandler(programService)
	questionnaireHandler := handlers.NewQuestionnaireHandler(questionnaireService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	calibrationHandler := handlers.NewCalibrationHandler(calibrationService)
	guidelinesHandler := handlers.NewGuidelinesHandler(guidelinesService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Applicant endpoints, keyed by the application's unique_id
		api.GET("/apply/:uniqueId", applicationHandler.GetPublicApplication)
		api.PUT("/apply/:uniqueId/responses", applicationHandler.SaveResponse)
		api.POST("/apply/:uniqueId/submit", applicationHandler.Submit)

		authed := api.Group("", auth.Middleware(tokens))
		{
			authed.POST("/auth/logout", authHandler.Logout)
			authed.GET("/auth/me", authHandler.GetProfile)
			authed.GET("/organization", authHandler.GetProfile)
			authed.PUT("/organization", authHandler.UpdateProfile)

			authed.POST("/programs", programHandler.CreateProgram)
			authed.GET("/programs", programHandler.ListPrograms)
			authed.GET("/programs/:programId", programHandler.GetProgram)
			authed.PUT("/programs/:programId", programHandler.UpdateProgram)
			authed.DELETE("/programs/:programId", programHandler.DeleteProgram)

			authed.POST("/programs/:programId/questionnaires", questionnaireHandler.CreateQuestionnaire)
			authed.GET("/programs/:programId/questionnaires", questionnaireHandler.ListQuestionnaires)
			authed.GET("/programs/:programId/questionnaires/:questionnaireId", questionnaireHandler.GetQuestionnaire)
			authed.PUT("/programs/:programId/questionnaires/:questionnaireId", questionnaireHandler.UpdateQuestionnaire)
			authed.DELETE("/programs/:programId/questionnaires/:questionnaireId", questionnaireHandler.DeleteQuestionnaire)

			authed.POST("/programs/:programId/questionnaires/:questionnaireId/questions", questionHandler.CreateQuestion)
			authed.GET("/programs/:programId/questionnaires/:questionnaireId/questions", questionHandler.ListQuestions)
			authed.PUT("/programs/:programId/questionnaires/:questionnaireId/questions/reorder", questionHandler.ReorderQuestions)
			authed.PUT("/programs/:programId/questionnaires/:questionnaireId/questions/:questionId", questionHandler.UpdateQuestion)
			authed.PUT("/programs/:programId/questionnaires/:questionnaireId/questions/:questionId/move", questionHandler.MoveQuestion)
			authed.DELETE("/programs/:programId/questionnaires/:questionnaireId/questions/:questionId", questionHandler.DeleteQuestion)

			authed.GET("/calibration/questions", calibrationHandler.GetCatalog)
			authed.PUT("/programs/:programId/calibration/answers", calibrationHandler.SaveAnswer)
			authed.PUT("/programs/:programId/calibration/answers/batch", calibrationHandler.SaveAnswers)
			authed.GET("/programs/:programId/calibration/answers", calibrationHandler.ListAnswers)
			authed.DELETE("/programs/:programId/calibration/answers/:questionKey", calibrationHandler.DeleteAnswer)
			authed.GET("/programs/:programId/calibration/status", calibrationHandler.CompletionStatus)
			authed.GET("/programs/:programId/calibration/session", calibrationHandler.GetSession)
			authed.DELETE("/programs/:programId/calibration/answers", calibrationHandler.Reset)

			authed.POST("/programs/:programId/guidelines/generate", guidelinesHandler.Generate)
			authed.POST("/programs/:programId/guidelines/generate-and-save", guidelinesHandler.GenerateAndSave)
			authed.GET("/programs/:programId/guidelines/status", guidelinesHandler.Status)
			authed.POST("/programs/:programId/guidelines", guidelinesHandler.Save)
			authed.GET("/programs/:programId/guidelines/active", guidelinesHandler.GetActive)
			authed.GET("/programs/:programId/guidelines/versions", guidelinesHandler.History)
			authed.GET("/programs/:programId/guidelines/versions/:version", guidelinesHandler.GetVersion)
			authed.PUT("/programs/:programId/guidelines/versions/:version/activate", guidelinesHandler.Activate)
			authed.GET("/guidelines/models", guidelinesHandler.Models)
			authed.GET("/guidelines/cache", guidelinesHandler.CacheStats)
			authed.DELETE("/guidelines/cache", guidelinesHandler.ClearCache)

			authed.POST("/programs/:programId/applications", applicationHandler.CreateApplication)
			authed.GET("/programs/:programId/applications", applicationHandler.ListApplications)
		}
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	zap.L().Info("Postgres connection established")
	return pool, nil
}

func initRedis(cfg *config.Config) (ratelimit.Limiter, cache.Cache) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("invalid REDIS_URL, using in-process limiter and cache", zap.Error(err))
		return ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow), cache.NewMemoryCache(cfg.CacheTTL)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("Redis unreachable, using in-process limiter and cache", zap.Error(err))
		return ratelimit.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow), cache.NewMemoryCache(cfg.CacheTTL)
	}

	zap.L().Info("Redis connection established")
	return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit, cfg.RateLimitWindow), cache.NewRedisCache(rdb, cfg.CacheTTL)
}
