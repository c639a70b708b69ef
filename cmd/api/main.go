// @title Career Path Assessment API
// @version 1.0
// @description Backend for the section-gated career readiness assessment.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"

	_ "careerpath/cmd/api/docs"
	"careerpath/internal/adapter"
	"careerpath/internal/adapter/interpret"
	"careerpath/internal/bootstrap"
	"careerpath/internal/cache"
	"careerpath/internal/config"
	"careerpath/internal/database"
	"careerpath/internal/domain"
	"careerpath/internal/handler"
	"careerpath/internal/logger"
	"careerpath/internal/middleware"
	"careerpath/internal/repository"
	"careerpath/internal/service"
)

// requestLogger logs every HTTP request with its outcome and timing.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Env, cfg.Logger.Level); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	ollamaHTTPClient := &http.Client{Timeout: cfg.LLM.Timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.LLM.ServerURL),
		ollama.WithModel(cfg.LLM.Model),
		ollama.WithHTTPClient(ollamaHTTPClient),
	)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	narrativeGenerator := interpret.NewNarrativeGenerator(llm, cfg.LLM.Timeout)

	// Repositories
	sectionRepo := repository.NewSectionDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	attemptRepo := repository.NewAttemptDatabaseAdapter(db)
	assignmentRepo := repository.NewAssignmentDatabaseAdapter(db)
	progressRepo := repository.NewSectionProgressDatabaseAdapter(db)
	answerRepo := repository.NewAnswerDatabaseAdapter(db)
	scoreRepo := repository.NewScoreDatabaseAdapter(db)
	interpRepo := repository.NewInterpretationDatabaseAdapter(db)
	userRepo := repository.NewUserDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// The section catalog must exist before any attempt can start.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrap.SeedSections(seedCtx, sectionRepo, txManager); err != nil {
		cancelSeed()
		appLogger.Fatal("Failed to seed sections", zap.Error(err))
	}
	cancelSeed()

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT.SecretKey)
	assignmentService := service.NewAssignmentService(questionRepo, assignmentRepo, attemptRepo)
	sectionService := service.NewSectionService(sectionRepo, progressRepo, attemptRepo,
		assignmentService, cacheAdapter, cfg.Cache.SectionListTTL)
	submissionService := service.NewSubmissionService(sectionRepo, questionRepo, assignmentRepo,
		progressRepo, answerRepo, attemptRepo, txManager)
	scoringService := service.NewScoringService(answerRepo, questionRepo, sectionRepo, scoreRepo, txManager)
	interpretationService := service.NewInterpretationService(attemptRepo, scoreRepo, interpRepo,
		narrativeGenerator, cacheAdapter, cfg.Cache.InterpretationTTL)
	attemptService := service.NewAttemptService(attemptRepo, sectionRepo, questionRepo,
		assignmentRepo, progressRepo, answerRepo, scoringService, interpretationService)
	adminService := service.NewAdminService(questionRepo, attemptRepo, assignmentRepo,
		progressRepo, answerRepo, scoreRepo, interpRepo, txManager)

	// Handlers
	testHandler := handler.NewTestHandler(attemptService, sectionService, submissionService, interpretationService)
	adminHandler := handler.NewAdminHandler(adminService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	testGroup := apiGroup.Group("/test", middleware.Protected(authService))
	testGroup.Post("/start", testHandler.StartTest)
	testGroup.Get("/sections", testHandler.GetSections)
	testGroup.Get("/sections/:sectionId/questions", testHandler.GetSectionQuestions)
	testGroup.Post("/sections/:sectionId/start", testHandler.StartSection)
	testGroup.Post("/sections/:sectionId/pause", testHandler.PauseSection)
	testGroup.Post("/sections/:sectionId/resume", testHandler.ResumeSection)
	testGroup.Get("/sections/:sectionId/timer", testHandler.GetSectionTimer)
	testGroup.Post("/sections/:sectionId/submit", testHandler.SubmitSection)
	testGroup.Post("/save-answer", testHandler.SaveAnswer)
	testGroup.Get("/interpretation/:attemptId", testHandler.GetInterpretation)
	testGroup.Post("/:attemptId/complete", testHandler.CompleteTest)
	testGroup.Get("/:attemptId/state", testHandler.GetState)
	testGroup.Get("/:attemptId/progress", testHandler.GetProgress)
	testGroup.Get("/:attemptId/status", testHandler.GetStatus)

	adminGroup := apiGroup.Group("/admin",
		middleware.Protected(authService), middleware.RequireRole(domain.RoleAdmin))
	adminGroup.Post("/questions", adminHandler.CreateQuestion)
	adminGroup.Post("/questions/bulk-approve", adminHandler.BulkApprove)
	adminGroup.Post("/students/:studentId/allow-retake", adminHandler.AllowRetake)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		appLogger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}
