package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code_arena_backend/internal/config"
	"code_arena_backend/internal/controller"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/service"
	"code_arena_backend/pkg/database"
	"code_arena_backend/pkg/logger"
	"code_arena_backend/pkg/monitoring"
	"code_arena_backend/pkg/security"
	"code_arena_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	question       *repository.QuestionRepository
	challenge      *repository.ChallengeRepository
	submission     *repository.SubmissionRepository
	progress       *repository.ProgressRepository
	leaderboard    *repository.LeaderboardRepository
	quiz           *repository.QuizRepository
	quizSubmission *repository.QuizSubmissionRepository
}

type services struct {
	executor       *service.ExecutorService
	submission     *service.SubmissionService
	challenge      *service.ChallengeService
	question       *service.QuestionService
	quiz           *service.QuizService
	quizSubmission *service.QuizSubmissionService
}

type controllers struct {
	submission     *controller.SubmissionController
	challenge      *controller.ChallengeController
	question       *controller.QuestionController
	quiz           *controller.QuizController
	quizSubmission *controller.QuizSubmissionController
	health         *controller.HealthController
	time           *controller.TimeController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question:       repository.NewQuestionRepository(db),
		challenge:      repository.NewChallengeRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		progress:       repository.NewProgressRepository(db),
		leaderboard:    repository.NewLeaderboardRepository(db),
		quiz:           repository.NewQuizRepository(db),
		quizSubmission: repository.NewQuizSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.executor = service.NewExecutorService(cfg, logger.Log)
	s.submission = service.NewSubmissionService(
		repos.submission,
		repos.challenge,
		repos.question,
		repos.progress,
		s.executor,
		logger.Log,
	)
	s.challenge = service.NewChallengeService(
		repos.challenge,
		repos.question,
		repos.progress,
		repos.leaderboard,
		rdb,
		logger.Log,
	)
	s.question = service.NewQuestionService(repos.question)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizSubmission, repos.leaderboard)
	s.quizSubmission = service.NewQuizSubmissionService(repos.quiz, repos.quizSubmission, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		submission:     controller.NewSubmissionController(s.submission),
		challenge:      controller.NewChallengeController(s.challenge),
		question:       controller.NewQuestionController(s.question),
		quiz:           controller.NewQuizController(s.quiz),
		quizSubmission: controller.NewQuizSubmissionController(s.quizSubmission),
		health:         controller.NewHealthController(db),
		time:           controller.NewTimeController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("code-arena", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
