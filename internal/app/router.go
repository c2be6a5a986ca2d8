package app

import (
	"code_arena_backend/internal/config"
	"code_arena_backend/internal/middleware"
	"code_arena_backend/internal/model"
	"code_arena_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/time", c.time.ServerTime)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// 挑战参与
		authGroup.GET("/challenges", c.challenge.List)
		authGroup.GET("/challenges/:id", c.challenge.Get)
		authGroup.POST("/challenges/join", c.challenge.Join)
		authGroup.POST("/challenges/:id/end", c.challenge.End)
		authGroup.GET("/challenges/:id/progress", c.challenge.Progress)
		authGroup.GET("/challenges/:id/leaderboard", c.challenge.Leaderboard)
		authGroup.POST("/challenges/:id/penalty", c.challenge.Penalty)
		authGroup.POST("/challenges/:id/hint", c.challenge.Hint)

		// 题目
		authGroup.GET("/questions", c.question.List)
		authGroup.GET("/questions/:id", c.question.Get)

		// 代码提交
		authGroup.POST("/submissions", c.submission.Submit)
		authGroup.POST("/submissions/run", c.submission.Run)
		authGroup.GET("/submissions", c.submission.ListMine)
		authGroup.GET("/submissions/question", c.submission.ListForQuestion)
		authGroup.GET("/submissions/:id", c.submission.Get)

		// 测验
		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.GET("/quizzes/:id/questions", c.quiz.ListQuestions)
		authGroup.GET("/quizzes/:id/leaderboard", c.quiz.Leaderboard)

		// 测验答题
		authGroup.POST("/quizzes/:id/submissions", c.quizSubmission.Initialize)
		authGroup.POST("/quizzes/:id/submissions/answer", c.quizSubmission.SubmitAnswer)
		authGroup.POST("/quizzes/:id/submissions/answers", c.quizSubmission.SubmitAnswers)
		authGroup.GET("/quizzes/:id/submissions/me", c.quizSubmission.GetMine)
	}

	// 3. 管理员接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		adminGroup.POST("/challenges", c.challenge.Create)
		adminGroup.PUT("/challenges/:id", c.challenge.Update)
		adminGroup.DELETE("/challenges/:id", c.challenge.Delete)
		adminGroup.POST("/challenges/:id/questions/:questionId", c.challenge.AddQuestion)
		adminGroup.DELETE("/challenges/:id/questions/:questionId", c.challenge.RemoveQuestion)
		adminGroup.POST("/challenges/:id/leaderboard/rebuild", c.challenge.RebuildLeaderboard)

		adminGroup.POST("/questions", c.question.Create)
		adminGroup.GET("/questions/:id", c.question.GetFull)
		adminGroup.PUT("/questions/:id", c.question.Update)
		adminGroup.DELETE("/questions/:id", c.question.Delete)
		adminGroup.POST("/questions/:id/testcases", c.question.AddTestCase)
		adminGroup.PUT("/testcases/:tcId", c.question.UpdateTestCase)
		adminGroup.DELETE("/testcases/:tcId", c.question.DeleteTestCase)

		adminGroup.POST("/quizzes", c.quiz.Create)
		adminGroup.PUT("/quizzes/:id", c.quiz.Update)
		adminGroup.DELETE("/quizzes/:id", c.quiz.Delete)
		adminGroup.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		adminGroup.PUT("/quiz-questions/:qid", c.quiz.UpdateQuestion)
		adminGroup.DELETE("/quiz-questions/:qid", c.quiz.DeleteQuestion)
		adminGroup.GET("/quizzes/:id/analytics", c.quiz.Analytics)

		adminGroup.DELETE("/submissions/:id", c.submission.Delete)
	}
}
