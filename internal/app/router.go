package app

import (
	"vocab_edu_backend/docs"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/middleware"
	"vocab_edu_backend/internal/model"

	"vocab_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生/通用 授权接口
		a.registerStudentRoutes(authGroup, c)

		// 教师相关接口
		a.registerTeacherRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)

		// 游客可预览，登录用户额外拿到加入状态
		public.GET("/classes/preview", middleware.TryAuthMiddleware(cfg), c.clazz.PreviewClazz)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 班级
	rg.GET("/classes", c.clazz.ListClazzes)
	rg.POST("/classes/join", c.clazz.JoinClazz)
	rg.POST("/classes/:id/leave", c.clazz.LeaveClazz)
	rg.GET("/classes/:id/members", c.clazz.ListMembers)
	rg.GET("/classes/:id/homeworks", c.homework.ListClassHomework)

	// 测验作答
	rg.POST("/quizzes/join", c.quiz.JoinQuiz)
	rg.GET("/quizzes/:id/vocabularies", c.quiz.GetQuizVocabularies)
	rg.GET("/quizzes/:id/my-result", c.quiz.GetMyResult)
	rg.POST("/quizzes/answers", c.quiz.SubmitAnswer)
	rg.POST("/quizzes/results/:resultId/finish", c.quiz.FinishResult)

	// 作业
	rg.GET("/homeworks/:id", c.homework.GetHomework)
	rg.POST("/homeworks/:id/progress", c.homework.ReportProgress)
	rg.POST("/homeworks/:id/retry", c.homework.RetryHomework)
	rg.POST("/homeworks/:id/submit", c.homework.SubmitHomework)
	rg.GET("/homeworks/:id/attempts", c.homework.ListMyAttempts)
	rg.GET("/homeworks/submissions/:submissionId", c.homework.GetSubmission)
	rg.POST("/homeworks/audio/upload", c.homework.UploadAudio)

	// AI 辅助
	rg.POST("/ai/translate", c.ai.Translate)
	rg.POST("/ai/example", c.ai.GenerateExample)
	rg.POST("/ai/tts", c.ai.Synthesize)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		// 班级管理
		teacher.POST("/classes", c.clazz.CreateClazz)
		teacher.PUT("/classes/:id", c.clazz.UpdateClazz)
		teacher.DELETE("/classes/:id", c.clazz.DeleteClazz)
		teacher.DELETE("/classes/:id/members/:userId", c.clazz.RemoveMember)
		teacher.GET("/classes/:id/quizzes", c.quiz.ListClassQuizzes)

		// 词库管理
		teacher.POST("/folders", c.vocabulary.CreateFolder)
		teacher.GET("/folders", c.vocabulary.ListFolders)
		teacher.PUT("/folders/:id", c.vocabulary.UpdateFolder)
		teacher.DELETE("/folders/:id", c.vocabulary.DeleteFolder)
		teacher.POST("/folders/:id/vocabularies", c.vocabulary.AddVocabulary)
		teacher.GET("/folders/:id/vocabularies", c.vocabulary.ListVocabularies)
		teacher.PUT("/vocabularies/:vocabId", c.vocabulary.UpdateVocabulary)
		teacher.DELETE("/vocabularies/:vocabId", c.vocabulary.DeleteVocabulary)

		// 测验管理
		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.POST("/quizzes/:id/start", c.quiz.StartQuiz)
		teacher.POST("/quizzes/:id/pause", c.quiz.PauseQuiz)
		teacher.POST("/quizzes/:id/resume", c.quiz.ResumeQuiz)
		teacher.POST("/quizzes/:id/end", c.quiz.EndQuiz)
		teacher.GET("/quizzes/:id/results", c.quiz.ListResults)
		teacher.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		// 作业管理
		teacher.POST("/homeworks", c.homework.CreateHomework)
		teacher.PUT("/homeworks/:id", c.homework.UpdateHomework)
		teacher.DELETE("/homeworks/:id", c.homework.DeleteHomework)
		teacher.GET("/homeworks/:id/submissions", c.homework.ListSubmissions)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 1. 用户列表和详情：允许管理员和老师访问
		admin.GET("/users", middleware.RoleMiddleware(model.Admin, model.Teacher), c.user.GetUsers)
		admin.GET("/users/:id", middleware.RoleMiddleware(model.Admin, model.Teacher), c.user.GetUser)

		// 2. 其他所有接口：仅限管理员访问
		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminOnly.PUT("/users/:id", c.user.UpdateUser)
			adminOnly.DELETE("/users/:id", c.user.DeleteUser)
			adminOnly.POST("/users/:id/reset-password", c.user.ResetPassword)
			adminOnly.POST("/users/:id/disable", c.user.DisableUser)
		}
	}
}
