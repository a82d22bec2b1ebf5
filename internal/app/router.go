package app

import (
	"lms_authoring_backend/docs"
	"lms_authoring_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	// 1. 出题
	a.registerAuthoringRoutes(api, c)

	// 2. 评估目录与学习者预览
	a.registerAssessmentRoutes(api, c)

	// 3. 评分与辩论
	a.registerScoringRoutes(api, c)

	// 4. 考勤
	a.registerAttendanceRoutes(api, c)
}

func (a *App) registerAuthoringRoutes(rg *gin.RouterGroup, c *controllers) {
	sessions := rg.Group("/authoring/sessions")
	{
		sessions.POST("", c.authoring.CreateSession)
		sessions.GET("/:id", c.authoring.GetSession)
		sessions.DELETE("/:id", c.authoring.DiscardSession)
		sessions.PUT("/:id/details", c.authoring.UpdateDetails)
		sessions.POST("/:id/continue", c.authoring.ContinueToQuestions)
		sessions.POST("/:id/back", c.authoring.BackToDetails)

		sessions.PATCH("/:id/draft", c.authoring.UpdateDraft)
		sessions.POST("/:id/draft/options", c.authoring.AddOption)
		sessions.PUT("/:id/draft/options/:index", c.authoring.UpdateOption)
		sessions.DELETE("/:id/draft/options/:index", c.authoring.RemoveOption)

		sessions.POST("/:id/questions", c.authoring.AddQuestion)
		sessions.DELETE("/:id/questions/:questionId", c.authoring.DeleteQuestion)

		sessions.POST("/:id/save", c.authoring.SaveAsDraft)
		sessions.POST("/:id/publish", c.authoring.Publish)
	}
}

func (a *App) registerAssessmentRoutes(rg *gin.RouterGroup, c *controllers) {
	assessments := rg.Group("/assessments")
	{
		assessments.GET("", c.assessment.List)
		assessments.POST("/import", c.assessment.Import)
		assessments.GET("/:id", c.assessment.Get)
		assessments.DELETE("/:id", c.assessment.Delete)
		assessments.GET("/:id/export", c.assessment.Export)
		assessments.POST("/:id/edit", c.authoring.OpenSession)
		assessments.POST("/:id/previews", c.preview.Create)
	}

	previews := rg.Group("/previews")
	{
		previews.GET("/:id", c.preview.View)
		previews.DELETE("/:id", c.preview.Discard)
		previews.POST("/:id/start", c.preview.Start)
		previews.PUT("/:id/answers", c.preview.Answer)
		previews.POST("/:id/next", c.preview.Next)
		previews.POST("/:id/previous", c.preview.Previous)
		previews.POST("/:id/submit", c.preview.Submit)
	}
}

func (a *App) registerScoringRoutes(rg *gin.RouterGroup, c *controllers) {
	submissions := rg.Group("/submissions")
	{
		submissions.POST("", c.submission.Create)
		submissions.GET("", c.submission.List)
		submissions.GET("/analytics", c.submission.Analytics)
		submissions.GET("/:id", c.submission.Get)
		submissions.DELETE("/:id", c.submission.Delete)
		submissions.PUT("/:id/score", c.submission.Score)
	}

	debates := rg.Group("/debates")
	{
		debates.POST("", c.debate.Create)
		debates.GET("", c.debate.List)
		debates.GET("/:id", c.debate.Get)
		debates.POST("/:id/participants", c.debate.AddParticipant)
		debates.PUT("/:id/participants/:userId/team", c.debate.AssignTeam)
		debates.GET("/:id/analytics", c.debate.Analytics)
	}
}

func (a *App) registerAttendanceRoutes(rg *gin.RouterGroup, c *controllers) {
	attendance := rg.Group("/attendance")
	{
		attendance.POST("/students", c.attendance.AddStudent)
		attendance.GET("/students", c.attendance.ListStudents)
		attendance.PUT("/records", c.attendance.Mark)
		attendance.GET("/records", c.attendance.List)
		attendance.GET("/summary", c.attendance.Summary)
		attendance.GET("/export", c.attendance.Export)
	}
}
