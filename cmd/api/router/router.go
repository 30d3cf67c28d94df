package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"idea-lab/cmd/api/auth"
	"idea-lab/cmd/api/handlers"
	"idea-lab/cmd/api/middleware"
	"idea-lab/cmd/api/services"
	_ "idea-lab/docs"
)

// Deps 는 라우터가 필요로 하는 서비스 묶음이다.
type Deps struct {
	IdeaPlans *services.IdeaPlanService
	Plans     *services.PlanService
	MindMaps  *services.MindMapService
	Research  *services.ResearchService
	Tokens    auth.TokenParser
	Store     handlers.Pinger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler(d.Store))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/ideas/plans", handlers.GenerateIdeaPlansHandler(d.IdeaPlans, d.Tokens))
		api.POST("/ideas/mindmap", handlers.ExpandMindMapHandler(d.MindMaps, d.Tokens))
		api.POST("/ideas/research", handlers.ResearchSummaryHandler(d.Research, d.Tokens))

		api.GET("/plans", handlers.ListMyPlansHandler(d.Plans, d.Tokens))
		api.GET("/plans/:id", handlers.GetPlanHandler(d.Plans))
		api.DELETE("/plans/:id", handlers.DeletePlanHandler(d.Plans, d.Tokens))
	}

	return r
}
