package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studyforge/studyforge-backend/internal/handlers"
)

type RouterConfig struct {
	ContentHandler *handlers.ContentHandler
	TopicsHandler  *handlers.TopicsHandler
	ExportDir      string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Rendered artifacts are served straight from the exports directory;
	// download URLs are always /exports/<basename>.
	router.Static("/exports", cfg.ExportDir)

	api := router.Group("/api")
	{
		api.POST("/content/generate", cfg.ContentHandler.Generate)
		api.POST("/content/export", cfg.ContentHandler.Export)
		api.GET("/content/models", cfg.ContentHandler.ListModels)

		api.GET("/topics", cfg.TopicsHandler.List)
		api.GET("/topics/stats/overview", cfg.TopicsHandler.Stats)
		api.GET("/topics/:id", cfg.TopicsHandler.Get)
		api.DELETE("/topics/:id", cfg.TopicsHandler.Delete)
	}

	return router
}
