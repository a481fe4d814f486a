package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/bakeplan/pkg/application/services/production"
	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
)

// NewRouter wires every route onto a gin engine
func NewRouter(service *production.Service, planning config.PlanningConfig, logger *logging.Logger) *gin.Engine {
	if logger == nil {
		logger = logging.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger.WithComponent("http")))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	controller := NewProductionController(service, planning)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/plans", controller.CreatePlan)
		v1.GET("/productions", controller.ListProductions)
		v1.GET("/productions/:id", controller.GetProduction)
		v1.POST("/productions/:id/revalidate", controller.Revalidate)
		v1.POST("/productions/:id/cancel", controller.Cancel)
		v1.POST("/productions/:id/complete", controller.Complete)
	}

	return router
}

func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		logger.Info("request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
