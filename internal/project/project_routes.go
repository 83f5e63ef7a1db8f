package project

import (
	"github.com/AlexKolonitsky/mifort-timesheet/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	projects.Use(middleware.ContextLogger(logger))
	{
		projects.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)
	}
}
