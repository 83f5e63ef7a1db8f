package user

import (
	"github.com/AlexKolonitsky/mifort-timesheet/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)
	}
}
