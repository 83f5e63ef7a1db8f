package company

import (
	"github.com/AlexKolonitsky/mifort-timesheet/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	companies.Use(middleware.ContextLogger(logger))
	{
		companies.GET("/default",
			middleware.RateLimitByUser(3, 10),
			handler.GetDefaults,
		)

		companies.GET("/my",
			middleware.RateLimitByUser(3, 10),
			handler.GetOwn,
		)

		companies.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)

		companies.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		companies.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware("OWNER", "MANAGER"),
			handler.Update,
		)
	}
}
