package app

import (
	"database/sql"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/company"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/messaging/kafka"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/middleware"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/project"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Background collaborators ---
	inviteNotifier := user.NewOutboxInviteNotifier(outboxRepo)
	provisioner := user.NewProvisioner(userRepo, inviteNotifier, logger)

	// --- Services ---
	companyService := company.NewService(companyRepo, projectRepo, provisioner, rdb, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	projectHandler := project.NewHandler(projectRepo, logger)
	userHandler := user.NewHandler(userRepo, logger)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, rdb, logger)
		project.RegisterRoutes(api, projectHandler, logger)
		user.RegisterRoutes(api, userHandler, logger)
	}

	return nil
}
