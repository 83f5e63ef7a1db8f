package app

import (
	"os"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

// BuildApp connects the infrastructure and registers all modules and routes
// on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, rdb)
}
