package app

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naywayne90/arti-key-web/internal/auth"
	"github.com/naywayne90/arti-key-web/internal/employee"
	"github.com/naywayne90/arti-key-web/internal/holiday"
	"github.com/naywayne90/arti-key-web/internal/leaverequest"
	"github.com/naywayne90/arti-key-web/internal/notification"
	"github.com/naywayne90/arti-key-web/internal/quota"
	"github.com/naywayne90/arti-key-web/internal/shared/connection"
	"github.com/naywayne90/arti-key-web/internal/workflow"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, redisClient)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&auth.UserAccount{},
		&holiday.Holiday{},
		&leaverequest.LeaveRequest{},
		&leaverequest.LeaveAttachment{},
		&workflow.WorkflowLog{},
		&quota.QuotaLedger{},
		&quota.QuotaAdjustmentLog{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	// The outbox is written through raw SQL only, no model to migrate.
	outboxDDL := `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id UUID,
	aggregate_type VARCHAR(40) NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type VARCHAR(80) NOT NULL,
	topic VARCHAR(120) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(10) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
	ON outbox_events (status, next_retry_at);
`
	if err := gormDB.Exec(outboxDDL).Error; err != nil {
		return err
	}

	holidayRepo := holiday.NewRepository(gormDB)
	holidayService := holiday.NewService(holidayRepo)
	return holidayService.SeedDefaults(context.Background())
}
