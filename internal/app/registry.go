package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/naywayne90/arti-key-web/internal/auth"
	"github.com/naywayne90/arti-key-web/internal/employee"
	"github.com/naywayne90/arti-key-web/internal/holiday"
	"github.com/naywayne90/arti-key-web/internal/leaverequest"
	"github.com/naywayne90/arti-key-web/internal/messaging/kafka"
	"github.com/naywayne90/arti-key-web/internal/middleware"
	"github.com/naywayne90/arti-key-web/internal/notification"
	"github.com/naywayne90/arti-key-web/internal/quota"
	"github.com/naywayne90/arti-key-web/internal/rbac"
	"github.com/naywayne90/arti-key-web/internal/rbac/infra"
	"github.com/naywayne90/arti-key-web/internal/workflow"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leaverequest.NewRepository(gormDB)
	workflowRepo := workflow.NewRepository(gormDB)
	quotaRepo := quota.NewRepository(db)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewService(employeeRepo)
	holidayService := holiday.NewService(holidayRepo)
	quotaService := quota.NewService(db, quotaRepo)
	workflowService := workflow.NewService(db, workflowRepo, leaveRepo, quotaRepo, outboxRepo)
	leaveService := leaverequest.NewService(db, leaveRepo, holidayService, workflowService)
	notificationService := notification.NewService(notificationRepo, employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	quotaHandler := quota.NewHandler(quotaService)
	workflowHandler := workflow.NewHandler(workflowService)
	leaveHandler := leaverequest.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(50, 100))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		quota.RegisterRoutes(api, quotaHandler, rbacService)
		leaverequest.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		workflow.RegisterRoutes(api, workflowHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
