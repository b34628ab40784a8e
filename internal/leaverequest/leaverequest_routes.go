package leaverequest

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/naywayne90/arti-key-web/internal/middleware"
	"github.com/naywayne90/arti-key-web/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(redisClient),
			handler.Create,
		)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.List)
		requests.GET("/statistics", middleware.RBACAuthorize(rbacService, "stats", "read"), handler.Statistics)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
	}
}
