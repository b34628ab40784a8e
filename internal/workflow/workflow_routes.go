package workflow

import (
	"github.com/gin-gonic/gin"

	"github.com/naywayne90/arti-key-web/internal/middleware"
	"github.com/naywayne90/arti-key-web/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	requests := r.Group("/leave-requests/:id/workflow")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("/transitions", middleware.RBACAuthorize(rbacService, "workflow", "transition"), handler.Transition)
		requests.GET("/history", middleware.RBACAuthorize(rbacService, "workflow", "read"), handler.History)
		requests.GET("/state", middleware.RBACAuthorize(rbacService, "workflow", "read"), handler.State)
	}
}
