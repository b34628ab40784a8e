package quota

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
	quotas := r.Group("/quotas")
	quotas.Use(middleware.AuthMiddleware())
	{
		quotas.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "quota", "read"), handler.GetBalances)
		quotas.GET("/:employeeId/adjustments", middleware.RBACAuthorize(rbacService, "quota", "read_all"), handler.ListAdjustments)
		quotas.POST("/adjustments", middleware.RBACAuthorize(rbacService, "quota", "adjust"), handler.Adjust)
	}
}
