package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.GetAll)
		holidays.GET("/working-days", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.WorkingDays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Create)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Delete)
	}
}
