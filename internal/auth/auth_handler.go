package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naywayne90/arti-key-web/internal/shared/apperror"
	"github.com/naywayne90/arti-key-web/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Me echoes the identity asserted by the auth middleware.
func (h *Handler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, UserProfile{
		UserID:      c.GetString("user_id"),
		EmployeeID:  c.GetString("employee_id"),
		DisplayName: c.GetString("display_name"),
		Role:        c.GetString("role"),
		Department:  c.GetString("department"),
	}, nil)
}
