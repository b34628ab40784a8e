package quota

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naywayne90/arti-key-web/internal/domain"
	"github.com/naywayne90/arti-key-web/internal/middleware"
	"github.com/naywayne90/arti-key-web/internal/shared/apperror"
	"github.com/naywayne90/arti-key-web/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("quota.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("quota request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year == 0 {
		return time.Now().UTC().Year()
	}
	return year
}

// GetBalances returns all ledger entries for an employee/year. Employees may
// only read their own ledger; dgpec and dg may read anyone's.
func (h *Handler) GetBalances(c *gin.Context) {
	employeeID := c.Param("employeeId")
	actor := middleware.GetActor(c)

	if actor.Role == domain.RoleEmployee || actor.Role == domain.RoleManager {
		if employeeID != actor.EmployeeID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"you may only read your own leave balance", nil)
			return
		}
	}

	resp, err := h.service.ListBalances(c.Request.Context(), employeeID, h.yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Adjust(c *gin.Context) {
	var req AdjustQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http adjust quota validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListAdjustments(c *gin.Context) {
	resp, err := h.service.ListAdjustments(c.Request.Context(), c.Param("employeeId"), h.yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
