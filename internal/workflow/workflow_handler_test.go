package workflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/naywayne90/arti-key-web/internal/domain"
	quotaerrors "github.com/naywayne90/arti-key-web/internal/quota/errors"
	"github.com/naywayne90/arti-key-web/internal/workflow"
	workflowerrors "github.com/naywayne90/arti-key-web/internal/workflow/errors"
)

type fakeService struct {
	transitionFn func(ctx context.Context, actor domain.Actor, requestID string, req workflow.TransitionRequest) (workflow.TransitionResponse, error)
	historyFn    func(ctx context.Context, actor domain.Actor, requestID string) ([]workflow.WorkflowLogResponse, error)
	stateFn      func(ctx context.Context, actor domain.Actor, requestID string) (workflow.StateResponse, error)
}

func (f *fakeService) Transition(ctx context.Context, actor domain.Actor, requestID string, req workflow.TransitionRequest) (workflow.TransitionResponse, error) {
	return f.transitionFn(ctx, actor, requestID, req)
}
func (f *fakeService) History(ctx context.Context, actor domain.Actor, requestID string) ([]workflow.WorkflowLogResponse, error) {
	return f.historyFn(ctx, actor, requestID)
}
func (f *fakeService) State(ctx context.Context, actor domain.Actor, requestID string) (workflow.StateResponse, error) {
	return f.stateFn(ctx, actor, requestID)
}

func authedContext(w *httptest.ResponseRecorder, role, requestID string) (*gin.Context, *gin.Engine) {
	c, r := gin.CreateTestContext(w)
	c.Set("user_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	c.Set("display_name", "Mariam Koné")
	c.Set("role", role)
	c.Set("department", "RH")
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	return c, r
}

func TestHandler_Transition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	requestID := uuid.NewString()

	svc := &fakeService{
		transitionFn: func(ctx context.Context, actor domain.Actor, id string, req workflow.TransitionRequest) (workflow.TransitionResponse, error) {
			assert.Equal(t, requestID, id)
			assert.Equal(t, domain.RoleDGPEC, actor.Role)
			assert.Equal(t, domain.ActionDGPECApproval, req.Action)
			return workflow.TransitionResponse{
				RequestID:  id,
				Action:     req.Action,
				FromStatus: domain.StatusPendingDGPEC,
				ToStatus:   domain.StatusPendingDG,
			}, nil
		},
	}

	h := workflow.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, domain.RoleDGPEC, requestID)
	body := `{"action":"dgpec_approval","nonce":"` + uuid.NewString() + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/"+requestID+"/workflow/transitions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Transition(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), `"PENDING_DG"`)
}

func TestHandler_Transition_MissingNonce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		transitionFn: func(ctx context.Context, actor domain.Actor, id string, req workflow.TransitionRequest) (workflow.TransitionResponse, error) {
			t.Fatal("service should not be reached on a bind error")
			return workflow.TransitionResponse{}, nil
		},
	}

	h := workflow.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, domain.RoleDGPEC, uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"action":"dgpec_approval"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Transition(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_Transition_QuotaExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		transitionFn: func(ctx context.Context, actor domain.Actor, id string, req workflow.TransitionRequest) (workflow.TransitionResponse, error) {
			return workflow.TransitionResponse{}, quotaerrors.ErrQuotaExceeded.WithDetails(map[string]any{
				"remaining_days": 3,
				"requested_days": 5,
			})
		},
	}

	h := workflow.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, domain.RoleDGPEC, uuid.NewString())
	body := `{"action":"dgpec_approval","nonce":"` + uuid.NewString() + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Transition(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"QUOTA_EXCEEDED"`)
	assert.Contains(t, w.Body.String(), `"remaining_days":3`)
}

func TestHandler_History_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		historyFn: func(ctx context.Context, actor domain.Actor, id string) ([]workflow.WorkflowLogResponse, error) {
			return nil, workflowerrors.ErrHistoryNotVisible
		},
	}

	h := workflow.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, domain.RoleEmployee, uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	h.History(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"FORBIDDEN"`)
}

func TestHandler_State(t *testing.T) {
	gin.SetMode(gin.TestMode)
	requestID := uuid.NewString()

	svc := &fakeService{
		stateFn: func(ctx context.Context, actor domain.Actor, id string) (workflow.StateResponse, error) {
			return workflow.StateResponse{
				RequestID:     id,
				DerivedStatus: domain.StatusPendingDG,
				CachedStatus:  domain.StatusPendingDG,
			}, nil
		},
	}

	h := workflow.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := authedContext(w, domain.RoleDG, requestID)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	h.State(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"derived_status":"PENDING_DG"`)
}
