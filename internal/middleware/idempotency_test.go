package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/naywayne90/arti-key-web/internal/middleware"
)

func TestIdempotency_FirstRequestTakesLock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	userID := uuid.NewString()
	key := uuid.NewString()

	cacheKey := "idemp:/leave-requests:" + userID + ":" + key
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	r := gin.New()
	r.POST("/leave-requests", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", key)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplayWhileInFlightConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	userID := uuid.NewString()
	key := uuid.NewString()

	cacheKey := "idemp:/leave-requests:" + userID + ":" + key
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	handlerHit := false
	r := gin.New()
	r.POST("/leave-requests", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerHit = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", key)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.False(t, handlerHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_CachedResponseReplayed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()
	userID := uuid.NewString()
	key := uuid.NewString()

	cacheKey := "idemp:/leave-requests:" + userID + ":" + key
	mock.ExpectGet(cacheKey).SetVal(`{"id":"abc"}`)

	handlerHit := false
	r := gin.New()
	r.POST("/leave-requests", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, middleware.Idempotency(rdb), func(c *gin.Context) {
		handlerHit = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", key)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"abc"`)
	assert.False(t, handlerHit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/leave-requests", middleware.Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
