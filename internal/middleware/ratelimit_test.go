package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"licentra/internal/common"
	"licentra/internal/ratelimit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func performLimited(t *testing.T, limiter ratelimit.Limiter, tenantID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	ctx := context.WithValue(req.Context(), common.TenantIDKey, tenantID)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RateLimit(limiter)(okHandler)
	_ = handler(c)
	return rec
}

func TestRateLimit_SetsHeaders(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(5, time.Minute)
	tenantID := uuid.New()

	rec := performLimited(t, limiter, tenantID)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	tenantID := uuid.New()

	assert.Equal(t, http.StatusOK, performLimited(t, limiter, tenantID).Code)
	assert.Equal(t, http.StatusOK, performLimited(t, limiter, tenantID).Code)

	rec := performLimited(t, limiter, tenantID)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	retryAfter, ok := body["retryAfter"].(float64)
	assert.True(t, ok)
	assert.LessOrEqual(t, retryAfter, float64(60))
	assert.GreaterOrEqual(t, retryAfter, float64(0))
}

func TestRateLimit_OtherTenantUnaffected(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute)

	first := uuid.New()
	assert.Equal(t, http.StatusOK, performLimited(t, limiter, first).Code)
	assert.Equal(t, http.StatusTooManyRequests, performLimited(t, limiter, first).Code)

	assert.Equal(t, http.StatusOK, performLimited(t, limiter, uuid.New()).Code)
}

func TestRateLimit_NoTenantOnContext(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RateLimit(limiter)(okHandler)
	_ = handler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
