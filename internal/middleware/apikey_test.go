package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"licentra/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func performAdmin(adminKey, authHeader, tenantHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if tenantHeader != "" {
		req.Header.Set("X-Tenant-ID", tenantHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AdminAuth(adminKey)(okHandler)
	_ = handler(c)
	return rec
}

func TestAdminAuth_CorrectKey(t *testing.T) {
	rec := performAdmin("super-secret", "Bearer super-secret", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAuth_WrongKey(t *testing.T) {
	rec := performAdmin("super-secret", "Bearer wrong", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_WrongLengthKey(t *testing.T) {
	// A key of a different length must fail exactly like a wrong key of the
	// right length.
	rec := performAdmin("super-secret", "Bearer super-secret-but-longer-than-configured", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	rec := performAdmin("super-secret", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_NotBearer(t *testing.T) {
	rec := performAdmin("super-secret", "Basic super-secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_EmptyConfiguredKey(t *testing.T) {
	rec := performAdmin("", "Bearer anything", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdminAuth_TenantHeaderScopesContext(t *testing.T) {
	tenantID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Authorization", "Bearer super-secret")
	req.Header.Set("X-Tenant-ID", tenantID.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenTenant uuid.UUID
	handler := AdminAuth("super-secret")(func(c echo.Context) error {
		seenTenant, _ = common.GetTenantIDFromContext(c.Request().Context())
		assert.True(t, common.IsAdminContext(c.Request().Context()))
		return c.String(http.StatusOK, "ok")
	})
	assert.NoError(t, handler(c))
	assert.Equal(t, tenantID, seenTenant)
}

func TestAdminAuth_MalformedTenantHeader(t *testing.T) {
	rec := performAdmin("super-secret", "Bearer super-secret", "not-a-uuid")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
