package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"licentra/internal/common"
	"licentra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bearerToken pulls the credential out of the Authorization header. Tenant keys
// and the admin key share this shape but are checked against different stores.
func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}
	return token, true
}

// TenantAuth resolves a tenant API key and puts the tenant on the request context.
func TenantAuth(apiKeySvc services.APIKeyService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return common.RespondError(c, common.ErrUnauthorized)
			}

			key, err := apiKeySvc.Authenticate(c.Request().Context(), token)
			if err != nil {
				return common.RespondError(c, err)
			}

			ctx := context.WithValue(c.Request().Context(), common.TenantIDKey, key.TenantID)
			ctx = context.WithValue(ctx, common.APIKeyIDKey, key.ID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// AdminAuth checks the platform admin key. The comparison hashes both sides first,
// so a wrong-length value costs the same as a wrong value of the right length and
// failure timing leaks nothing about the configured key.
func AdminAuth(adminKey string) echo.MiddlewareFunc {
	configured := sha256.Sum256([]byte(adminKey))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if adminKey == "" {
				// Startup validation makes this unreachable; if it happens anyway it
				// is a configuration fault, not an auth failure.
				return c.JSON(http.StatusInternalServerError, common.Response{Success: false, Error: "admin key is not configured"})
			}

			token, ok := bearerToken(c)
			if !ok {
				return common.RespondError(c, common.ErrUnauthorized)
			}

			presented := sha256.Sum256([]byte(token))
			if subtle.ConstantTimeCompare(presented[:], configured[:]) != 1 {
				return common.RespondError(c, common.ErrUnauthorized)
			}

			ctx := context.WithValue(c.Request().Context(), common.AdminKey, true)

			// Admin requests name their tenant explicitly; tenant-scoped handlers
			// reject requests without it.
			if header := c.Request().Header.Get("X-Tenant-ID"); header != "" {
				tenantID, err := uuid.Parse(header)
				if err != nil {
					return common.RespondValidationError(c, "invalid X-Tenant-ID header")
				}
				ctx = context.WithValue(ctx, common.TenantIDKey, tenantID)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
