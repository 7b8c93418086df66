package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"licentra/internal/common"
	"licentra/internal/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimit admits requests per tenant and stamps the rate-limit headers on every
// tenant-scoped response. Runs after TenantAuth.
func RateLimit(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			tenantID, ok := common.GetTenantIDFromContext(ctx)
			if !ok {
				return common.RespondError(c, common.ErrUnauthorized)
			}

			result, err := limiter.Allow(ctx, tenantID)
			if err != nil {
				return common.RespondError(c, fmt.Errorf("%w: rate limiter: %v", common.ErrInternal, err))
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
			header.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
			header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter(time.Now()).Seconds()))
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success":    false,
					"error":      "Rate limit exceeded, retry later",
					"retryAfter": retryAfter,
				})
			}

			return next(c)
		}
	}
}
