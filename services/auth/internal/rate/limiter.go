// Package rate limits credential-guessing endpoints. Both backends implement
// a fixed window per key; keys are client IPs.
package rate

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed, and
	// if not, how long until the window resets.
	Allow(ctx context.Context, key string, now time.Time) (bool, time.Duration, error)
}

// Middleware applies a limiter to the routes it wraps. Limiter failures fail
// open: an unreachable Redis must not take logins down with it.
func Middleware(l Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}

			allowed, retryAfter, err := l.Allow(c.Request().Context(), c.RealIP(), time.Now())
			if err != nil {
				return next(c)
			}
			if !allowed {
				seconds := int(retryAfter/time.Second) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"status":  http.StatusTooManyRequests,
					"message": "too many requests",
				})
			}
			return next(c)
		}
	}
}
