package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	// APIContentSecurityPolicy is sent by the JSON API
	APIContentSecurityPolicy = "default-src 'self'"
	// DashboardContentSecurityPolicy lets the dashboard use its embedded stylesheet and post its own form
	DashboardContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'"
)

// SecurityHeaders adds security headers to responses using the given Content-Security-Policy.
// An empty policy falls back to APIContentSecurityPolicy.
func SecurityHeaders(contentSecurityPolicy string) echo.MiddlewareFunc {
	if contentSecurityPolicy == "" {
		contentSecurityPolicy = APIContentSecurityPolicy
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

			// The list changes with every create; never serve it from a cache
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")

			return next(c)
		}
	}
}
