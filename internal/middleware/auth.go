package middleware

import (
	stderrors "errors"

	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/handlers"
	"transactions-dashboard/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// ServiceClaimsContextKey holds the validated *jwt.RegisteredClaims
	ServiceClaimsContextKey = "service_claims"
	// ServiceSubjectContextKey holds the subject of the calling service
	ServiceSubjectContextKey = "service_subject"
)

// RequireServiceToken creates a middleware that requires a valid service token
// signed with the shared secret
func RequireServiceToken(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateServiceToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set(ServiceClaimsContextKey, claims)
			c.Set(ServiceSubjectContextKey, claims.Subject)

			return next(c)
		}
	}
}

// GetServiceClaims returns the claims RequireServiceToken stored, or nil
func GetServiceClaims(c echo.Context) *jwt.RegisteredClaims {
	claims, _ := c.Get(ServiceClaimsContextKey).(*jwt.RegisteredClaims)
	return claims
}
