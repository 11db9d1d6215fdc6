package middleware

import (
	"transactions-dashboard/internal/services"

	"github.com/labstack/echo/v4"
)

// ProvideTransactions puts provider in scope for every request below it.
// Handlers read it back with services.ProviderFromContext.
func ProvideTransactions(provider services.TransactionsProviderInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(services.ContextWithProvider(req.Context(), provider)))
			return next(c)
		}
	}
}
