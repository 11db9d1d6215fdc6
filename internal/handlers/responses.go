package handlers

import (
	"log/slog"

	"transactions-dashboard/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through SendError (client and business errors)
// or SendSystemError (anything whose details must stay server-side).
// Returning echo.NewHTTPError or calling c.JSON with an ad-hoc error body
// bypasses the standard envelope.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.StatusCode(), errorResponse)
}

// SendSystemError answers SYSTEM_001 and logs err, which never reaches the client
func SendSystemError(c echo.Context, err error) error {
	return sendLoggedError(c, errors.SystemInternalError, err)
}

func sendLoggedError(c echo.Context, code errors.ErrorCode, err error) error {
	traceID := getTraceID(c)
	slog.Error("Internal error", "trace_id", traceID, "code", code, "path", c.Request().URL.Path, "error", err)
	errorResponse := errors.NewErrorResponse(code, traceID)
	return c.JSON(errorResponse.StatusCode(), errorResponse)
}
