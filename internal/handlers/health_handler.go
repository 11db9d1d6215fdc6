package handlers

import (
	"net/http"
	"time"

	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/repositories"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthCheckHandler handles the health check endpoint of the transactions API
type HealthCheckHandler struct {
	db           *gorm.DB
	transactions repositories.TransactionRepositoryInterface
	now          func() time.Time
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB, transactions repositories.TransactionRepositoryInterface) *HealthCheckHandler {
	return &HealthCheckHandler{db: db, transactions: transactions, now: time.Now}
}

// HealthCheck pings the database and reports how many transactions are stored
//
// GET /health
// 200 {"status": "healthy", "transactions": 2, "time": "..."}
// 503 SYSTEM_003
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	sqlDB, err := h.db.DB()
	if err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	total, err := h.transactions.Count(ctx)
	if err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Transactions table is not readable"))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":       "healthy",
		"transactions": total,
		"time":         h.now().UTC().Format(time.RFC3339),
	})
}
