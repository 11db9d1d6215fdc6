package handlers

import (
	stderrors "errors"
	"net/http"

	"transactions-dashboard/internal/dto"
	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/services"

	"github.com/labstack/echo/v4"
)

const defaultSampleCount = 20

// DevHandler handles development-only endpoints
// These endpoints should only be registered in development environments
type DevHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(transactionService services.TransactionServiceInterface) *DevHandler {
	return &DevHandler{
		transactionService: transactionService,
	}
}

// GenerateSampleTransactions stores realistic fake transactions
//
// Method: POST /dev/sample-transactions
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 20, max: 500)
//
// Success Response: 201 Created
//   - transactions: the stored records
//   - count: how many were stored
//
// Error Responses:
//   - 400: count out of range
//   - 500: Internal server error
func (h *DevHandler) GenerateSampleTransactions(c echo.Context) error {
	count := getIntParam(c, "count", defaultSampleCount)

	transactions, err := h.transactionService.GenerateSampleTransactions(c.Request().Context(), count)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidSampleCount) {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.SampleTransactionsResponse{
		Transactions: transactions,
		Count:        len(transactions),
	})
}
