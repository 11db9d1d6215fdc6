package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"transactions-dashboard/internal/dto"
	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/models"
	"transactions-dashboard/internal/repositories"
	"transactions-dashboard/internal/services"
	"transactions-dashboard/internal/validation"

	"github.com/labstack/echo/v4"
)

// TransactionHandler serves the transactions REST API the dashboard reads from
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactions returns every stored transaction in creation order
//
// GET /transactions
// 200 {"transactions": [...]}
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	transactions, err := h.transactionService.ListTransactions(c.Request().Context())
	if err != nil {
		return sendLoggedError(c, errors.SystemDatabaseError, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: transactions})
}

// CreateTransaction stores a new transaction
//
// POST /transactions
// 201 {"transaction": {...}}
// 400 VALIDATION_* when fields are missing or malformed
// 422 TRANSACTION_002 / TRANSACTION_003 for a bad amount or type
// 500 TRANSACTION_004 when the record could not be stored
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(validation.FormatValidationErrors(err)...))
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), req.ToInput())
	if err != nil {
		if code, ok := transactionErrorCode(err); ok {
			return SendError(c, code, errors.WithDetails(err.Error()))
		}
		return sendLoggedError(c, errors.TransactionCreateFailed, err)
	}

	return c.JSON(http.StatusCreated, dto.TransactionResponse{Transaction: *transaction})
}

// GetTransaction returns one transaction by id
//
// GET /transactions/:id
// 200 {"transaction": {...}}
// 404 TRANSACTION_001
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionResponse{Transaction: *transaction})
}

// transactionErrorCode maps model validation failures to API error codes
func transactionErrorCode(err error) (errors.ErrorCode, bool) {
	switch {
	case stderrors.Is(err, models.ErrTitleRequired):
		return errors.ValidationRequiredField, true
	case stderrors.Is(err, models.ErrInvalidAmount):
		return errors.TransactionInvalidAmount, true
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return errors.TransactionInvalidType, true
	case stderrors.Is(err, models.ErrCategoryTooLong):
		return errors.ValidationOutOfRange, true
	case stderrors.Is(err, models.ErrInvalidCreatedAt):
		return errors.ValidationInvalidDate, true
	default:
		return "", false
	}
}
