package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"transactions-dashboard/internal/dto"
	"transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/models"
	"transactions-dashboard/internal/services"
	"transactions-dashboard/internal/views"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DashboardHandler serves the transactions table and its form.
// Every route reads the provider that ProvideTransactions put in the request context.
type DashboardHandler struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		logger: logger,
		now:    time.Now,
	}
}

func (h *DashboardHandler) provider(c echo.Context) (services.TransactionsProviderInterface, error) {
	return services.ProviderFromContext(c.Request().Context())
}

func (h *DashboardHandler) sendNotInScope(c echo.Context) error {
	h.logger.Error("dashboard route served outside the provider scope", "path", c.Path())
	return SendError(c, errors.ProviderNotInScope)
}

// Page renders the summary, the table and the new-transaction form
//
// GET /
func (h *DashboardHandler) Page(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	page, err := views.RenderPage(views.PageData{
		Transactions: provider.Transactions(),
		Summary:      provider.Summary(),
		Status:       provider.Status(),
	})
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.HTML(http.StatusOK, page)
}

// Table renders only the transactions table
//
// GET /transactions/table
func (h *DashboardHandler) Table(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	table, err := views.RenderTable(provider.Transactions())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.HTML(http.StatusOK, table)
}

// CreateTransaction forwards a new transaction to the transactions API through the provider.
// Form posts are redirected back to the page, which shows the outcome;
// JSON posts get the stored record or the error.
//
// POST /transactions
func (h *DashboardHandler) CreateTransaction(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	asJSON := wantsJSON(c)

	var input models.TransactionInput
	if asJSON {
		if err := c.Bind(&input); err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
		}
	} else {
		input = formTransactionInput(c)
	}

	transaction, err := provider.CreateTransaction(c.Request().Context(), input)
	if err != nil {
		h.logger.Warn("transaction creation failed", "title", input.Title, "error", err)
		if !asJSON {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return sendUpstreamError(c, err)
	}

	if !asJSON {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusCreated, dto.TransactionResponse{Transaction: *transaction})
}

// Snapshot returns the held transactions with the provider status
//
// GET /api/transactions
func (h *DashboardHandler) Snapshot(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	return c.JSON(http.StatusOK, dto.DashboardSnapshotResponse{
		Transactions: provider.Transactions(),
		Status:       provider.Status(),
	})
}

// Summary returns deposit, withdraw and total amounts
//
// GET /api/summary
func (h *DashboardHandler) Summary(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	return c.JSON(http.StatusOK, provider.Summary())
}

// Categories returns the totals of each category, in first-appearance order
//
// GET /api/categories
func (h *DashboardHandler) Categories(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	return c.JSON(http.StatusOK, models.SummarizeByCategory(provider.Transactions()))
}

// Statement renders the table as a PDF download
//
// GET /transactions/statement.pdf
func (h *DashboardHandler) Statement(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	generatedAt := h.now()

	var buf bytes.Buffer
	if err := views.RenderStatementPDF(&buf, provider.Transactions(), generatedAt); err != nil {
		return SendSystemError(c, err)
	}

	filename := fmt.Sprintf("transacoes-%s.pdf", generatedAt.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// Health reports ready once the initial load succeeded
//
// GET /health
func (h *DashboardHandler) Health(c echo.Context) error {
	provider, err := h.provider(c)
	if err != nil {
		return h.sendNotInScope(c)
	}

	status := provider.Status()
	if !status.IsReady() {
		details := []string{"provider state: " + string(status.State)}
		if status.LastError != "" {
			details = append(details, status.LastError)
		}
		return SendError(c, errors.ProviderNotReady, errors.WithDetails(details...))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"transactions": status.Count,
		"time":         h.now().UTC().Format(time.RFC3339),
	})
}

// formTransactionInput reads the dashboard form as-is; the transactions API validates it
func formTransactionInput(c echo.Context) models.TransactionInput {
	amount, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("amount")))
	if err != nil {
		amount = decimal.Zero
	}

	return models.TransactionInput{
		Title:     c.FormValue("title"),
		Amount:    amount,
		Type:      models.TransactionType(c.FormValue("type")),
		Category:  c.FormValue("category"),
		CreatedAt: models.ParseTransactionDate(c.FormValue("createdAt")),
	}
}

// sendUpstreamError translates a failed call to the transactions API
func sendUpstreamError(c echo.Context, err error) error {
	var upstream *services.UpstreamError
	switch {
	case stderrors.Is(err, services.ErrProviderNotMounted), stderrors.Is(err, services.ErrProviderLoading):
		return SendError(c, errors.ProviderNotReady, errors.WithDetails(err.Error()))
	case stderrors.As(err, &upstream):
		details := upstream.Details
		if len(details) == 0 && upstream.Message != "" {
			details = []string{upstream.Message}
		}
		if upstream.IsClientError() {
			return SendError(c, errors.UpstreamRejected, errors.WithDetails(details...))
		}
		return SendError(c, errors.UpstreamUnavailable, errors.WithDetails(details...))
	case stderrors.Is(err, services.ErrMalformedResponse):
		return SendError(c, errors.UpstreamBadResponse)
	default:
		return SendError(c, errors.UpstreamUnavailable)
	}
}
