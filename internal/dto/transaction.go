package dto

import (
	"transactions-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// ListTransactionsResponse is the body of GET /transactions
type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// TransactionResponse wraps a single transaction, as returned by
// POST /transactions and GET /transactions/:id
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

// CreateTransactionRequest is the body accepted by the transactions API
type CreateTransactionRequest struct {
	Title     string                 `json:"title" validate:"required,max=255"`
	Amount    decimal.Decimal        `json:"amount" validate:"positive_amount"`
	Type      string                 `json:"type" validate:"required,transaction_type"`
	Category  string                 `json:"category" validate:"max=100"`
	CreatedAt models.TransactionDate `json:"createdAt"`
}

// ToInput converts the request into a model input
func (r CreateTransactionRequest) ToInput() models.TransactionInput {
	return models.TransactionInput{
		Title:     r.Title,
		Amount:    r.Amount,
		Type:      models.TransactionType(r.Type),
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
	}
}

// SampleTransactionsResponse is returned by the development sample endpoint
type SampleTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// DashboardSnapshotResponse is the dashboard's JSON view of the provider
type DashboardSnapshotResponse struct {
	Transactions []models.Transaction  `json:"transactions"`
	Status       models.ProviderStatus `json:"status"`
}
