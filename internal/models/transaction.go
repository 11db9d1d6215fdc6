package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrTitleRequired          = errors.New("transaction title is required")
	ErrCategoryTooLong        = errors.New("category too long")
	ErrInvalidCreatedAt       = errors.New("createdAt is not a valid date")
)

func init() {
	// Amounts travel as JSON numbers, the same shape the transactions API returns.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a single financial ledger entry
type Transaction struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string          `gorm:"type:varchar(255);not null" json:"title"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      TransactionType `gorm:"type:varchar(20);not null" json:"type"`
	Category  string          `gorm:"type:varchar(100)" json:"category"`
	CreatedAt TransactionDate `gorm:"not null;index;autoCreateTime:false" json:"createdAt"`
}

// TransactionInput is a transaction that has not been assigned an id yet
type TransactionInput struct {
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	CreatedAt TransactionDate `json:"createdAt"`
}

// NewTransactionFromInput builds an unsaved transaction from an input payload
func NewTransactionFromInput(input TransactionInput) *Transaction {
	return &Transaction{
		Title:     input.Title,
		Amount:    input.Amount,
		Type:      input.Type,
		Category:  input.Category,
		CreatedAt: input.CreatedAt,
	}
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = NewTransactionDate(time.Now().UTC())
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}

	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if len(t.Category) > 100 {
		return ErrCategoryTooLong
	}

	if t.CreatedAt.Time.IsZero() && t.CreatedAt.Raw != "" {
		return ErrInvalidCreatedAt
	}

	return nil
}

// SignedAmount returns the amount with the sign implied by the type.
// The stored sign is ignored: withdrawals are negative, deposits positive.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeWithdraw {
		return t.Amount.Abs().Neg()
	}
	return t.Amount.Abs()
}

// IsWithdraw returns true for withdrawals
func (t *Transaction) IsWithdraw() bool {
	return t.Type == TransactionTypeWithdraw
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValid checks if the transaction type is one of the known types
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeDeposit, TransactionTypeWithdraw:
		return true
	default:
		return false
	}
}

// CSSClass returns the style class used for value cells of this type
func (tt TransactionType) CSSClass() string {
	if tt == TransactionTypeWithdraw {
		return "withdraw"
	}
	return "deposit"
}

