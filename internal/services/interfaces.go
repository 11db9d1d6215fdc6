package services

import (
	"context"
	"time"

	"transactions-dashboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// TransactionsClientInterface reads and writes transactions on the remote transactions API
type TransactionsClientInterface interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error)
}

// TransactionsProviderInterface holds the ordered transaction list shared by the dashboard views
type TransactionsProviderInterface interface {
	// Mount loads the list from the remote source exactly once
	Mount(ctx context.Context) error

	// CreateTransaction writes a new transaction and appends the stored record
	CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error)

	Transactions() []models.Transaction
	Status() models.ProviderStatus
	Summary() models.TransactionSummary
	Unmount()
}

// TransactionServiceInterface implements the transactions API on top of the repository
type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	GenerateSampleTransactions(ctx context.Context, count int) ([]models.Transaction, error)
}

// TransactionGeneratorInterface generates realistic transaction data for development
type TransactionGeneratorInterface interface {
	GenerateTransactions(startDate, endDate time.Time, count int) []models.Transaction
	GenerateTransaction(startDate, endDate time.Time) models.Transaction
	GenerateTransactionType() models.TransactionType
	GenerateAmount(category string) decimal.Decimal
	GenerateTimestamp(startDate, endDate time.Time) time.Time
	GetCategories() []string
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type TokenServiceInterface interface {
	GenerateServiceToken() (string, time.Time, error)
	ValidateServiceToken(tokenString string) (*jwt.RegisteredClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	GetFailureCount() int
}
