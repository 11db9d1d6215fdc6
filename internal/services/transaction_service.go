package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"transactions-dashboard/internal/models"
	"transactions-dashboard/internal/repositories"
)

// MaxSampleTransactions caps a single sample generation request
const MaxSampleTransactions = 500

var ErrInvalidSampleCount = fmt.Errorf("sample count must be between 1 and %d", MaxSampleTransactions)

// TransactionService implements the transactions API operations
type TransactionService struct {
	repo      repositories.TransactionRepositoryInterface
	generator TransactionGeneratorInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
	now       func() time.Time
}

func NewTransactionService(
	repo repositories.TransactionRepositoryInterface,
	generator TransactionGeneratorInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		repo:      repo,
		generator: generator,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateTransaction stores a new transaction, stamping createdAt when absent
func (s *TransactionService) CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error) {
	transaction := models.NewTransactionFromInput(input)
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = models.NewTransactionDate(s.now().UTC())
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		s.logger.Error("failed to store transaction", "title", transaction.Title, "error", err)
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.metrics.IncrementCounter(MetricTransactionCreated, map[string]string{"type": string(transaction.Type)})
	s.logger.Info("transaction stored", "id", transaction.ID, "type", transaction.Type, "amount", transaction.Amount.String())

	return transaction, nil
}

// ListTransactions returns every transaction in creation order
func (s *TransactionService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	transaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return transaction, nil
}

// GenerateSampleTransactions stores count fake transactions dated within the last 90 days
func (s *TransactionService) GenerateSampleTransactions(ctx context.Context, count int) ([]models.Transaction, error) {
	if count < 1 || count > MaxSampleTransactions {
		return nil, ErrInvalidSampleCount
	}

	endDate := s.now().UTC()
	startDate := endDate.AddDate(0, 0, -90)

	transactions := s.generator.GenerateTransactions(startDate, endDate, count)
	if err := s.repo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("store sample transactions: %w", err)
	}

	for i := range transactions {
		s.metrics.IncrementCounter(MetricTransactionCreated, map[string]string{"type": string(transactions[i].Type)})
	}
	s.logger.Info("sample transactions generated", "count", len(transactions))

	return transactions, nil
}
