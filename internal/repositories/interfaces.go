package repositories

import (
	"context"

	"transactions-dashboard/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	CreateBatch(ctx context.Context, transactions []models.Transaction) error
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Count(ctx context.Context) (int64, error)
}
