package repositories

import (
	"context"
	"testing"
	"time"

	"transactions-dashboard/internal/database"
	"transactions-dashboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

type TransactionRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *database.DB
	repo TransactionRepositoryInterface
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) newTransaction(txType models.TransactionType) *models.Transaction {
	return &models.Transaction{
		Title:    gofakeit.Company(),
		Amount:   decimal.NewFromFloat(gofakeit.Float64Range(1, 5000)).Round(2),
		Type:     txType,
		Category: gofakeit.Word(),
	}
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Create_AssignsIDAndDate() {
	tx := s.newTransaction(models.TransactionTypeDeposit)

	err := s.repo.Create(s.ctx, tx)

	s.NoError(err)
	s.NotZero(tx.ID)
	s.False(tx.CreatedAt.Time.IsZero())
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Create_KeepsGivenDate() {
	tx := s.newTransaction(models.TransactionTypeWithdraw)
	tx.CreatedAt = models.NewTransactionDate(time.Date(2022, 2, 28, 0, 0, 0, 0, time.UTC))

	s.Require().NoError(s.repo.Create(s.ctx, tx))

	stored, err := s.repo.GetByID(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal("28/02/2022", stored.CreatedAt.Display())
}

func (s *TransactionRepositorySuite) TestTransactionRepository_Create_RejectsInvalid() {
	tx := s.newTransaction("transfer")

	err := s.repo.Create(s.ctx, tx)

	s.ErrorIs(err, models.ErrInvalidTransactionType)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_List_CreationOrder() {
	first := s.newTransaction(models.TransactionTypeDeposit)
	second := s.newTransaction(models.TransactionTypeWithdraw)
	third := s.newTransaction(models.TransactionTypeDeposit)
	for _, tx := range []*models.Transaction{first, second, third} {
		s.Require().NoError(s.repo.Create(s.ctx, tx))
	}

	transactions, err := s.repo.List(s.ctx)

	s.NoError(err)
	s.Require().Len(transactions, 3)
	s.Equal(first.ID, transactions[0].ID)
	s.Equal(second.ID, transactions[1].ID)
	s.Equal(third.ID, transactions[2].ID)
	s.True(transactions[1].Amount.Equal(second.Amount))
}

func (s *TransactionRepositorySuite) TestTransactionRepository_List_EmptyIsNotNil() {
	transactions, err := s.repo.List(s.ctx)

	s.NoError(err)
	s.NotNil(transactions)
	s.Empty(transactions)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_GetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 999)

	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_CreateBatch_And_Count() {
	batch := []models.Transaction{
		*s.newTransaction(models.TransactionTypeDeposit),
		*s.newTransaction(models.TransactionTypeWithdraw),
	}

	s.Require().NoError(s.repo.CreateBatch(s.ctx, batch))
	s.Require().NoError(s.repo.CreateBatch(s.ctx, nil))

	total, err := s.repo.Count(s.ctx)
	s.NoError(err)
	s.Equal(int64(2), total)
}

func (s *TransactionRepositorySuite) TestTransactionRepository_CreateBatch_RejectsInvalidRow() {
	batch := []models.Transaction{
		*s.newTransaction(models.TransactionTypeDeposit),
		{Title: "", Amount: decimal.NewFromInt(1), Type: models.TransactionTypeDeposit},
	}

	s.Error(s.repo.CreateBatch(s.ctx, batch))

	total, err := s.repo.Count(s.ctx)
	s.NoError(err)
	s.Zero(total)
}
