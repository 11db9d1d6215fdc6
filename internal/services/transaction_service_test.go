package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"transactions-dashboard/internal/models"
	"transactions-dashboard/internal/repositories"
	"transactions-dashboard/internal/repositories/repository_mocks"
	"transactions-dashboard/internal/services/service_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	repo      *repository_mocks.MockTransactionRepositoryInterface
	generator *service_mocks.MockTransactionGeneratorInterface
	metrics   *service_mocks.MockMetricsRecorderInterface
	service   *TransactionService
	now       time.Time
	ctx       context.Context
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.generator = service_mocks.NewMockTransactionGeneratorInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()

	s.now = time.Date(2022, 2, 28, 15, 30, 0, 0, time.UTC)
	s.service = NewTransactionService(s.repo, s.generator, s.metrics, slog.Default()).(*TransactionService)
	s.service.now = func() time.Time { return s.now }
	s.ctx = context.Background()
}

func (s *TransactionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransactionServiceTestSuite) validInput() models.TransactionInput {
	return models.TransactionInput{
		Title:    gofakeit.Company(),
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
		Type:     models.TransactionTypeDeposit,
		Category: gofakeit.Word(),
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_StampsCreatedAt() {
	input := s.validInput()

	s.repo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *models.Transaction) error {
			txn.ID = 42
			return nil
		},
	)

	created, err := s.service.CreateTransaction(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(int64(42), created.ID)
	s.Equal(input.Title, created.Title)
	s.Equal(s.now, created.CreatedAt.Time)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_KeepsGivenDate() {
	input := s.validInput()
	input.CreatedAt = models.ParseTransactionDate("20/02/2022")

	s.repo.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	created, err := s.service.CreateTransaction(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("20/02/2022", created.CreatedAt.Display())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InvalidInputNeverReachesRepository() {
	tests := []struct {
		name    string
		mutate  func(*models.TransactionInput)
		wantErr error
	}{
		{"blank title", func(in *models.TransactionInput) { in.Title = " " }, models.ErrTitleRequired},
		{"unknown type", func(in *models.TransactionInput) { in.Type = "transfer" }, models.ErrInvalidTransactionType},
		{"zero amount", func(in *models.TransactionInput) { in.Amount = decimal.Zero }, models.ErrInvalidAmount},
		{"text date", func(in *models.TransactionInput) { in.CreatedAt = models.ParseTransactionDate("ontem") }, models.ErrInvalidCreatedAt},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			input := s.validInput()
			tt.mutate(&input)

			_, err := s.service.CreateTransaction(s.ctx, input)
			s.ErrorIs(err, tt.wantErr)
		})
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RepositoryError() {
	s.repo.EXPECT().Create(s.ctx, gomock.Any()).Return(errors.New("db down"))

	_, err := s.service.CreateTransaction(s.ctx, s.validInput())
	s.Error(err)
	s.Contains(err.Error(), "db down")
}

func (s *TransactionServiceTestSuite) TestListTransactions() {
	stored := []models.Transaction{{ID: 1}, {ID: 2}}
	s.repo.EXPECT().List(s.ctx).Return(stored, nil)

	transactions, err := s.service.ListTransactions(s.ctx)
	s.Require().NoError(err)
	s.Equal(stored, transactions)
}

func (s *TransactionServiceTestSuite) TestListTransactions_Error() {
	s.repo.EXPECT().List(s.ctx).Return(nil, errors.New("db down"))

	_, err := s.service.ListTransactions(s.ctx)
	s.Error(err)
}

func (s *TransactionServiceTestSuite) TestGetTransaction_NotFound() {
	s.repo.EXPECT().GetByID(s.ctx, int64(99)).Return(nil, repositories.ErrTransactionNotFound)

	_, err := s.service.GetTransaction(s.ctx, 99)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *TransactionServiceTestSuite) TestGetTransaction_Found() {
	s.repo.EXPECT().GetByID(s.ctx, int64(1)).Return(&models.Transaction{ID: 1, Title: "Aluguel"}, nil)

	txn, err := s.service.GetTransaction(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Aluguel", txn.Title)
}

func (s *TransactionServiceTestSuite) TestGenerateSampleTransactions() {
	generated := []models.Transaction{
		{Title: "Aluguel", Amount: decimal.NewFromInt(1500), Type: models.TransactionTypeWithdraw},
		{Title: "Salário", Amount: decimal.NewFromInt(5000), Type: models.TransactionTypeDeposit},
	}
	s.generator.EXPECT().GenerateTransactions(s.now.AddDate(0, 0, -90), s.now, 2).Return(generated)
	s.repo.EXPECT().CreateBatch(s.ctx, generated).Return(nil)

	transactions, err := s.service.GenerateSampleTransactions(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(transactions, 2)
}

func (s *TransactionServiceTestSuite) TestGenerateSampleTransactions_InvalidCount() {
	for _, count := range []int{0, -1, MaxSampleTransactions + 1} {
		_, err := s.service.GenerateSampleTransactions(s.ctx, count)
		s.ErrorIs(err, ErrInvalidSampleCount)
	}
}

func (s *TransactionServiceTestSuite) TestGenerateSampleTransactions_StoreError() {
	s.generator.EXPECT().GenerateTransactions(gomock.Any(), gomock.Any(), 1).Return([]models.Transaction{{}})
	s.repo.EXPECT().CreateBatch(s.ctx, gomock.Any()).Return(errors.New("db down"))

	_, err := s.service.GenerateSampleTransactions(s.ctx, 1)
	s.Error(err)
}
