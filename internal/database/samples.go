package database

import (
	"time"

	"transactions-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// SampleTransactions returns the fixed sample rows used to seed an empty database
func SampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Title:     "Desenvolvimento de Website",
			Amount:    decimal.NewFromInt(12000),
			Type:      models.TransactionTypeDeposit,
			Category:  "Desenvolvimento",
			CreatedAt: models.NewTransactionDate(time.Date(2022, time.February, 20, 9, 0, 0, 0, time.UTC)),
		},
		{
			Title:     "Aluguel",
			Amount:    decimal.NewFromInt(1500),
			Type:      models.TransactionTypeWithdraw,
			Category:  "Casa",
			CreatedAt: models.NewTransactionDate(time.Date(2022, time.February, 28, 9, 0, 0, 0, time.UTC)),
		},
	}
}
