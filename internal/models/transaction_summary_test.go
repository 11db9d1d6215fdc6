package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeTransactions(t *testing.T) {
	transactions := []Transaction{
		{Title: "Website", Amount: decimal.NewFromInt(12000), Type: TransactionTypeDeposit},
		{Title: "Aluguel", Amount: decimal.NewFromInt(1500), Type: TransactionTypeWithdraw},
		{Title: "Mercado", Amount: decimal.NewFromFloat(-250.50), Type: TransactionTypeWithdraw},
	}

	summary := SummarizeTransactions(transactions)

	assert.True(t, summary.Deposits.Equal(decimal.NewFromInt(12000)))
	assert.True(t, summary.Withdraws.Equal(decimal.NewFromFloat(1750.50)))
	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(10249.50)))
	assert.Equal(t, 3, summary.Count)
}

func TestSummarizeTransactions_Empty(t *testing.T) {
	summary := SummarizeTransactions(nil)

	assert.True(t, summary.Total.IsZero())
	assert.Zero(t, summary.Count)
}

func TestSummarizeTransactions_AgreesWithSignedAmount(t *testing.T) {
	refund := Transaction{Title: "Estorno", Amount: decimal.NewFromInt(-100), Type: TransactionTypeDeposit}
	rent := Transaction{Title: "Aluguel", Amount: decimal.NewFromInt(-1500), Type: TransactionTypeWithdraw}

	summary := SummarizeTransactions([]Transaction{refund, rent})

	assert.True(t, refund.SignedAmount().Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.Deposits.Equal(refund.SignedAmount()))
	assert.True(t, summary.Withdraws.Equal(rent.SignedAmount().Neg()))
	assert.True(t, summary.Total.Equal(refund.SignedAmount().Add(rent.SignedAmount())))
}
