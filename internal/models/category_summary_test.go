package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByCategory(t *testing.T) {
	transactions := []Transaction{
		{Title: "Aluguel", Amount: decimal.NewFromInt(1500), Type: TransactionTypeWithdraw, Category: "Casa"},
		{Title: "Website", Amount: decimal.NewFromInt(12000), Type: TransactionTypeDeposit, Category: "Desenvolvimento"},
		{Title: "Luz", Amount: decimal.RequireFromString("180.35"), Type: TransactionTypeWithdraw, Category: "Casa"},
		{Title: "Pix", Amount: decimal.NewFromInt(50), Type: TransactionTypeDeposit},
	}

	summaries := SummarizeByCategory(transactions)

	require.Len(t, summaries, 3)

	assert.Equal(t, "Casa", summaries[0].Category)
	assert.Equal(t, 2, summaries[0].TransactionCount)
	assert.True(t, summaries[0].Withdraws.Equal(decimal.RequireFromString("1680.35")))
	assert.True(t, summaries[0].Total.Equal(decimal.RequireFromString("-1680.35")))

	assert.Equal(t, "Desenvolvimento", summaries[1].Category)
	assert.True(t, summaries[1].Deposits.Equal(decimal.NewFromInt(12000)))

	assert.Equal(t, UncategorizedLabel, summaries[2].Category)
	assert.Equal(t, 1, summaries[2].TransactionCount)
}

func TestSummarizeByCategory_Empty(t *testing.T) {
	summaries := SummarizeByCategory(nil)

	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
