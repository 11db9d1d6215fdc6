package models

import "github.com/shopspring/decimal"

// TransactionSummary contains the deposit, withdraw and balance totals of a list
type TransactionSummary struct {
	Deposits  decimal.Decimal `json:"deposits"`
	Withdraws decimal.Decimal `json:"withdraws"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// SummarizeTransactions totals the given transactions by type
func SummarizeTransactions(transactions []Transaction) TransactionSummary {
	summary := TransactionSummary{
		Deposits:  decimal.Zero,
		Withdraws: decimal.Zero,
		Total:     decimal.Zero,
	}

	for i := range transactions {
		signed := transactions[i].SignedAmount()
		if signed.IsNegative() {
			summary.Withdraws = summary.Withdraws.Add(signed.Neg())
		} else {
			summary.Deposits = summary.Deposits.Add(signed)
		}
		summary.Total = summary.Total.Add(signed)
	}

	summary.Count = len(transactions)
	return summary
}
