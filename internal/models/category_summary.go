package models

import "github.com/shopspring/decimal"

// UncategorizedLabel groups transactions without a category
const UncategorizedLabel = "Sem categoria"

// CategorySummary contains aggregated transaction data by category
type CategorySummary struct {
	Category         string          `json:"category"`
	TransactionCount int             `json:"transaction_count"`
	Deposits         decimal.Decimal `json:"deposits"`
	Withdraws        decimal.Decimal `json:"withdraws"`
	Total            decimal.Decimal `json:"total"`
}

// SummarizeByCategory totals transactions per category, in the order each
// category first appears in the list
func SummarizeByCategory(transactions []Transaction) []CategorySummary {
	summaries := []CategorySummary{}
	index := make(map[string]int)

	for i := range transactions {
		category := transactions[i].Category
		if category == "" {
			category = UncategorizedLabel
		}

		pos, ok := index[category]
		if !ok {
			pos = len(summaries)
			index[category] = pos
			summaries = append(summaries, CategorySummary{
				Category:  category,
				Deposits:  decimal.Zero,
				Withdraws: decimal.Zero,
				Total:     decimal.Zero,
			})
		}

		s := &summaries[pos]
		s.TransactionCount++
		amount := transactions[i].Amount.Abs()
		if transactions[i].IsWithdraw() {
			s.Withdraws = s.Withdraws.Add(amount)
		} else {
			s.Deposits = s.Deposits.Add(amount)
		}
		s.Total = s.Deposits.Sub(s.Withdraws)
	}

	return summaries
}
