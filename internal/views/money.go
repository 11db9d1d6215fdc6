package views

import (
	"strings"

	"transactions-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

const currencySymbol = "R$"

// FormatBRL formats an amount the pt-BR way: R$ 12.000,00.
// Negative amounts get a leading "- ".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "- "
	}

	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	return sign + currencySymbol + " " + withDots(whole) + "," + cents
}

// FormatTransactionAmount formats the value cell of a transaction.
// Withdrawals always render negative and deposits positive.
func FormatTransactionAmount(t models.Transaction) string {
	return FormatBRL(t.SignedAmount())
}

func withDots(digits string) string {
	var b strings.Builder
	l := len(digits)
	for i := 0; i < l; i++ {
		b.WriteByte(digits[i])
		rem := l - i - 1
		if rem > 0 && rem%3 == 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}
