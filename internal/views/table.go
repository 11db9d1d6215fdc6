package views

import (
	"fmt"

	"transactions-dashboard/internal/models"

	"github.com/flosch/pongo2/v6"
)

// TableColumns are the headers of the transactions table, in order
var TableColumns = []string{"Título", "Valor", "Categoria", "Data"}

// TableRow is one rendered transaction
type TableRow struct {
	ID       int64
	Title    string
	Amount   string
	Class    string
	Category string
	Date     string
}

// NewTableRow formats a transaction for the table
func NewTableRow(t models.Transaction) TableRow {
	return TableRow{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   FormatTransactionAmount(t),
		Class:    t.Type.CSSClass(),
		Category: t.Category,
		Date:     t.CreatedAt.Display(),
	}
}

// BuildRows returns one row per transaction, in the same order
func BuildRows(transactions []models.Transaction) []TableRow {
	rows := make([]TableRow, 0, len(transactions))
	for i := range transactions {
		rows = append(rows, NewTableRow(transactions[i]))
	}
	return rows
}

var tableTemplate = pongo2.Must(pongo2.FromString(mustTemplate("table.html")))

// RenderTable renders the transactions table fragment
func RenderTable(transactions []models.Transaction) (string, error) {
	out, err := tableTemplate.Execute(pongo2.Context{
		"columns": TableColumns,
		"rows":    BuildRows(transactions),
	})
	if err != nil {
		return "", fmt.Errorf("render transactions table: %w", err)
	}
	return out, nil
}
