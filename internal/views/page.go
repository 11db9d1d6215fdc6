package views

import (
	"fmt"

	"transactions-dashboard/internal/models"

	"github.com/flosch/pongo2/v6"
)

// DefaultPageTitle is shown in the page header
const DefaultPageTitle = "Transações"

// SummaryView holds the formatted summary card values
type SummaryView struct {
	Deposits  string
	Withdraws string
	Total     string
}

// NewSummaryView formats a summary for display
func NewSummaryView(summary models.TransactionSummary) SummaryView {
	return SummaryView{
		Deposits:  FormatBRL(summary.Deposits),
		Withdraws: FormatBRL(summary.Withdraws.Abs().Neg()),
		Total:     FormatBRL(summary.Total),
	}
}

// PageData is everything the dashboard page shows
type PageData struct {
	Title        string
	Transactions []models.Transaction
	Summary      models.TransactionSummary
	Status       models.ProviderStatus
}

var pageTemplate = pongo2.Must(pongo2.FromString(mustTemplate("page.html")))

// RenderPage renders the full dashboard page
func RenderPage(data PageData) (string, error) {
	table, err := RenderTable(data.Transactions)
	if err != nil {
		return "", err
	}

	title := data.Title
	if title == "" {
		title = DefaultPageTitle
	}

	out, err := pageTemplate.Execute(pongo2.Context{
		"title":   title,
		"summary": NewSummaryView(data.Summary),
		"status":  data.Status,
		"failed":  data.Status.IsFailed(),
		"table":   table,
	})
	if err != nil {
		return "", fmt.Errorf("render dashboard page: %w", err)
	}
	return out, nil
}
