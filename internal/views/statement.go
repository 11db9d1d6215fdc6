package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"transactions-dashboard/internal/models"

	"github.com/phpdave11/gofpdf"
)

var statementColumnWidths = []float64{80, 35, 40, 27}

// RenderStatementPDF writes the transactions table and its summary as an A4 PDF
func RenderStatementPDF(w io.Writer, transactions []models.Transaction, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 14)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Extrato de transações"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Gerado em "+generatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(10)

	summary := NewSummaryView(models.SummarizeTransactions(transactions))
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{60.6, 60.6, 60.8}
	pdf.CellFormat(sumW[0], 10, "Entradas", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, tr("Saídas"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, summary.Deposits, "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, summary.Withdraws, "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, summary.Total, "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeStatementHeader(pdf, tr)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range BuildRows(transactions) {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeStatementHeader(pdf, tr)
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(statementColumnWidths[0], 8, tr(trimTo(row.Title, 48)), "1", 0, "L", false, 0, "")
		if row.Class == "withdraw" {
			pdf.SetTextColor(229, 46, 77)
		} else {
			pdf.SetTextColor(51, 204, 149)
		}
		pdf.CellFormat(statementColumnWidths[1], 8, row.Amount, "1", 0, "R", false, 0, "")
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(statementColumnWidths[2], 8, tr(trimTo(row.Category, 24)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(statementColumnWidths[3], 8, tr(row.Date), "1", 1, "C", false, 0, "")
	}

	writeCategoryTotals(pdf, tr, models.SummarizeByCategory(transactions))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("build statement pdf: %w", err)
	}
	return nil
}

func writeStatementHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)

	aligns := []string{"L", "R", "L", "C"}
	for i, column := range TableColumns {
		ln := 0
		if i == len(TableColumns)-1 {
			ln = 1
		}
		pdf.CellFormat(statementColumnWidths[i], 8, tr(column), "1", ln, aligns[i], true, 0, "")
	}
}

// writeCategoryTotals appends one line per category below the table
func writeCategoryTotals(pdf *gofpdf.Fpdf, tr func(string) string, categories []models.CategorySummary) {
	if len(categories) == 0 {
		return
	}

	if pdf.GetY() > 250 {
		pdf.AddPage()
	}
	pdf.Ln(6)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Por categoria")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	for _, category := range categories {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 9)
		}
		label := fmt.Sprintf("%s (%d)", trimTo(category.Category, 40), category.TransactionCount)
		pdf.CellFormat(115, 7, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(67, 7, FormatBRL(category.Total), "B", 1, "R", false, 0, "")
	}
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "..."
}
