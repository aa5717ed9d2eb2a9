package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

// Generator renders the object financial report as a PDF. It uses the
// built-in Helvetica core font, so labels are English; the chat renderer
// stays the localized surface.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(report *service.ObjectReport) ([]byte, error) {
	obj := report.Object
	fin := report.Finance

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Object financial report", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, obj.Name, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", formatDate(obj.StartDate), formatDate(obj.EndDate)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Income", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Prepayment: %s", amount(fin.Prepayment)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Final payment: %s", amount(fin.FinalPayment)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total income: %s", amount(fin.TotalIncome)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Estimate vs actual", "", 1, "L", false, 0, "")

	headers := []string{"Line", "Estimate", "Actual", "Difference"}
	colWidths := []float64{70, 36, 36, 36}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	rows := [][]string{
		{"S3 cladding", amount(fin.EstimateS3), amount(fin.ActualS3Discount), amount(fin.S3Difference)},
		{"Works (payroll 55%)", amount(fin.EstimateWorks), amount(fin.FZPTotal), amount(fin.WorkProfit)},
		{"Supplies", amount(fin.EstimateSupplies), amount(fin.SuppliesFact), amount(fin.SuppliesDifference)},
		{"Overhead", amount(fin.EstimateOverhead), amount(fin.OverheadFact), amount(fin.OverheadDifference)},
		{"Transport", amount(fin.EstimateTransport), amount(fin.TransportFact), amount(fin.TransportDifference)},
	}
	for _, row := range rows {
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Payroll fund: master %s, foreman %s", amount(fin.FZPMaster), amount(fin.FZPForeman)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Worker advances issued: %s", amount(report.TotalAdvances)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Totals", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total expenses: %s", amount(fin.TotalExpenses)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total profit: %s", amount(fin.TotalProfit)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Profitability: %s", finance.FormatPercentage(fin.Profitability)), "", 1, "L", false, 0, "")

	if fin.TotalProfit.IsNegative() {
		pdf.Ln(2)
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, "Warning: the object closed below its estimate.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func amount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
