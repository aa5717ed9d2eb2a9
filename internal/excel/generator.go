package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the object financial report workbook: a summary sheet with
// the estimate/fact/difference table plus detail sheets for expenses and
// worker advances.
func (g *Generator) Generate(report *service.ObjectReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Финансы"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	expenseSheet := "Расходы"
	file.NewSheet(expenseSheet)
	if err := g.writeExpenses(file, expenseSheet, report); err != nil {
		return nil, err
	}

	advanceSheet := "Авансы"
	file.NewSheet(advanceSheet)
	if err := g.writeAdvances(file, advanceSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report *service.ObjectReport) error {
	obj := report.Object
	fin := report.Finance

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Объект")
	set("B1", obj.Name)
	set("A2", "Статус")
	set("B2", statusLabel(obj.Status))
	set("A3", "Начало работ")
	set("B3", formatOptionalDate(obj.StartDate))
	set("A4", "Окончание работ")
	set("B4", formatOptionalDate(obj.EndDate))
	set("A5", "Всего поступлений")
	set("B5", finance.FormatCurrency(fin.TotalIncome))

	tableRow := 7
	headers := []string{"Статья", "По смете", "По факту", "Разница"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	rows := [][]string{
		{"Облицовка С3", finance.FormatCurrency(fin.EstimateS3), finance.FormatCurrency(fin.ActualS3Discount), finance.FormatCurrency(fin.S3Difference)},
		{"Работы (прибыль фирмы)", finance.FormatCurrency(fin.EstimateWorks), finance.FormatCurrency(fin.FZPTotal), finance.FormatCurrency(fin.WorkProfit)},
		{"Расходники", finance.FormatCurrency(fin.EstimateSupplies), finance.FormatCurrency(fin.SuppliesFact), finance.FormatCurrency(fin.SuppliesDifference)},
		{"Накладные расходы", finance.FormatCurrency(fin.EstimateOverhead), finance.FormatCurrency(fin.OverheadFact), finance.FormatCurrency(fin.OverheadDifference)},
		{"Транспортные услуги", finance.FormatCurrency(fin.EstimateTransport), finance.FormatCurrency(fin.TransportFact), finance.FormatCurrency(fin.TransportDifference)},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, tableRow+1+i)
			set(cell, value)
		}
	}

	totalsRow := tableRow + len(rows) + 2
	set(fmt.Sprintf("A%d", totalsRow), "Общие расходы")
	set(fmt.Sprintf("B%d", totalsRow), finance.FormatCurrency(fin.TotalExpenses))
	set(fmt.Sprintf("A%d", totalsRow+1), "Прибыль")
	set(fmt.Sprintf("B%d", totalsRow+1), finance.FormatCurrency(fin.TotalProfit))
	set(fmt.Sprintf("A%d", totalsRow+2), "Рентабельность")
	set(fmt.Sprintf("B%d", totalsRow+2), finance.FormatPercentage(fin.Profitability))

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "D", 18)
	return nil
}

func (g *Generator) writeExpenses(file *excelize.File, sheet string, report *service.ObjectReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Дата", "Тип", "Сумма", "Описание", "Оплата", "Статус компенсации"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, e := range report.Object.Expenses {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), e.Date.Format("02.01.2006"))
		set(fmt.Sprintf("B%d", row), expenseTypeLabel(e.Type))
		set(fmt.Sprintf("C%d", row), finance.FormatCurrency(e.Amount))
		set(fmt.Sprintf("D%d", row), e.Description)
		set(fmt.Sprintf("E%d", row), paymentSourceLabel(e.PaymentSource))
		set(fmt.Sprintf("F%d", row), settlementLabel(e))
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 22)
	_ = file.SetColWidth(sheet, "C", "C", 16)
	_ = file.SetColWidth(sheet, "D", "D", 44)
	_ = file.SetColWidth(sheet, "E", "F", 24)
	return nil
}

func (g *Generator) writeAdvances(file *excelize.File, sheet string, report *service.ObjectReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Дата", "Рабочий", "Вид работ", "Сумма"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, a := range report.Object.Advances {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), a.Date.Format("02.01.2006"))
		set(fmt.Sprintf("B%d", row), a.WorkerName)
		set(fmt.Sprintf("C%d", row), a.WorkTypeOrDefault())
		set(fmt.Sprintf("D%d", row), finance.FormatCurrency(a.Amount))
	}

	groupRow := 3 + len(report.Object.Advances)
	set(fmt.Sprintf("A%d", groupRow), "Итого по рабочим")
	for i, group := range report.Advances {
		row := groupRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.WorkerName)
		set(fmt.Sprintf("B%d", row), finance.FormatCurrency(group.Amount))
		set(fmt.Sprintf("C%d", row), group.Count)
	}

	totalRow := groupRow + len(report.Advances) + 1
	set(fmt.Sprintf("A%d", totalRow), "Итого")
	set(fmt.Sprintf("B%d", totalRow), finance.FormatCurrency(report.TotalAdvances))

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "C", 28)
	_ = file.SetColWidth(sheet, "D", "D", 18)
	return nil
}

func statusLabel(status model.ObjectStatus) string {
	if status == model.ObjectStatusCompleted {
		return "Завершенный"
	}
	return "Текущий"
}

func expenseTypeLabel(t model.ExpenseType) string {
	switch t {
	case model.ExpenseTypeSupplies:
		return "Расходники"
	case model.ExpenseTypeTransport:
		return "Транспортные услуги"
	case model.ExpenseTypeOverhead:
		return "Накладные расходы"
	default:
		return string(t)
	}
}

func paymentSourceLabel(source model.PaymentSource) string {
	if source == model.PaymentSourcePersonal {
		return "Личные средства"
	}
	return "Карта фирмы"
}

func settlementLabel(e model.Expense) string {
	switch finance.SettlementOf(e) {
	case finance.OwedToForeman:
		return "Долг бригадиру"
	case finance.Reimbursed:
		return "Компенсация произведена"
	default:
		return "—"
	}
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02.01.2006")
}
