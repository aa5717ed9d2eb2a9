// Package report renders computed financial results into the plain-text
// blocks sent to chat. All styling lives here; the finance package produces
// numbers only.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

const divider = "━━━━━━━━━━━━━━━━━━━"

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02.01.2006")
}

func formatDelta(value decimal.Decimal) string {
	switch {
	case value.IsPositive():
		return "+" + finance.FormatCurrency(value)
	case value.IsNegative():
		return finance.FormatCurrency(value)
	default:
		return finance.FormatCurrency(decimal.Zero)
	}
}

func settlementLabel(split finance.SourceSplit) []string {
	var lines []string
	if split.CompanyCount > 0 {
		lines = append(lines, fmt.Sprintf("   оплачено картой фирмы: %s (%d шт.)",
			finance.FormatCurrency(split.CompanyAmount), split.CompanyCount))
	}
	if split.PendingCount > 0 {
		lines = append(lines, fmt.Sprintf("   долг бригадиру: %s (%d шт.)",
			finance.FormatCurrency(split.PendingAmount), split.PendingCount))
	}
	if split.CompensatedCount > 0 {
		lines = append(lines, fmt.Sprintf("   компенсация произведена: %s (%d шт.)",
			finance.FormatCurrency(split.CompensatedAmount), split.CompensatedCount))
	}
	return lines
}

func typeLabel(t model.ExpenseType) string {
	switch t {
	case model.ExpenseTypeSupplies:
		return "РАСХОДНИКИ"
	case model.ExpenseTypeTransport:
		return "ТРАНСПОРТНЫЕ УСЛУГИ"
	case model.ExpenseTypeOverhead:
		return "НАКЛАДНЫЕ РАСХОДЫ"
	default:
		return strings.ToUpper(string(t))
	}
}

// RenderObjectReport builds the full per-object financial report text.
func RenderObjectReport(r *service.ObjectReport) string {
	obj := r.Object
	fin := r.Finance

	lines := []string{
		fmt.Sprintf("ОБЪЕКТ: %s", obj.Name),
		fmt.Sprintf("Адрес: %s", orDash(obj.Address)),
		fmt.Sprintf("Бригадир: %s", orDash(obj.ForemanName)),
		fmt.Sprintf("Период: %s — %s", formatDate(obj.StartDate), formatDate(obj.EndDate)),
		"",
		divider,
		"",
		"ФИНАНСЫ",
		"",
		fmt.Sprintf("Предоплата: %s", finance.FormatCurrency(fin.Prepayment)),
		fmt.Sprintf("Окончательная оплата: %s", finance.FormatCurrency(fin.FinalPayment)),
		fmt.Sprintf("Всего поступлений: %s", finance.FormatCurrency(fin.TotalIncome)),
		"",
		divider,
		"",
		"ОБЛИЦОВКА С3",
		"",
		fmt.Sprintf("По смете: %s", finance.FormatCurrency(fin.EstimateS3)),
		fmt.Sprintf("Со скидкой: %s", finance.FormatCurrency(fin.ActualS3Discount)),
		fmt.Sprintf("Разница: %s", formatDelta(fin.S3Difference)),
		"",
		divider,
		"",
		"РАБОТЫ",
		"",
		fmt.Sprintf("По смете: %s", finance.FormatCurrency(fin.EstimateWorks)),
		fmt.Sprintf("ФЗП мастера (45%%): %s", finance.FormatCurrency(fin.FZPMaster)),
		fmt.Sprintf("ФЗП бригадира (10%%): %s", finance.FormatCurrency(fin.FZPForeman)),
		fmt.Sprintf("Выдано на данный момент: %s", finance.FormatCurrency(r.TotalAdvances)),
		fmt.Sprintf("Прибыль фирмы: %s", formatDelta(fin.WorkProfit)),
	}

	sections := []struct {
		label      string
		estimate   decimal.Decimal
		fact       decimal.Decimal
		difference decimal.Decimal
		expType    model.ExpenseType
	}{
		{"РАСХОДНИКИ", fin.EstimateSupplies, fin.SuppliesFact, fin.SuppliesDifference, model.ExpenseTypeSupplies},
		{"НАКЛАДНЫЕ РАСХОДЫ", fin.EstimateOverhead, fin.OverheadFact, fin.OverheadDifference, model.ExpenseTypeOverhead},
		{"ТРАНСПОРТНЫЕ УСЛУГИ", fin.EstimateTransport, fin.TransportFact, fin.TransportDifference, model.ExpenseTypeTransport},
	}
	for _, section := range sections {
		lines = append(lines,
			"",
			divider,
			"",
			section.label,
			"",
			fmt.Sprintf("По смете: %s", finance.FormatCurrency(section.estimate)),
			fmt.Sprintf("Потрачено по факту: %s", finance.FormatCurrency(section.fact)),
			fmt.Sprintf("Разница: %s", formatDelta(section.difference)),
		)
		for _, group := range r.Expenses {
			if group.Type == section.expType {
				lines = append(lines, settlementLabel(group.Split)...)
			}
		}
	}

	lines = append(lines,
		"",
		divider,
		"",
		"ИТОГОВЫЕ ПОКАЗАТЕЛИ",
		"",
		fmt.Sprintf("Общие доходы: %s", finance.FormatCurrency(fin.TotalIncome)),
		fmt.Sprintf("Прибыль: %s", formatDelta(fin.TotalProfit)),
		fmt.Sprintf("Рентабельность: %s", finance.FormatPercentage(fin.Profitability)),
	)

	return strings.Join(lines, "\n")
}

// RenderShortCard builds the compact object card for list views.
func RenderShortCard(obj model.ConstructionObject) string {
	statusText := "Текущий"
	if obj.Status == model.ObjectStatusCompleted {
		statusText = "Завершенный"
	}
	budget := obj.Prepayment.Add(obj.FinalPayment)

	return strings.Join([]string{
		obj.Name,
		fmt.Sprintf("Адрес: %s", orDash(obj.Address)),
		fmt.Sprintf("Бригадир: %s", orDash(obj.ForemanName)),
		fmt.Sprintf("%s — %s", formatDate(obj.StartDate), formatDate(obj.EndDate)),
		fmt.Sprintf("Бюджет: %s", finance.FormatCurrency(budget)),
		fmt.Sprintf("Статус: %s", statusText),
	}, "\n")
}

// RenderPeriodReport builds the period summary text.
func RenderPeriodReport(summary *finance.PeriodSummary, periodLabel string) string {
	if summary.ObjectCount == 0 && summary.CompanyOverhead.Total.IsZero() {
		return fmt.Sprintf("Отчет за %s\n\nНет данных за указанный период.", periodLabel)
	}

	lines := []string{
		fmt.Sprintf("СВОДНЫЙ ОТЧЕТ ЗА %s", strings.ToUpper(periodLabel)),
		divider,
		"",
		"Общие показатели:",
		fmt.Sprintf("Количество объектов: %d", summary.ObjectCount),
		fmt.Sprintf("Общий доход: %s", finance.FormatCurrency(summary.TotalIncome)),
		fmt.Sprintf("Расходы фирмы: %s", finance.FormatCurrency(summary.CompanyOverhead.Total)),
		fmt.Sprintf("Общая прибыль: %s", finance.FormatCurrency(summary.AdjustedProfit)),
		fmt.Sprintf("Средняя рентабельность: %s", finance.FormatPercentage(summary.AvgProfitability)),
		"",
		divider,
		"",
		"Расходы фирмы:",
		fmt.Sprintf("   разовые: %s", finance.FormatCurrency(summary.CompanyOverhead.OneTime)),
		fmt.Sprintf("   ежемесячные: %s", finance.FormatCurrency(summary.CompanyOverhead.Recurring)),
		"",
		divider,
		"",
		"Список объектов:",
	}

	if len(summary.Objects) == 0 {
		lines = append(lines, "", "Нет объектов за период.")
	}
	for i, obj := range summary.Objects {
		lines = append(lines,
			"",
			fmt.Sprintf("%d. %s", i+1, obj.Name),
			fmt.Sprintf("   Прибыль: %s", finance.FormatCurrency(obj.Finance.TotalProfit)),
			fmt.Sprintf("   Рентабельность: %s", finance.FormatPercentage(obj.Finance.Profitability)),
		)
	}

	return strings.Join(lines, "\n")
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "—"
	}
	return *s
}
