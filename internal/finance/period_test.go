package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func objectResult(name, income, profit string) ObjectResult {
	return ObjectResult{
		Name: name,
		Finance: ObjectFinance{
			TotalIncome: dec(income),
			TotalProfit: dec(profit),
		},
	}
}

func TestSummarizePeriod(t *testing.T) {
	objects := []ObjectResult{
		objectResult("Коттедж на Лесной", "100000", "10000"),
		objectResult("Дом на Садовой", "50000", "-2000"),
	}
	overhead := OverheadTotals{
		OneTime:   dec("1000"),
		Recurring: dec("2000"),
		Total:     dec("3000"),
	}

	summary := SummarizePeriod(objects, overhead)

	if summary.ObjectCount != 2 {
		t.Errorf("ObjectCount = %d, want 2", summary.ObjectCount)
	}
	if !summary.TotalIncome.Equal(dec("150000")) {
		t.Errorf("TotalIncome = %s, want 150000", summary.TotalIncome)
	}
	if !summary.ObjectProfit.Equal(dec("8000")) {
		t.Errorf("ObjectProfit = %s, want 8000", summary.ObjectProfit)
	}
	if !summary.AdjustedProfit.Equal(dec("5000")) {
		t.Errorf("AdjustedProfit = %s, want 5000", summary.AdjustedProfit)
	}

	want := dec("5000").Div(dec("150000")).Mul(decimal.NewFromInt(100))
	if !summary.AvgProfitability.Equal(want) {
		t.Errorf("AvgProfitability = %s, want %s", summary.AvgProfitability, want)
	}
	if len(summary.Objects) != 2 || summary.Objects[0].Name != "Коттедж на Лесной" {
		t.Errorf("object lines not carried through: %+v", summary.Objects)
	}
}

func TestSummarizePeriod_ZeroIncome(t *testing.T) {
	objects := []ObjectResult{
		objectResult("Без поступлений", "0", "-5000"),
	}

	summary := SummarizePeriod(objects, OverheadTotals{
		OneTime:   decimal.Zero,
		Recurring: decimal.Zero,
		Total:     decimal.Zero,
	})

	if !summary.AvgProfitability.IsZero() {
		t.Errorf("AvgProfitability = %s, want 0 for zero income", summary.AvgProfitability)
	}
}

func TestSummarizePeriod_Empty(t *testing.T) {
	summary := SummarizePeriod(nil, OverheadTotals{
		OneTime:   decimal.Zero,
		Recurring: dec("4000"),
		Total:     dec("4000"),
	})

	if summary.ObjectCount != 0 {
		t.Errorf("ObjectCount = %d, want 0", summary.ObjectCount)
	}
	if !summary.AdjustedProfit.Equal(dec("-4000")) {
		t.Errorf("AdjustedProfit = %s, want -4000", summary.AdjustedProfit)
	}
}
