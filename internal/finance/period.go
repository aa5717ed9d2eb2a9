package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObjectResult pairs one object's identity with its computed breakdown for
// period roll-ups.
type ObjectResult struct {
	ObjectID uuid.UUID
	Name     string
	Finance  ObjectFinance
}

// PeriodSummary rolls many object results and the company overhead total up
// into a single period report. Company overhead reduces the combined object
// profit; average profitability is computed over the adjusted figure.
type PeriodSummary struct {
	ObjectCount      int
	TotalIncome      decimal.Decimal
	ObjectProfit     decimal.Decimal
	CompanyOverhead  OverheadTotals
	AdjustedProfit   decimal.Decimal
	AvgProfitability decimal.Decimal
	Objects          []ObjectResult
}

// SummarizePeriod aggregates object results with the company overhead for the
// same period. Per-object line items are carried through unmodified.
func SummarizePeriod(objects []ObjectResult, overhead OverheadTotals) PeriodSummary {
	totalIncome := decimal.Zero
	objectProfit := decimal.Zero
	for _, obj := range objects {
		totalIncome = totalIncome.Add(obj.Finance.TotalIncome)
		objectProfit = objectProfit.Add(obj.Finance.TotalProfit)
	}

	adjustedProfit := objectProfit.Sub(overhead.Total)
	avgProfitability := Ratio(adjustedProfit, totalIncome).Mul(hundred)

	return PeriodSummary{
		ObjectCount:      len(objects),
		TotalIncome:      totalIncome,
		ObjectProfit:     objectProfit,
		CompanyOverhead:  overhead,
		AdjustedProfit:   adjustedProfit,
		AvgProfitability: avgProfitability,
		Objects:          objects,
	}
}
