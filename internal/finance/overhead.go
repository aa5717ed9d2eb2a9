package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

// OverheadTotals is the company-wide expense total for a date range.
type OverheadTotals struct {
	OneTime   decimal.Decimal
	Recurring decimal.Decimal
	Total     decimal.Decimal
}

// CalculateOverhead combines one-off company expenses falling inside the
// inclusive [start, end] range with the projected occurrences of active
// recurring templates. Recurring costs are counted by month overlap, not by
// generating synthetic payment rows.
func CalculateOverhead(
	start, end time.Time,
	oneTime []model.CompanyExpense,
	recurring []model.CompanyRecurringExpense,
) OverheadTotals {
	oneTimeTotal := decimal.Zero
	for _, e := range oneTime {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		oneTimeTotal = oneTimeTotal.Add(e.Amount)
	}

	recurringTotal := decimal.Zero
	for _, tpl := range recurring {
		months := RecurringMonths(tpl, start, end)
		if months == 0 {
			continue
		}
		recurringTotal = recurringTotal.Add(tpl.Amount.Mul(decimal.NewFromInt(int64(months))))
	}

	return OverheadTotals{
		OneTime:   oneTimeTotal,
		Recurring: recurringTotal,
		Total:     oneTimeTotal.Add(recurringTotal),
	}
}

// RecurringMonths counts the calendar months in which the template is due
// within the inclusive query range. Months are compared as year*12+month
// indices so ranges crossing a year boundary need no special casing. An
// inactive template contributes nothing.
func RecurringMonths(tpl model.CompanyRecurringExpense, start, end time.Time) int {
	if !tpl.IsActive {
		return 0
	}

	queryStart := monthIndex(start.Year(), start.Month())
	queryEnd := monthIndex(end.Year(), end.Month())
	if queryStart > queryEnd {
		return 0
	}

	tplStart := monthIndex(tpl.StartYear, time.Month(tpl.StartMonth))
	overlapStart := tplStart
	if queryStart > overlapStart {
		overlapStart = queryStart
	}

	overlapEnd := queryEnd
	if tpl.EndYear != nil && tpl.EndMonth != nil {
		tplEnd := monthIndex(*tpl.EndYear, time.Month(*tpl.EndMonth))
		if tplEnd < overlapEnd {
			overlapEnd = tplEnd
		}
	}

	if overlapEnd < overlapStart {
		return 0
	}
	return overlapEnd - overlapStart + 1
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month)
}
