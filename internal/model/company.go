package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyExpense is a one-off company cost not tied to any object.
type CompanyExpense struct {
	ID          uuid.UUID
	Category    string
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	AddedBy     *uuid.UUID
	CreatedAt   time.Time
}

func (CompanyExpense) TableName() string { return "company_expenses" }

// CompanyRecurringExpense is a template projecting one company cost per
// calendar month, from its start month until its end month (open-ended when
// the end is nil). It is a rule, not a materialized list of payments.
type CompanyRecurringExpense struct {
	ID          uuid.UUID
	Category    string
	Amount      decimal.Decimal
	DayOfMonth  int
	StartMonth  int
	StartYear   int
	EndMonth    *int
	EndYear     *int
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

func (CompanyRecurringExpense) TableName() string { return "company_recurring_expenses" }

// NextOccurrence finds the first payment date on or after the given day, or
// false when the template is inactive or its schedule has ended.
func (e CompanyRecurringExpense) NextOccurrence(from time.Time) (time.Time, bool) {
	if !e.IsActive {
		return time.Time{}, false
	}

	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	idx := from.Year()*12 + int(from.Month()) - 1
	if start := e.StartYear*12 + e.StartMonth - 1; idx < start {
		idx = start
	}
	end := -1
	if e.EndYear != nil && e.EndMonth != nil {
		end = *e.EndYear*12 + *e.EndMonth - 1
	}

	// At most two months are probed: the occurrence in the second month
	// always lands after from.
	for ; end < 0 || idx <= end; idx++ {
		occurrence := e.OccurrenceDate(idx/12, time.Month(idx%12+1))
		if !occurrence.Before(from) {
			return occurrence, true
		}
	}
	return time.Time{}, false
}

// OccurrenceDate materializes the concrete payment date for one month,
// clamping DayOfMonth to the last day of short months.
func (e CompanyRecurringExpense) OccurrenceDate(year int, month time.Month) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := e.DayOfMonth
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
