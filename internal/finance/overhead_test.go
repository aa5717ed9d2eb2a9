package finance

import (
	"testing"
	"time"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func template(amount string, startMonth, startYear int) model.CompanyRecurringExpense {
	return model.CompanyRecurringExpense{
		Category:   "аренда",
		Amount:     dec(amount),
		DayOfMonth: 1,
		StartMonth: startMonth,
		StartYear:  startYear,
		IsActive:   true,
	}
}

func boundedTemplate(amount string, startMonth, startYear, endMonth, endYear int) model.CompanyRecurringExpense {
	tpl := template(amount, startMonth, startYear)
	tpl.EndMonth = &endMonth
	tpl.EndYear = &endYear
	return tpl
}

func TestRecurringMonths(t *testing.T) {
	tests := []struct {
		name       string
		tpl        model.CompanyRecurringExpense
		start, end time.Time
		want       int
	}{
		{
			name:  "open-ended starting mid-range",
			tpl:   template("3000", 3, 2025),
			start: date(2025, time.January, 1),
			end:   date(2025, time.March, 31),
			want:  1,
		},
		{
			name:  "ended before the query range",
			tpl:   boundedTemplate("1000", 1, 2024, 6, 2024),
			start: date(2025, time.January, 1),
			end:   date(2025, time.December, 31),
			want:  0,
		},
		{
			name:  "starting after the query range",
			tpl:   template("1000", 7, 2025),
			start: date(2025, time.January, 1),
			end:   date(2025, time.June, 30),
			want:  0,
		},
		{
			name:  "full year overlap",
			tpl:   template("1000", 1, 2024),
			start: date(2025, time.January, 1),
			end:   date(2025, time.December, 31),
			want:  12,
		},
		{
			name:  "cross-year range",
			tpl:   template("1000", 11, 2024),
			start: date(2024, time.October, 1),
			end:   date(2025, time.February, 28),
			want:  4,
		},
		{
			name:  "ends mid-range",
			tpl:   boundedTemplate("1000", 1, 2025, 4, 2025),
			start: date(2025, time.March, 1),
			end:   date(2025, time.December, 31),
			want:  2,
		},
		{
			name: "inactive template contributes nothing",
			tpl: model.CompanyRecurringExpense{
				Amount:     dec("1000"),
				StartMonth: 1,
				StartYear:  2025,
				IsActive:   false,
			},
			start: date(2025, time.January, 1),
			end:   date(2025, time.December, 31),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecurringMonths(tt.tpl, tt.start, tt.end); got != tt.want {
				t.Errorf("RecurringMonths() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateOverhead(t *testing.T) {
	oneTime := []model.CompanyExpense{
		{Amount: dec("5000"), Date: date(2025, time.February, 10)},
		{Amount: dec("2500"), Date: date(2025, time.March, 31)},
		{Amount: dec("9999"), Date: date(2025, time.April, 1)}, // outside
	}
	recurring := []model.CompanyRecurringExpense{
		template("3000", 3, 2025),
	}

	totals := CalculateOverhead(date(2025, time.January, 1), date(2025, time.March, 31), oneTime, recurring)

	if !totals.OneTime.Equal(dec("7500")) {
		t.Errorf("OneTime = %s, want 7500", totals.OneTime)
	}
	if !totals.Recurring.Equal(dec("3000")) {
		t.Errorf("Recurring = %s, want 3000", totals.Recurring)
	}
	if !totals.Total.Equal(dec("10500")) {
		t.Errorf("Total = %s, want 10500", totals.Total)
	}
}

// Splitting a year into two half-year queries must total the same as querying
// the whole year at once.
func TestCalculateOverhead_Additivity(t *testing.T) {
	recurring := []model.CompanyRecurringExpense{
		template("1000", 1, 2024),
		boundedTemplate("500", 4, 2025, 9, 2025),
	}

	firstHalf := CalculateOverhead(date(2025, time.January, 1), date(2025, time.June, 30), nil, recurring)
	secondHalf := CalculateOverhead(date(2025, time.July, 1), date(2025, time.December, 31), nil, recurring)
	fullYear := CalculateOverhead(date(2025, time.January, 1), date(2025, time.December, 31), nil, recurring)

	combined := firstHalf.Total.Add(secondHalf.Total)
	if !combined.Equal(fullYear.Total) {
		t.Errorf("half-year totals %s + %s != full year %s", firstHalf.Total, secondHalf.Total, fullYear.Total)
	}
}
