package model

import (
	"testing"
	"time"
)

func TestOccurrenceDate(t *testing.T) {
	tests := []struct {
		name       string
		dayOfMonth int
		year       int
		month      time.Month
		wantDay    int
	}{
		{name: "regular day", dayOfMonth: 15, year: 2024, month: time.March, wantDay: 15},
		{name: "clamped to short february", dayOfMonth: 31, year: 2023, month: time.February, wantDay: 28},
		{name: "leap february keeps 29", dayOfMonth: 29, year: 2024, month: time.February, wantDay: 29},
		{name: "clamped to thirty day month", dayOfMonth: 31, year: 2024, month: time.April, wantDay: 30},
		{name: "zero day falls back to first", dayOfMonth: 0, year: 2024, month: time.June, wantDay: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := CompanyRecurringExpense{DayOfMonth: tt.dayOfMonth}
			got := tpl.OccurrenceDate(tt.year, tt.month)

			if got.Day() != tt.wantDay {
				t.Errorf("OccurrenceDate(%d, %s).Day() = %d, want %d", tt.year, tt.month, got.Day(), tt.wantDay)
			}
			if got.Year() != tt.year || got.Month() != tt.month {
				t.Errorf("OccurrenceDate(%d, %s) = %s, wrong year or month", tt.year, tt.month, got)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		tpl     CompanyRecurringExpense
		from    time.Time
		want    time.Time
		wantDue bool
	}{
		{
			name:    "later this month",
			tpl:     CompanyRecurringExpense{DayOfMonth: 20, StartMonth: 1, StartYear: 2024, IsActive: true},
			from:    date(2024, time.March, 10),
			want:    date(2024, time.March, 20),
			wantDue: true,
		},
		{
			name:    "already passed rolls to next month",
			tpl:     CompanyRecurringExpense{DayOfMonth: 5, StartMonth: 1, StartYear: 2024, IsActive: true},
			from:    date(2024, time.March, 10),
			want:    date(2024, time.April, 5),
			wantDue: true,
		},
		{
			name:    "before schedule starts",
			tpl:     CompanyRecurringExpense{DayOfMonth: 10, StartMonth: 6, StartYear: 2024, IsActive: true},
			from:    date(2024, time.March, 1),
			want:    date(2024, time.June, 10),
			wantDue: true,
		},
		{
			name:    "clamped in short month",
			tpl:     CompanyRecurringExpense{DayOfMonth: 31, StartMonth: 1, StartYear: 2024, IsActive: true},
			from:    date(2024, time.February, 1),
			want:    date(2024, time.February, 29),
			wantDue: true,
		},
		{
			name: "schedule ended",
			tpl: CompanyRecurringExpense{
				DayOfMonth: 10, StartMonth: 1, StartYear: 2023,
				EndMonth: intPtr(12), EndYear: intPtr(2023), IsActive: true,
			},
			from:    date(2024, time.March, 1),
			wantDue: false,
		},
		{
			name:    "inactive template",
			tpl:     CompanyRecurringExpense{DayOfMonth: 10, StartMonth: 1, StartYear: 2024, IsActive: false},
			from:    date(2024, time.March, 1),
			wantDue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, due := tt.tpl.NextOccurrence(tt.from)
			if due != tt.wantDue {
				t.Fatalf("due = %v, want %v", due, tt.wantDue)
			}
			if due && !got.Equal(tt.want) {
				t.Errorf("NextOccurrence = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEnumScanNormalizesCase(t *testing.T) {
	var status ObjectStatus
	if err := status.Scan("ACTIVE"); err != nil {
		t.Fatalf("Scan(ACTIVE) failed: %v", err)
	}
	if status != ObjectStatusActive {
		t.Errorf("status = %q, want %q", status, ObjectStatusActive)
	}

	var typ ExpenseType
	if err := typ.Scan([]byte("Supplies")); err != nil {
		t.Fatalf("Scan(Supplies) failed: %v", err)
	}
	if typ != ExpenseTypeSupplies {
		t.Errorf("type = %q, want %q", typ, ExpenseTypeSupplies)
	}

	var source PaymentSource
	if err := source.Scan("invalid"); err == nil {
		t.Error("Scan(invalid) did not fail")
	}
}

func TestParseExpenseType(t *testing.T) {
	tests := []struct {
		input   string
		want    ExpenseType
		wantErr bool
	}{
		{input: "supplies", want: ExpenseTypeSupplies},
		{input: " Overhead ", want: ExpenseTypeOverhead},
		{input: "TRANSPORT", want: ExpenseTypeTransport},
		{input: "fuel", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExpenseType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseExpenseType(%q) did not fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExpenseType(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseExpenseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
