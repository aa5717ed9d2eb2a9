package finance

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

var (
	// ErrCompanyPaid is returned when compensation is requested for an
	// expense paid from the company card: there is nothing to pay back.
	ErrCompanyPaid = errors.New("expense was paid by the company")

	// ErrAlreadyCompensated is returned for a second compensation attempt.
	// The transition is terminal and must never double-apply.
	ErrAlreadyCompensated = errors.New("expense is already compensated")
)

// Settlement is the three-way settlement state of an expense.
type Settlement string

const (
	SettledByCompany Settlement = "company_card"
	OwedToForeman    Settlement = "owed_to_foreman"
	Reimbursed       Settlement = "reimbursed"
)

// SettlementOf maps payment source and compensation status to the settlement
// state. A personal expense with a missing status is treated as pending.
func SettlementOf(e model.Expense) Settlement {
	if e.PaymentSource == model.PaymentSourceCompany {
		return SettledByCompany
	}
	if e.CompensationStatus != nil && *e.CompensationStatus == model.CompensationCompensated {
		return Reimbursed
	}
	return OwedToForeman
}

// ValidateCompensation checks whether an expense may transition to
// compensated. It is the only gate in front of the persisted update.
func ValidateCompensation(e model.Expense) error {
	if e.PaymentSource == model.PaymentSourceCompany {
		return ErrCompanyPaid
	}
	if e.CompensationStatus != nil && *e.CompensationStatus == model.CompensationCompensated {
		return ErrAlreadyCompensated
	}
	return nil
}

// SourceSplit breaks one expense type down by payment source and settlement.
type SourceSplit struct {
	CompanyAmount decimal.Decimal
	CompanyCount  int

	PendingAmount decimal.Decimal
	PendingCount  int

	CompensatedAmount decimal.Decimal
	CompensatedCount  int
}

type TypeTotals struct {
	Type   model.ExpenseType
	Amount decimal.Decimal
	Count  int
	Split  SourceSplit
}

// Classify groups expenses by type, producing per-type totals with the
// company/personal and pending/compensated split used by reporting views.
// Types with no expenses are omitted.
func Classify(expenses []model.Expense) []TypeTotals {
	byType := make(map[model.ExpenseType]*TypeTotals)
	for _, e := range expenses {
		totals, ok := byType[e.Type]
		if !ok {
			totals = &TypeTotals{
				Type:   e.Type,
				Amount: decimal.Zero,
				Split: SourceSplit{
					CompanyAmount:     decimal.Zero,
					PendingAmount:     decimal.Zero,
					CompensatedAmount: decimal.Zero,
				},
			}
			byType[e.Type] = totals
		}
		totals.Amount = totals.Amount.Add(e.Amount)
		totals.Count++

		switch SettlementOf(e) {
		case SettledByCompany:
			totals.Split.CompanyAmount = totals.Split.CompanyAmount.Add(e.Amount)
			totals.Split.CompanyCount++
		case OwedToForeman:
			totals.Split.PendingAmount = totals.Split.PendingAmount.Add(e.Amount)
			totals.Split.PendingCount++
		case Reimbursed:
			totals.Split.CompensatedAmount = totals.Split.CompensatedAmount.Add(e.Amount)
			totals.Split.CompensatedCount++
		}
	}

	result := make([]TypeTotals, 0, len(byType))
	for _, totals := range byType {
		result = append(result, *totals)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// SumByType totals the amounts of one expense type.
func SumByType(expenses []model.Expense, t model.ExpenseType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Type == t {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// WorkerAdvances carries per-worker advance totals for listing.
type WorkerAdvances struct {
	WorkerName string
	Amount     decimal.Decimal
	Count      int
}

// GroupAdvances totals advances per worker, sorted by worker name.
func GroupAdvances(advances []model.Advance) []WorkerAdvances {
	byWorker := make(map[string]*WorkerAdvances)
	for _, a := range advances {
		group, ok := byWorker[a.WorkerName]
		if !ok {
			group = &WorkerAdvances{WorkerName: a.WorkerName, Amount: decimal.Zero}
			byWorker[a.WorkerName] = group
		}
		group.Amount = group.Amount.Add(a.Amount)
		group.Count++
	}

	result := make([]WorkerAdvances, 0, len(byWorker))
	for _, group := range byWorker {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkerName < result[j].WorkerName })
	return result
}
