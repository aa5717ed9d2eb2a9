package finance

import (
	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

// ObjectFinance is the full profitability breakdown for one construction
// object. Every estimate line contributes its budget-vs-actual difference to
// the total profit; the works line retains 45% of the budget as company
// margin, with 55% paid out as crew payroll (master 45% + foreman 10%).
type ObjectFinance struct {
	Prepayment   decimal.Decimal
	FinalPayment decimal.Decimal
	TotalIncome  decimal.Decimal

	EstimateS3       decimal.Decimal
	ActualS3Discount decimal.Decimal
	S3Difference     decimal.Decimal

	EstimateWorks decimal.Decimal
	FZPMaster     decimal.Decimal
	FZPForeman    decimal.Decimal
	FZPTotal      decimal.Decimal
	WorkProfit    decimal.Decimal

	EstimateSupplies   decimal.Decimal
	SuppliesFact       decimal.Decimal
	SuppliesDifference decimal.Decimal

	EstimateOverhead   decimal.Decimal
	OverheadFact       decimal.Decimal
	OverheadDifference decimal.Decimal

	EstimateTransport   decimal.Decimal
	TransportFact       decimal.Decimal
	TransportDifference decimal.Decimal

	TotalExpenses decimal.Decimal
	TotalProfit   decimal.Decimal
	Profitability decimal.Decimal
}

// CalculateObject computes the profitability breakdown from the object's
// estimate fields and its expense records. It is a pure function: inputs are
// assumed well-formed and are never mutated.
func CalculateObject(obj model.ConstructionObject, expenses []model.Expense) ObjectFinance {
	totalIncome := obj.Prepayment.Add(obj.FinalPayment)

	s3Difference := obj.EstimateS3.Sub(obj.ActualS3Discount)

	fzpMaster := obj.EstimateWorks.Mul(fzpMasterRate)
	fzpForeman := obj.EstimateWorks.Mul(fzpForemanRate)
	fzpTotal := fzpMaster.Add(fzpForeman)
	workProfit := obj.EstimateWorks.Sub(fzpTotal)

	suppliesFact := SumByType(expenses, model.ExpenseTypeSupplies)
	transportFact := SumByType(expenses, model.ExpenseTypeTransport)
	overheadFact := SumByType(expenses, model.ExpenseTypeOverhead)

	suppliesDifference := obj.EstimateSupplies.Sub(suppliesFact)
	overheadDifference := obj.EstimateOverhead.Sub(overheadFact)
	transportDifference := obj.EstimateTransport.Sub(transportFact)

	totalProfit := s3Difference.
		Add(workProfit).
		Add(suppliesDifference).
		Add(overheadDifference).
		Add(transportDifference)

	totalExpenses := obj.ActualS3Discount.
		Add(fzpTotal).
		Add(suppliesFact).
		Add(overheadFact).
		Add(transportFact)

	profitability := Ratio(totalProfit, totalIncome).Mul(hundred)

	return ObjectFinance{
		Prepayment:   obj.Prepayment,
		FinalPayment: obj.FinalPayment,
		TotalIncome:  totalIncome,

		EstimateS3:       obj.EstimateS3,
		ActualS3Discount: obj.ActualS3Discount,
		S3Difference:     s3Difference,

		EstimateWorks: obj.EstimateWorks,
		FZPMaster:     fzpMaster,
		FZPForeman:    fzpForeman,
		FZPTotal:      fzpTotal,
		WorkProfit:    workProfit,

		EstimateSupplies:   obj.EstimateSupplies,
		SuppliesFact:       suppliesFact,
		SuppliesDifference: suppliesDifference,

		EstimateOverhead:   obj.EstimateOverhead,
		OverheadFact:       overheadFact,
		OverheadDifference: overheadDifference,

		EstimateTransport:   obj.EstimateTransport,
		TransportFact:       transportFact,
		TransportDifference: transportDifference,

		TotalExpenses: totalExpenses,
		TotalProfit:   totalProfit,
		Profitability: profitability,
	}
}

// TotalAdvances sums all worker advances for display. Advances are a draw
// against the works payroll, not a profit deduction.
func TotalAdvances(advances []model.Advance) decimal.Decimal {
	total := decimal.Zero
	for _, advance := range advances {
		total = total.Add(advance.Amount)
	}
	return total
}
