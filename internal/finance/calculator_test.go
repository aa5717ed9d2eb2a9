package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(t model.ExpenseType, amount string) model.Expense {
	return model.Expense{
		Type:          t,
		Amount:        dec(amount),
		PaymentSource: model.PaymentSourceCompany,
	}
}

func TestCalculateObject_NoExpenses(t *testing.T) {
	obj := model.ConstructionObject{
		Prepayment:        dec("300000"),
		FinalPayment:      dec("200000"),
		EstimateS3:        dec("150000"),
		ActualS3Discount:  dec("150000"),
		EstimateWorks:     dec("100000"),
		EstimateSupplies:  dec("40000"),
		EstimateOverhead:  dec("20000"),
		EstimateTransport: dec("10000"),
	}

	result := CalculateObject(obj, nil)

	if !result.TotalIncome.Equal(dec("500000")) {
		t.Errorf("TotalIncome = %s, want 500000", result.TotalIncome)
	}
	if !result.S3Difference.IsZero() {
		t.Errorf("S3Difference = %s, want 0", result.S3Difference)
	}
	if !result.FZPMaster.Equal(dec("45000")) {
		t.Errorf("FZPMaster = %s, want 45000", result.FZPMaster)
	}
	if !result.FZPForeman.Equal(dec("10000")) {
		t.Errorf("FZPForeman = %s, want 10000", result.FZPForeman)
	}
	if !result.WorkProfit.Equal(dec("45000")) {
		t.Errorf("WorkProfit = %s, want 45000", result.WorkProfit)
	}

	// No expenses: each difference equals its full estimate.
	wantProfit := dec("40000").Add(dec("20000")).Add(dec("10000")).Add(dec("45000"))
	if !result.TotalProfit.Equal(wantProfit) {
		t.Errorf("TotalProfit = %s, want %s", result.TotalProfit, wantProfit)
	}
}

func TestCalculateObject_S3Discount(t *testing.T) {
	obj := model.ConstructionObject{
		EstimateS3:       dec("200000"),
		ActualS3Discount: dec("180000"),
	}

	result := CalculateObject(obj, nil)

	if !result.S3Difference.Equal(dec("20000")) {
		t.Errorf("S3Difference = %s, want 20000", result.S3Difference)
	}
}

func TestCalculateObject_FactSumsAndDifferences(t *testing.T) {
	obj := model.ConstructionObject{
		Prepayment:        dec("100000"),
		EstimateSupplies:  dec("50000"),
		EstimateOverhead:  dec("10000"),
		EstimateTransport: dec("5000"),
	}
	expenses := []model.Expense{
		expense(model.ExpenseTypeSupplies, "30000"),
		expense(model.ExpenseTypeSupplies, "25000"),
		expense(model.ExpenseTypeTransport, "7000"),
		expense(model.ExpenseTypeOverhead, "4000"),
	}

	result := CalculateObject(obj, expenses)

	if !result.SuppliesFact.Equal(dec("55000")) {
		t.Errorf("SuppliesFact = %s, want 55000", result.SuppliesFact)
	}
	// Overspend yields a negative difference.
	if !result.SuppliesDifference.Equal(dec("-5000")) {
		t.Errorf("SuppliesDifference = %s, want -5000", result.SuppliesDifference)
	}
	if !result.TransportDifference.Equal(dec("-2000")) {
		t.Errorf("TransportDifference = %s, want -2000", result.TransportDifference)
	}
	if !result.OverheadDifference.Equal(dec("6000")) {
		t.Errorf("OverheadDifference = %s, want 6000", result.OverheadDifference)
	}
}

func TestCalculateObject_ProfitIdentity(t *testing.T) {
	obj := model.ConstructionObject{
		Prepayment:        dec("700000"),
		FinalPayment:      dec("150000.50"),
		EstimateS3:        dec("200000"),
		ActualS3Discount:  dec("171500.25"),
		EstimateWorks:     dec("333333.33"),
		EstimateSupplies:  dec("80000"),
		EstimateOverhead:  dec("25000"),
		EstimateTransport: dec("12000"),
	}
	expenses := []model.Expense{
		expense(model.ExpenseTypeSupplies, "81234.56"),
		expense(model.ExpenseTypeOverhead, "10000.01"),
		expense(model.ExpenseTypeTransport, "11999.99"),
	}

	result := CalculateObject(obj, expenses)

	sum := result.S3Difference.
		Add(result.WorkProfit).
		Add(result.SuppliesDifference).
		Add(result.OverheadDifference).
		Add(result.TransportDifference)
	if !result.TotalProfit.Equal(sum) {
		t.Errorf("TotalProfit = %s, want sum of parts %s", result.TotalProfit, sum)
	}

	fzpAndProfit := result.FZPMaster.Add(result.FZPForeman).Add(result.WorkProfit)
	if !fzpAndProfit.Equal(obj.EstimateWorks) {
		t.Errorf("FZPMaster+FZPForeman+WorkProfit = %s, want %s", fzpAndProfit, obj.EstimateWorks)
	}

	wantExpenses := obj.ActualS3Discount.
		Add(result.FZPTotal).
		Add(result.SuppliesFact).
		Add(result.OverheadFact).
		Add(result.TransportFact)
	if !result.TotalExpenses.Equal(wantExpenses) {
		t.Errorf("TotalExpenses = %s, want %s", result.TotalExpenses, wantExpenses)
	}
}

func TestCalculateObject_Profitability(t *testing.T) {
	tests := []struct {
		name       string
		prepayment string
		estimateS3 string
		want       string
	}{
		{name: "positive income", prepayment: "200000", estimateS3: "50000", want: "25"},
		{name: "zero income yields zero", prepayment: "0", estimateS3: "50000", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := model.ConstructionObject{
				Prepayment: dec(tt.prepayment),
				EstimateS3: dec(tt.estimateS3),
				// ActualS3Discount zero: profit equals the estimate.
			}
			result := CalculateObject(obj, nil)
			if !result.Profitability.Equal(dec(tt.want)) {
				t.Errorf("Profitability = %s, want %s", result.Profitability, tt.want)
			}
		})
	}
}

func TestTotalAdvances(t *testing.T) {
	advances := []model.Advance{
		{WorkerName: "Иванов", Amount: dec("15000")},
		{WorkerName: "Петров", Amount: dec("10000")},
		{WorkerName: "Иванов", Amount: dec("5000")},
	}

	total := TotalAdvances(advances)
	if !total.Equal(dec("30000")) {
		t.Errorf("TotalAdvances = %s, want 30000", total)
	}
	if !TotalAdvances(nil).IsZero() {
		t.Error("TotalAdvances(nil) should be zero")
	}
}
