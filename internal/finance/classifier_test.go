package finance

import (
	"errors"
	"testing"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

func personalExpense(t model.ExpenseType, amount string, status model.CompensationStatus) model.Expense {
	return model.Expense{
		Type:               t,
		Amount:             dec(amount),
		PaymentSource:      model.PaymentSourcePersonal,
		CompensationStatus: &status,
	}
}

func TestClassify(t *testing.T) {
	expenses := []model.Expense{
		expense(model.ExpenseTypeSupplies, "10000"),
		personalExpense(model.ExpenseTypeSupplies, "5000", model.CompensationPending),
		personalExpense(model.ExpenseTypeSupplies, "3000", model.CompensationCompensated),
		expense(model.ExpenseTypeTransport, "2000"),
	}

	groups := Classify(expenses)
	if len(groups) != 2 {
		t.Fatalf("Classify returned %d groups, want 2", len(groups))
	}

	supplies := groups[0]
	if supplies.Type != model.ExpenseTypeSupplies {
		t.Fatalf("first group type = %s, want supplies", supplies.Type)
	}
	if !supplies.Amount.Equal(dec("18000")) || supplies.Count != 3 {
		t.Errorf("supplies totals = %s/%d, want 18000/3", supplies.Amount, supplies.Count)
	}
	if !supplies.Split.CompanyAmount.Equal(dec("10000")) || supplies.Split.CompanyCount != 1 {
		t.Errorf("company split = %s/%d, want 10000/1", supplies.Split.CompanyAmount, supplies.Split.CompanyCount)
	}
	if !supplies.Split.PendingAmount.Equal(dec("5000")) || supplies.Split.PendingCount != 1 {
		t.Errorf("pending split = %s/%d, want 5000/1", supplies.Split.PendingAmount, supplies.Split.PendingCount)
	}
	if !supplies.Split.CompensatedAmount.Equal(dec("3000")) || supplies.Split.CompensatedCount != 1 {
		t.Errorf("compensated split = %s/%d, want 3000/1", supplies.Split.CompensatedAmount, supplies.Split.CompensatedCount)
	}

	transport := groups[1]
	if transport.Type != model.ExpenseTypeTransport || !transport.Amount.Equal(dec("2000")) {
		t.Errorf("transport group = %s/%s, want transport/2000", transport.Type, transport.Amount)
	}
}

func TestSettlementOf(t *testing.T) {
	pending := model.CompensationPending
	compensated := model.CompensationCompensated

	tests := []struct {
		name    string
		expense model.Expense
		want    Settlement
	}{
		{
			name:    "company card",
			expense: model.Expense{PaymentSource: model.PaymentSourceCompany},
			want:    SettledByCompany,
		},
		{
			name: "personal pending",
			expense: model.Expense{
				PaymentSource:      model.PaymentSourcePersonal,
				CompensationStatus: &pending,
			},
			want: OwedToForeman,
		},
		{
			name: "personal compensated",
			expense: model.Expense{
				PaymentSource:      model.PaymentSourcePersonal,
				CompensationStatus: &compensated,
			},
			want: Reimbursed,
		},
		{
			name:    "personal with missing status treated as pending",
			expense: model.Expense{PaymentSource: model.PaymentSourcePersonal},
			want:    OwedToForeman,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettlementOf(tt.expense); got != tt.want {
				t.Errorf("SettlementOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateCompensation(t *testing.T) {
	pending := model.CompensationPending
	compensated := model.CompensationCompensated

	tests := []struct {
		name    string
		expense model.Expense
		wantErr error
	}{
		{
			name: "pending personal expense passes",
			expense: model.Expense{
				PaymentSource:      model.PaymentSourcePersonal,
				CompensationStatus: &pending,
			},
		},
		{
			name:    "company expense is rejected",
			expense: model.Expense{PaymentSource: model.PaymentSourceCompany},
			wantErr: ErrCompanyPaid,
		},
		{
			name: "second compensation is rejected",
			expense: model.Expense{
				PaymentSource:      model.PaymentSourcePersonal,
				CompensationStatus: &compensated,
			},
			wantErr: ErrAlreadyCompensated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompensation(tt.expense)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCompensation() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGroupAdvances(t *testing.T) {
	advances := []model.Advance{
		{WorkerName: "Петров", Amount: dec("10000")},
		{WorkerName: "Иванов", Amount: dec("15000")},
		{WorkerName: "Иванов", Amount: dec("5000")},
	}

	groups := GroupAdvances(advances)
	if len(groups) != 2 {
		t.Fatalf("GroupAdvances returned %d groups, want 2", len(groups))
	}
	if groups[0].WorkerName != "Иванов" || !groups[0].Amount.Equal(dec("20000")) || groups[0].Count != 2 {
		t.Errorf("first group = %+v, want Иванов/20000/2", groups[0])
	}
	if groups[1].WorkerName != "Петров" || !groups[1].Amount.Equal(dec("10000")) {
		t.Errorf("second group = %+v, want Петров/10000", groups[1])
	}
}
