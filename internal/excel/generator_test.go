package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vxtzo/telegram-construction-bot/internal/finance"
	"github.com/vxtzo/telegram-construction-bot/internal/model"
	"github.com/vxtzo/telegram-construction-bot/internal/service"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGenerateAdvancesSheet(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	advances := []model.Advance{
		{WorkerName: "Петров", WorkType: "штукатурка", Amount: dec("10000"), Date: date},
		{WorkerName: "Сидоров", WorkType: "", Amount: dec("5000"), Date: date},
	}

	report := &service.ObjectReport{
		Object: model.ConstructionObject{
			Name:     "Коттедж Иванова",
			Status:   model.ObjectStatusActive,
			Advances: advances,
		},
		Advances:      finance.GroupAdvances(advances),
		TotalAdvances: finance.TotalAdvances(advances),
	}

	content, err := NewGenerator().Generate(report)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer file.Close()

	cell := func(ref string) string {
		value, err := file.GetCellValue("Авансы", ref)
		if err != nil {
			t.Fatalf("read %s: %v", ref, err)
		}
		return value
	}

	if got := cell("C2"); got != "штукатурка" {
		t.Errorf("C2 = %q, want %q", got, "штукатурка")
	}
	if got := cell("C3"); got != "не указано" {
		t.Errorf("empty work type C3 = %q, want %q", got, "не указано")
	}

	// Worker totals follow the detail rows.
	if got := cell("A5"); got != "Итого по рабочим" {
		t.Errorf("A5 = %q, want worker totals header", got)
	}
	if got := cell("B8"); got != "15 000.00 ₽" {
		t.Errorf("grand total B8 = %q, want %q", got, "15 000.00 ₽")
	}
}
