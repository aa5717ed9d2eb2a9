package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00 ₽"},
		{"999", "999.00 ₽"},
		{"12500", "12 500.00 ₽"},
		{"1234567.5", "1 234 567.50 ₽"},
		{"-5000.25", "-5 000.25 ₽"},
		{"100", "100.00 ₽"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatCurrency(dec(tt.in)); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00%"},
		{"12.345", "12.35%"},
		{"-3.5", "-3.50%"},
		{"100", "100.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatPercentage(dec(tt.in)); got != tt.want {
				t.Errorf("FormatPercentage(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRatio_ZeroDenominator(t *testing.T) {
	if got := Ratio(dec("100"), decimal.Zero); !got.IsZero() {
		t.Errorf("Ratio(100, 0) = %s, want 0", got)
	}
	if got := Ratio(dec("50"), dec("200")); !got.Equal(dec("0.25")) {
		t.Errorf("Ratio(50, 200) = %s, want 0.25", got)
	}
}
