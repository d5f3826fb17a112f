package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINR_Grouping(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{500, "₹500"},
		{1000, "₹1,000"},
		{45000, "₹45,000"},
		{100000, "₹1,00,000"},
		{1234567, "₹12,34,567"},
		{12345678, "₹1,23,45,678"},
		{123456789, "₹12,34,56,789"},
	}

	for _, tt := range tests {
		if got := FormatINR(decimal.NewFromInt(tt.amount)); got != tt.want {
			t.Errorf("FormatINR(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatINR_Negative(t *testing.T) {
	if got := FormatINR(decimal.NewFromInt(-150000)); got != "-₹1,50,000" {
		t.Errorf("FormatINR(-150000) = %q, want -₹1,50,000", got)
	}
}

func TestFormatINR_RoundsToWholeRupees(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"999.49", "₹999"},
		{"999.50", "₹1,000"},
		{"1234.99", "₹1,235"},
	}

	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.amount)
		if got := FormatINR(d); got != tt.want {
			t.Errorf("FormatINR(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
