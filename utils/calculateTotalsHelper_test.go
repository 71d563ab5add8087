package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateLineAmounts(t *testing.T) {
	tests := []struct {
		name            string
		qty             string
		rate            string
		taxRate         string
		taxableOverride string
		wantTaxable     string
		wantTax         string
		wantAmount      string
	}{
		{
			name: "gst line", qty: "2", rate: "100", taxRate: "18",
			wantTaxable: "200", wantTax: "36", wantAmount: "236",
		},
		{
			name: "zero rated line", qty: "3", rate: "50", taxRate: "0",
			wantTaxable: "150", wantTax: "0", wantAmount: "150",
		},
		{
			name: "lumpsum override", qty: "1", rate: "0", taxRate: "18", taxableOverride: "1000",
			wantTaxable: "1000", wantTax: "180", wantAmount: "1180",
		},
		{
			name: "fractional qty", qty: "2.5", rate: "40", taxRate: "5",
			wantTaxable: "100", wantTax: "5", wantAmount: "105",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var override *decimal.Decimal
			if tt.taxableOverride != "" {
				d := dec(tt.taxableOverride)
				override = &d
			}
			got := CalculateLineAmounts(dec(tt.qty), dec(tt.rate), dec(tt.taxRate), override)
			if !got.TaxableValue.Equal(dec(tt.wantTaxable)) {
				t.Fatalf("taxable = %s, want %s", got.TaxableValue, tt.wantTaxable)
			}
			if !got.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Fatalf("tax = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.Amount.Equal(dec(tt.wantAmount)) {
				t.Fatalf("amount = %s, want %s", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestCalculateInvoiceTotals(t *testing.T) {
	lines := []LineAmounts{
		CalculateLineAmounts(dec("2"), dec("100"), dec("18"), nil),
		CalculateLineAmounts(dec("1"), dec("300"), dec("0"), nil),
	}

	totals := CalculateInvoiceTotals(lines, dec("10"))
	if !totals.Subtotal.Equal(dec("500")) {
		t.Fatalf("subtotal = %s, want 500", totals.Subtotal)
	}
	if !totals.TotalTax.Equal(dec("36")) {
		t.Fatalf("total tax = %s, want 36", totals.TotalTax)
	}
	if !totals.GrossTotal.Equal(dec("536")) {
		t.Fatalf("gross = %s, want 536", totals.GrossTotal)
	}
	if !totals.TdsAmount.Equal(dec("50")) {
		t.Fatalf("tds = %s, want 50", totals.TdsAmount)
	}
	if !totals.NetPayable.Equal(dec("486")) {
		t.Fatalf("net payable = %s, want 486", totals.NetPayable)
	}
}

func TestCalculateInvoiceTotalsNoLines(t *testing.T) {
	totals := CalculateInvoiceTotals(nil, dec("10"))
	if !totals.NetPayable.Equal(decimal.Zero) {
		t.Fatalf("net payable = %s, want 0", totals.NetPayable)
	}
	if !totals.TdsAmount.Equal(decimal.Zero) {
		t.Fatalf("tds = %s, want 0", totals.TdsAmount)
	}
}

func TestCalculateTaxAmount(t *testing.T) {
	// An inclusive amount keeps its displayed total; only the split moves.
	tax := CalculateTaxAmount(TaxTreatmentInclusive, dec("118"), dec("18"))
	if !tax.Equal(dec("18")) {
		t.Fatalf("inclusive tax = %s, want 18", tax)
	}

	tax = CalculateTaxAmount(TaxTreatmentExclusive, dec("100"), dec("18"))
	if !tax.Equal(dec("18")) {
		t.Fatalf("exclusive tax = %s, want 18", tax)
	}

	tax = CalculateTaxAmount(TaxTreatmentExclusive, dec("100"), decimal.Zero)
	if !tax.Equal(decimal.Zero) {
		t.Fatalf("zero rate tax = %s, want 0", tax)
	}
}

func TestLineTaxFromAmount(t *testing.T) {
	if got := LineTaxFromAmount(dec("100"), dec("118")); !got.Equal(dec("18")) {
		t.Fatalf("tax = %s, want 18", got)
	}
	// Amount below taxable clamps to zero instead of going negative.
	if got := LineTaxFromAmount(dec("100"), dec("90")); !got.Equal(decimal.Zero) {
		t.Fatalf("tax = %s, want 0", got)
	}
}
