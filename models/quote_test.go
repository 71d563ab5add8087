package models

import (
	"testing"

	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
)

func TestQuoteTotalsExclusive(t *testing.T) {
	charges := []NewQuoteCharge{
		{Name: "Ocean freight", Amount: decimal.NewFromInt(80)},
		{Name: "Port handling", Amount: decimal.NewFromInt(20)},
	}
	subtotal, tax, total := quoteTotals(charges, decimal.NewFromInt(18), utils.TaxTreatmentExclusive)

	if !subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("subtotal = %s, want 100", subtotal)
	}
	if !tax.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("tax = %s, want 18", tax)
	}
	if !total.Equal(decimal.NewFromInt(118)) {
		t.Fatalf("total = %s, want 118", total)
	}
}

func TestQuoteTotalsInclusive(t *testing.T) {
	charges := []NewQuoteCharge{{Name: "All-in rate", Amount: decimal.NewFromInt(118)}}
	subtotal, tax, total := quoteTotals(charges, decimal.NewFromInt(18), utils.TaxTreatmentInclusive)

	if !subtotal.Equal(decimal.NewFromInt(118)) {
		t.Fatalf("subtotal = %s, want 118", subtotal)
	}
	// 118 / 118 * 18
	if !tax.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("tax = %s, want 18", tax)
	}
	// inclusive treatment leaves the displayed total unchanged
	if !total.Equal(decimal.NewFromInt(118)) {
		t.Fatalf("total = %s, want 118", total)
	}
}

func TestQuoteTotalsZeroRate(t *testing.T) {
	charges := []NewQuoteCharge{{Name: "Documentation", Amount: decimal.NewFromInt(50)}}
	subtotal, tax, total := quoteTotals(charges, decimal.Zero, utils.TaxTreatmentExclusive)

	if !subtotal.Equal(decimal.NewFromInt(50)) || !tax.IsZero() || !total.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("got subtotal=%s tax=%s total=%s", subtotal, tax, total)
	}
}
