package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInvoiceDisplayStatus(t *testing.T) {
	today := date(2025, time.June, 1)
	past := date(2025, time.May, 20)
	future := date(2025, time.June, 10)

	cases := []struct {
		name    string
		status  InvoiceStatus
		dueDate *time.Time
		want    InvoiceStatus
	}{
		{"paid wins over past due", InvoiceStatusPaid, &past, InvoiceStatusPaid},
		{"draft stays draft", InvoiceStatusDraft, &past, InvoiceStatusDraft},
		{"sent past due is overdue", InvoiceStatusSent, &past, InvoiceStatusOverdue},
		{"sent future due stays sent", InvoiceStatusSent, &future, InvoiceStatusSent},
		{"sent due today stays sent", InvoiceStatusSent, &today, InvoiceStatusSent},
		{"sent without due date stays sent", InvoiceStatusSent, nil, InvoiceStatusSent},
	}
	for _, c := range cases {
		inv := Invoice{Status: c.status, DueDate: c.dueDate}
		if got := inv.DisplayStatus(today); got != c.want {
			t.Fatalf("%s: DisplayStatus = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestStoredInvoiceStatusValidation(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid} {
		if !s.IsValidStored() {
			t.Fatalf("%s should be storable", s)
		}
	}
	if InvoiceStatusOverdue.IsValidStored() {
		t.Fatalf("OVERDUE must never be stored")
	}
}

func TestBuildLineItemsGrossAmountOverride(t *testing.T) {
	dec := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	ptr := func(s string) *decimal.Decimal {
		d := dec(s)
		return &d
	}

	cases := []struct {
		name      string
		item      NewInvoiceLineItem
		wantTax   string
		wantGross string
	}{
		{
			name: "gross amount backs out the tax",
			item: NewInvoiceLineItem{
				Description:  "Ocean freight",
				TaxableValue: ptr("1000"),
				Amount:       ptr("1180"),
			},
			wantTax:   "180",
			wantGross: "1180",
		},
		{
			name: "gross below taxable clamps tax to zero",
			item: NewInvoiceLineItem{
				Description:  "Documentation fee",
				TaxableValue: ptr("500"),
				Amount:       ptr("450"),
			},
			wantTax:   "0",
			wantGross: "500",
		},
		{
			name: "gross override wins over tax rate",
			item: NewInvoiceLineItem{
				Description: "Handling",
				Quantity:    dec("2"),
				Rate:        dec("100"),
				TaxRate:     dec("18"),
				Amount:      ptr("210"),
			},
			wantTax:   "10",
			wantGross: "210",
		},
	}
	for _, c := range cases {
		lines, amounts := buildLineItems([]NewInvoiceLineItem{c.item})
		if len(lines) != 1 || len(amounts) != 1 {
			t.Fatalf("%s: got %d lines, %d amounts", c.name, len(lines), len(amounts))
		}
		if !lines[0].TaxAmount.Equal(dec(c.wantTax)) {
			t.Fatalf("%s: tax = %s, want %s", c.name, lines[0].TaxAmount, c.wantTax)
		}
		if !lines[0].Amount.Equal(dec(c.wantGross)) {
			t.Fatalf("%s: amount = %s, want %s", c.name, lines[0].Amount, c.wantGross)
		}
		if !lines[0].Amount.Equal(lines[0].TaxableValue.Add(lines[0].TaxAmount)) {
			t.Fatalf("%s: amount must equal taxable + tax", c.name)
		}
	}
}
