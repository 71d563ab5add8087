package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYearLabel(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{date(2025, time.December, 1), "25/26"},
		{date(2025, time.February, 1), "24/25"},
		{date(2025, time.April, 1), "25/26"},
		{date(2025, time.March, 31), "24/25"},
		{date(2024, time.July, 15), "24/25"},
		{date(2030, time.January, 1), "29/30"},
	}
	for _, c := range cases {
		if got := FiscalYearLabel(c.date); got != c.want {
			t.Fatalf("FiscalYearLabel(%v) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestIdentifierPrefixes(t *testing.T) {
	d := date(2025, time.December, 1)
	if got := InvoiceNumberPrefix(d); got != "INDO-25/26-" {
		t.Fatalf("InvoiceNumberPrefix = %q", got)
	}
	if got := ShipmentNumberPrefix(d); got != "SHP-2025-" {
		t.Fatalf("ShipmentNumberPrefix = %q", got)
	}
	if got := QuoteNumberPrefix(d); got != "QT-2025-" {
		t.Fatalf("QuoteNumberPrefix = %q", got)
	}
	if got := ShipmentReferencePrefix(DirectionImport, CommodityFrozen); got != "IMP-FZ-" {
		t.Fatalf("ShipmentReferencePrefix = %q", got)
	}
}

func TestExtractSequence(t *testing.T) {
	cases := []struct {
		identifier string
		prefix     string
		want       int
		ok         bool
	}{
		{"INDO-25/26-007", "INDO-25/26-", 7, true},
		{"INDO-25/26-abc", "INDO-25/26-", 0, false},
		{"INDO-24/25-007", "INDO-25/26-", 0, false},
		{"INDO-25/26-1X", "INDO-25/26-", 0, false},
		{"INDO-25/26-", "INDO-25/26-", 0, false},
		{"SHP-2025-120", "SHP-2025-", 120, true},
		{"QT-2025-001", "QT-2025-", 1, true},
		{"", "INDO-25/26-", 0, false},
	}
	for _, c := range cases {
		got, ok := ExtractSequence(c.identifier, c.prefix)
		if got != c.want || ok != c.ok {
			t.Fatalf("ExtractSequence(%q, %q) = (%d, %v), want (%d, %v)",
				c.identifier, c.prefix, got, ok, c.want, c.ok)
		}
	}
}

func TestNextSequence(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		prefix   string
		want     int
	}{
		{"empty", nil, "INDO-25/26-", 1},
		{"uses max not count", []string{"INDO-25/26-001", "INDO-25/26-003"}, "INDO-25/26-", 4},
		{"skips malformed", []string{"INDO-25/26-002", "INDO-25/26-9X"}, "INDO-25/26-", 3},
		{"skips other prefix", []string{"INDO-24/25-050"}, "INDO-25/26-", 1},
	}
	for _, c := range cases {
		if got := NextSequence(c.existing, c.prefix); got != c.want {
			t.Fatalf("%s: NextSequence = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestFormatIdentifier(t *testing.T) {
	if got := FormatIdentifier("INDO-25/26-", 4); got != "INDO-25/26-004" {
		t.Fatalf("FormatIdentifier = %q", got)
	}
	if got := FormatIdentifier("SHP-2025-", 120); got != "SHP-2025-120" {
		t.Fatalf("FormatIdentifier = %q", got)
	}
}
