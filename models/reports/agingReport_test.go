package reports

import (
	"testing"
	"time"

	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func unpaidInvoice(due *time.Time, amount int64) *models.Invoice {
	return &models.Invoice{
		Status:     models.InvoiceStatusSent,
		DueDate:    due,
		NetPayable: decimal.NewFromInt(amount),
	}
}

func TestBucketInvoices(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	invoices := []*models.Invoice{
		unpaidInvoice(day(2025, time.May, 20), 500),   // 12 days overdue
		unpaidInvoice(day(2025, time.April, 10), 700), // 52 days
		unpaidInvoice(day(2025, time.March, 10), 200), // 83 days
		unpaidInvoice(day(2025, time.March, 1), 300),  // 92 days
		unpaidInvoice(day(2025, time.June, 10), 100),  // due in future
		unpaidInvoice(nil, 50),                        // no due date, first bucket
	}

	buckets := BucketInvoices(invoices, today)

	if !buckets.Bucket0To30.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("0-30 = %s, want 650", buckets.Bucket0To30)
	}
	if !buckets.Bucket31To60.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("31-60 = %s, want 700", buckets.Bucket31To60)
	}
	if !buckets.Bucket61To90.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("61-90 = %s, want 200", buckets.Bucket61To90)
	}
	if !buckets.Bucket90Plus.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("90+ = %s, want 300", buckets.Bucket90Plus)
	}
	if !buckets.Total.Equal(decimal.NewFromInt(1850)) {
		t.Fatalf("total = %s, want 1850", buckets.Total)
	}
}

func TestBucketInvoicesSkipsPaid(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	paid := unpaidInvoice(day(2025, time.January, 1), 999)
	paid.Status = models.InvoiceStatusPaid

	buckets := BucketInvoices([]*models.Invoice{paid}, today)
	if !buckets.Total.IsZero() {
		t.Fatalf("paid invoice must not age, total = %s", buckets.Total)
	}
}

func TestBucketPercentages(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	invoices := []*models.Invoice{
		unpaidInvoice(day(2025, time.May, 25), 750),
		unpaidInvoice(day(2025, time.February, 1), 250),
	}
	buckets := BucketInvoices(invoices, today)

	p1 := buckets.Percent(buckets.Bucket0To30)
	p4 := buckets.Percent(buckets.Bucket90Plus)
	if !p1.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("0-30 percent = %s, want 75", p1)
	}
	if !p4.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("90+ percent = %s, want 25", p4)
	}

	sum := p1.Add(p4).
		Add(buckets.Percent(buckets.Bucket31To60)).
		Add(buckets.Percent(buckets.Bucket61To90))
	if !sum.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("percentages sum to %s, want 100", sum)
	}
}

func TestBucketPercentZeroTotal(t *testing.T) {
	var buckets AgingBuckets
	if !buckets.Percent(buckets.Bucket0To30).IsZero() {
		t.Fatalf("percent of empty bucket set must be 0")
	}
}

func TestDaysPastDue(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		due  *time.Time
		want int
	}{
		{day(2025, time.May, 20), 12},
		{day(2025, time.March, 1), 92},
		{day(2025, time.June, 1), 0},
		{day(2025, time.June, 10), 0},
		{nil, 0},
	}
	for _, c := range cases {
		if got := daysPastDue(c.due, today); got != c.want {
			t.Fatalf("daysPastDue(%v) = %d, want %d", c.due, got, c.want)
		}
	}
}
