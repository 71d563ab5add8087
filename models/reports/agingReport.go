package reports

import (
	"context"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// AgingBuckets holds outstanding receivables grouped by days past due.
// The four buckets are mutually exclusive and cover every unpaid invoice.
type AgingBuckets struct {
	Bucket0To30  decimal.Decimal `json:"bucket_0_to_30"`
	Bucket31To60 decimal.Decimal `json:"bucket_31_to_60"`
	Bucket61To90 decimal.Decimal `json:"bucket_61_to_90"`
	Bucket90Plus decimal.Decimal `json:"bucket_90_plus"`
	Total        decimal.Decimal `json:"total"`
}

// daysPastDue is clamped at zero: invoices due today or in the future age
// into the first bucket.
func daysPastDue(dueDate *time.Time, today time.Time) int {
	if dueDate == nil {
		// unparseable or missing due date counts as current by policy
		return 0
	}
	days := int(today.Sub(*dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// BucketInvoices distributes the net payable of each unpaid invoice into
// its aging bucket. Paid invoices contribute nothing regardless of due
// date. today is expected normalized to midnight.
func BucketInvoices(invoices []*models.Invoice, today time.Time) AgingBuckets {
	var buckets AgingBuckets
	for _, inv := range invoices {
		if inv.Status == models.InvoiceStatusPaid {
			continue
		}
		amount := inv.NetPayable
		days := daysPastDue(inv.DueDate, today)
		switch {
		case days <= 30:
			buckets.Bucket0To30 = buckets.Bucket0To30.Add(amount)
		case days <= 60:
			buckets.Bucket31To60 = buckets.Bucket31To60.Add(amount)
		case days <= 90:
			buckets.Bucket61To90 = buckets.Bucket61To90.Add(amount)
		default:
			buckets.Bucket90Plus = buckets.Bucket90Plus.Add(amount)
		}
		buckets.Total = buckets.Total.Add(amount)
	}
	return buckets
}

// Percent returns the bucket's share of the total, 0 when the total is 0.
func (b AgingBuckets) Percent(bucket decimal.Decimal) decimal.Decimal {
	if b.Total.IsZero() {
		return decimal.Zero
	}
	return bucket.Mul(oneHundred).DivRound(b.Total, 2)
}

type AgingSummaryResponse struct {
	Buckets        AgingBuckets    `json:"buckets"`
	Percent0To30   decimal.Decimal `json:"percent_0_to_30"`
	Percent31To60  decimal.Decimal `json:"percent_31_to_60"`
	Percent61To90  decimal.Decimal `json:"percent_61_to_90"`
	Percent90Plus  decimal.Decimal `json:"percent_90_plus"`
	InvoiceCount   int             `json:"invoice_count"`
	AsOf           time.Time       `json:"as_of"`
}

// GetReceivableAgingSummary buckets every unpaid invoice as of today.
func GetReceivableAgingSummary(ctx context.Context, today time.Time) (*AgingSummaryResponse, error) {
	db := config.GetDB()
	var invoices []*models.Invoice
	err := db.WithContext(ctx).
		Where("status <> ?", models.InvoiceStatusPaid).
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	buckets := BucketInvoices(invoices, today)
	return &AgingSummaryResponse{
		Buckets:       buckets,
		Percent0To30:  buckets.Percent(buckets.Bucket0To30),
		Percent31To60: buckets.Percent(buckets.Bucket31To60),
		Percent61To90: buckets.Percent(buckets.Bucket61To90),
		Percent90Plus: buckets.Percent(buckets.Bucket90Plus),
		InvoiceCount:  len(invoices),
		AsOf:          today,
	}, nil
}

type AgingDetailRow struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date"`
	DaysOverdue   int             `json:"days_overdue"`
	NetPayable    decimal.Decimal `json:"net_payable"`
	Status        string          `json:"status"`
}

// GetReceivableAgingDetail lists unpaid invoices with their day counts,
// oldest first. DATEDIFF against a NULL due date yields NULL, which scans
// as 0 and lands the row in the first bucket, matching BucketInvoices.
func GetReceivableAgingDetail(ctx context.Context, today time.Time) ([]*AgingDetailRow, error) {
	sql := `
SELECT
    invoice_number,
    customer_name,
    issue_date,
    due_date,
    CASE
        WHEN due_date IS NULL THEN 0
        WHEN DATEDIFF(?, due_date) < 0 THEN 0
        ELSE DATEDIFF(?, due_date)
    END AS days_overdue,
    net_payable,
    status
FROM
    invoices
WHERE
    status <> 'PAID'
ORDER BY
    days_overdue DESC, invoice_number`

	var rows []*AgingDetailRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, today, today).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
