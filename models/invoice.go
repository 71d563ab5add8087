package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice carries a snapshot of the customer's billing identity taken at
// save time and all computed totals as stored columns. The OVERDUE state
// is never one of them; it is derived per read via DisplayStatus.
type Invoice struct {
	ID            int               `gorm:"primary_key" json:"id"`
	InvoiceNumber string            `gorm:"uniqueIndex;size:20;not null" json:"invoice_number"`
	ShipmentId    int               `gorm:"uniqueIndex;not null" json:"shipment_id"`
	Shipment      *Shipment         `gorm:"foreignKey:ShipmentId" json:"shipment,omitempty"`
	CustomerName  string            `gorm:"size:100;not null" json:"customer_name"`
	CustomerGstin string            `gorm:"size:15" json:"customer_gstin"`
	IssueDate     time.Time         `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time        `json:"due_date"`
	CurrencyCode  string            `gorm:"size:3;not null;default:INR" json:"currency_code"`
	TdsRate       decimal.Decimal   `gorm:"type:decimal(5,2);not null" json:"tds_rate"`
	Status        InvoiceStatus     `gorm:"size:10;not null;default:DRAFT" json:"status"`
	Subtotal      decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TotalTax      decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"total_tax"`
	GrossTotal    decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"gross_total"`
	TdsAmount     decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"tds_amount"`
	NetPayable    decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"net_payable"`
	LineItems     []InvoiceLineItem `gorm:"foreignKey:InvoiceId" json:"line_items"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type InvoiceLineItem struct {
	ID           int             `gorm:"primary_key" json:"id"`
	InvoiceId    int             `gorm:"index;not null" json:"invoice_id"`
	Description  string          `gorm:"size:255;not null" json:"description"`
	HsnCode      string          `gorm:"size:8" json:"hsn_code"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	TaxableValue decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"taxable_value"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	SortOrder    int             `gorm:"not null" json:"sort_order"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInvoiceLineItem struct {
	Description  string           `json:"description" binding:"required"`
	HsnCode      string           `json:"hsn_code"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Rate         decimal.Decimal  `json:"rate"`
	TaxRate      decimal.Decimal  `json:"tax_rate"`
	TaxableValue *decimal.Decimal `json:"taxable_value"`
	Amount       *decimal.Decimal `json:"amount"`
}

type NewInvoice struct {
	ShipmentId   int                  `json:"shipment_id" binding:"required"`
	IssueDate    *time.Time           `json:"issue_date"`
	DueDate      *time.Time           `json:"due_date"`
	CurrencyCode string               `json:"currency_code"`
	TdsRate      decimal.Decimal      `json:"tds_rate"`
	LineItems    []NewInvoiceLineItem `json:"line_items" binding:"required,min=1"`
}

// DisplayStatus derives the status shown in lists. PAID and DRAFT win over
// everything, then a past due date turns a sent invoice into OVERDUE.
func (inv *Invoice) DisplayStatus(today time.Time) InvoiceStatus {
	switch inv.Status {
	case InvoiceStatusPaid:
		return InvoiceStatusPaid
	case InvoiceStatusDraft:
		return InvoiceStatusDraft
	}
	if inv.DueDate != nil && inv.DueDate.Before(today) {
		return InvoiceStatusOverdue
	}
	return InvoiceStatusSent
}

func (input *NewInvoice) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Shipment](ctx, input.ShipmentId); err != nil {
		return errors.New("shipment not found")
	}
	if input.CurrencyCode == "" {
		input.CurrencyCode = "INR"
	}
	count, err := utils.ResourceCountWhere[Currency](ctx, "code = ?", input.CurrencyCode)
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("unknown currency code")
	}
	if input.TdsRate.IsNegative() {
		return errors.New("tds rate must not be negative")
	}
	for _, line := range input.LineItems {
		if line.Quantity.IsNegative() || line.Rate.IsNegative() || line.TaxRate.IsNegative() {
			return errors.New("line values must not be negative")
		}
		if line.Amount != nil && line.Amount.IsNegative() {
			return errors.New("line amount must not be negative")
		}
	}
	return nil
}

func buildLineItems(input []NewInvoiceLineItem) ([]InvoiceLineItem, []utils.LineAmounts) {
	lines := make([]InvoiceLineItem, 0, len(input))
	amounts := make([]utils.LineAmounts, 0, len(input))
	for i, item := range input {
		la := utils.CalculateLineAmounts(item.Quantity, item.Rate, item.TaxRate, item.TaxableValue)
		if item.Amount != nil {
			// client supplied the gross directly; back out the tax from it
			la.TaxAmount = utils.LineTaxFromAmount(la.TaxableValue, *item.Amount)
			la.Amount = la.TaxableValue.Add(la.TaxAmount)
		}
		amounts = append(amounts, la)
		lines = append(lines, InvoiceLineItem{
			Description:  item.Description,
			HsnCode:      item.HsnCode,
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			TaxRate:      item.TaxRate,
			TaxableValue: la.TaxableValue,
			TaxAmount:    la.TaxAmount,
			Amount:       la.Amount,
			SortOrder:    i,
		})
	}
	return lines, amounts
}

// SaveInvoice is the upsert entry point: the first save for a shipment
// allocates an invoice number in the current fiscal year and creates the
// row; later saves replace the line items and recompute totals in place.
// The allocated number never changes across edits.
func SaveInvoice(ctx context.Context, input *NewInvoice, today time.Time) (*Invoice, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	shipment, err := utils.FetchModel[Shipment](ctx, input.ShipmentId, "Customer")
	if err != nil {
		return nil, err
	}
	if shipment.Customer == nil {
		return nil, errors.New("shipment has no customer")
	}

	issueDate := today
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}
	dueDate := input.DueDate
	if dueDate == nil && shipment.Customer.CreditDays > 0 {
		d := issueDate.AddDate(0, 0, shipment.Customer.CreditDays)
		dueDate = &d
	}

	lines, amounts := buildLineItems(input.LineItems)
	totals := utils.CalculateInvoiceTotals(amounts, input.TdsRate)

	db := config.GetDB()

	existing, err := utils.FetchModelWhere[Invoice](ctx, "shipment_id = ?", input.ShipmentId)
	if err == nil {
		// replace lines, keep number and status
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(existing).Updates(map[string]interface{}{
				"CustomerName":  shipment.Customer.Name,
				"CustomerGstin": shipment.Customer.Gstin,
				"IssueDate":     issueDate,
				"DueDate":       dueDate,
				"CurrencyCode":  input.CurrencyCode,
				"TdsRate":       input.TdsRate,
				"Subtotal":      totals.Subtotal,
				"TotalTax":      totals.TotalTax,
				"GrossTotal":    totals.GrossTotal,
				"TdsAmount":     totals.TdsAmount,
				"NetPayable":    totals.NetPayable,
			}).Error; err != nil {
				return err
			}
			if err := tx.Where("invoice_id = ?", existing.ID).Delete(&InvoiceLineItem{}).Error; err != nil {
				return err
			}
			for i := range lines {
				lines[i].InvoiceId = existing.ID
				if err := tx.Create(&lines[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		RecordAudit(ctx, "update", "invoice", existing.ID, input)
		return GetInvoice(ctx, existing.ID)
	}
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, err
	}

	prefix := InvoiceNumberPrefix(issueDate)
	invoice := Invoice{
		ShipmentId:    input.ShipmentId,
		CustomerName:  shipment.Customer.Name,
		CustomerGstin: shipment.Customer.Gstin,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		CurrencyCode:  input.CurrencyCode,
		TdsRate:       input.TdsRate,
		Status:        InvoiceStatusDraft,
		Subtotal:      totals.Subtotal,
		TotalTax:      totals.TotalTax,
		GrossTotal:    totals.GrossTotal,
		TdsAmount:     totals.TdsAmount,
		NetPayable:    totals.NetPayable,
		LineItems:     lines,
	}

	err = allocateWithRetry(ctx, db.WithContext(ctx), &Invoice{}, "invoice_number", prefix,
		"invoice", "SaveInvoice", func(tx *gorm.DB, identifier string) error {
			invoice.ID = 0
			invoice.InvoiceNumber = identifier
			for i := range invoice.LineItems {
				invoice.LineItems[i].ID = 0
				invoice.LineItems[i].InvoiceId = 0
			}
			return tx.Create(&invoice).Error
		})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "invoice", invoice.ID, invoice)
	return &invoice, nil
}

// UpdateInvoiceStatus accepts stored statuses only; OVERDUE is derived,
// never written.
func UpdateInvoiceStatus(ctx context.Context, id int, status InvoiceStatus) (*Invoice, error) {
	if !status.IsValidStored() {
		return nil, ErrInvalidEnum("status")
	}
	invoice, err := utils.FetchModel[Invoice](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(invoice).Update("status", status).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "status", "invoice", invoice.ID, map[string]string{"status": string(status)})
	return invoice, nil
}

// DeleteInvoice is best-effort: deleting an invoice that is already gone
// is success, not an error.
func DeleteInvoice(ctx context.Context, id int) error {
	db := config.GetDB()
	invoice, err := utils.FetchModel[Invoice](ctx, id)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&InvoiceLineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Invoice{}, id).Error
	})
	if err != nil {
		return err
	}

	RecordAudit(ctx, "delete", "invoice", invoice.ID, invoice)
	return nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	db := config.GetDB()
	var invoice Invoice
	err := db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Shipment").
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func GetInvoiceByShipment(ctx context.Context, shipmentId int) (*Invoice, error) {
	invoice, err := utils.FetchModelWhere[Invoice](ctx, "shipment_id = ?", shipmentId)
	if err != nil {
		return nil, err
	}
	return GetInvoice(ctx, invoice.ID)
}

type InvoiceFilter struct {
	Status *InvoiceStatus
	Search *string
}

// GetInvoices lists invoices with the display status applied. Filtering by
// OVERDUE matches sent invoices whose due date has passed.
func GetInvoices(ctx context.Context, filter InvoiceFilter, today time.Time) ([]*Invoice, error) {
	db := config.GetDB()
	var results []*Invoice

	dbCtx := db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		dbCtx = dbCtx.Where("invoice_number LIKE ? OR customer_name LIKE ?", like, like)
	}
	if err := dbCtx.Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}

	if filter.Status == nil {
		return results, nil
	}
	filtered := make([]*Invoice, 0, len(results))
	for _, inv := range results {
		if inv.DisplayStatus(today) == *filter.Status {
			filtered = append(filtered, inv)
		}
	}
	return filtered, nil
}
