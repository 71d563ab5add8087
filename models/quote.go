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

// Quote is created from a shipment and carries an immutable snapshot of the
// customer and route taken at creation time. The snapshot columns are never
// re-read from the shipment: later edits to the shipment or customer do
// not flow back into an issued quote.
type Quote struct {
	ID          int    `gorm:"primary_key" json:"id"`
	QuoteNumber string `gorm:"uniqueIndex;size:20;not null" json:"quote_number"`
	ShipmentId  int    `gorm:"index;not null" json:"shipment_id"`

	// snapshot fields, copied once
	CustomerName        string            `gorm:"size:100;not null" json:"customer_name"`
	CustomerGstin       string            `gorm:"size:15" json:"customer_gstin"`
	OriginPortName      string            `gorm:"size:100;not null" json:"origin_port_name"`
	DestinationPortName string            `gorm:"size:100;not null" json:"destination_port_name"`
	Direction           ShipmentDirection `gorm:"size:3;not null" json:"direction"`
	Mode                TransportMode     `gorm:"size:10;not null" json:"mode"`
	CommodityType       CommodityType     `gorm:"size:2;not null" json:"commodity_type"`

	QuoteDate    time.Time          `gorm:"not null" json:"quote_date"`
	ValidityDays int                `gorm:"not null;default:15" json:"validity_days"`
	ValidTill    time.Time          `gorm:"not null" json:"valid_till"`
	CurrencyCode string             `gorm:"size:3;not null;default:INR" json:"currency_code"`
	TaxPercent   decimal.Decimal    `gorm:"type:decimal(5,2);not null" json:"tax_percent"`
	TaxTreatment utils.TaxTreatment `gorm:"size:10;not null;default:Exclusive" json:"tax_treatment"`
	Status       QuoteStatus        `gorm:"size:10;not null;default:DRAFT" json:"status"`
	Subtotal     decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TaxAmount    decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	Total        decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"total"`
	Charges      []QuoteCharge      `gorm:"foreignKey:QuoteId" json:"charges"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

type QuoteCharge struct {
	ID        int             `gorm:"primary_key" json:"id"`
	QuoteId   int             `gorm:"index;not null" json:"quote_id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	SortOrder int             `gorm:"not null" json:"sort_order"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewQuoteCharge struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

type NewQuote struct {
	ShipmentId   int                `json:"shipment_id" binding:"required"`
	QuoteDate    *time.Time         `json:"quote_date"`
	ValidityDays int                `json:"validity_days"`
	CurrencyCode string             `json:"currency_code"`
	TaxPercent   decimal.Decimal    `json:"tax_percent"`
	TaxTreatment utils.TaxTreatment `json:"tax_treatment"`
	Charges      []NewQuoteCharge   `json:"charges" binding:"required,min=1"`
}

func (input *NewQuote) validate(ctx context.Context) error {
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
	if input.TaxPercent.IsNegative() {
		return errors.New("tax percent must not be negative")
	}
	if input.TaxTreatment == "" {
		input.TaxTreatment = utils.TaxTreatmentExclusive
	}
	if input.TaxTreatment != utils.TaxTreatmentExclusive && input.TaxTreatment != utils.TaxTreatmentInclusive {
		return ErrInvalidEnum("tax_treatment")
	}
	if input.ValidityDays <= 0 {
		input.ValidityDays = 15
	}
	for _, charge := range input.Charges {
		if charge.Amount.IsNegative() {
			return errors.New("charge amount must not be negative")
		}
	}
	return nil
}

// quoteTotals sums the charges, then applies the tax treatment: Exclusive
// adds tax on top, Inclusive recovers the tax already inside the total and
// leaves the total unchanged.
func quoteTotals(charges []NewQuoteCharge, taxPercent decimal.Decimal, treatment utils.TaxTreatment) (subtotal, tax, total decimal.Decimal) {
	for _, charge := range charges {
		subtotal = subtotal.Add(charge.Amount)
	}
	tax = utils.CalculateTaxAmount(treatment, subtotal, taxPercent)
	if treatment == utils.TaxTreatmentInclusive {
		total = subtotal
	} else {
		total = subtotal.Add(tax)
	}
	return subtotal, tax, total
}

func CreateQuote(ctx context.Context, input *NewQuote, today time.Time) (*Quote, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	shipment, err := GetShipment(ctx, input.ShipmentId)
	if err != nil {
		return nil, err
	}
	if shipment.Customer == nil || shipment.OriginPort == nil || shipment.DestinationPort == nil {
		return nil, errors.New("shipment is missing customer or route data")
	}

	quoteDate := today
	if input.QuoteDate != nil {
		quoteDate = *input.QuoteDate
	}

	subtotal, tax, total := quoteTotals(input.Charges, input.TaxPercent, input.TaxTreatment)

	quote := Quote{
		ShipmentId:          input.ShipmentId,
		CustomerName:        shipment.Customer.Name,
		CustomerGstin:       shipment.Customer.Gstin,
		OriginPortName:      shipment.OriginPort.Name,
		DestinationPortName: shipment.DestinationPort.Name,
		Direction:           shipment.Direction,
		Mode:                shipment.Mode,
		CommodityType:       shipment.CommodityType,
		QuoteDate:           quoteDate,
		ValidityDays:        input.ValidityDays,
		ValidTill:           quoteDate.AddDate(0, 0, input.ValidityDays),
		CurrencyCode:        input.CurrencyCode,
		TaxPercent:          input.TaxPercent,
		TaxTreatment:        input.TaxTreatment,
		Status:              QuoteStatusDraft,
		Subtotal:            subtotal,
		TaxAmount:           tax,
		Total:               total,
	}
	for i, charge := range input.Charges {
		quote.Charges = append(quote.Charges, QuoteCharge{
			Name:      charge.Name,
			Amount:    charge.Amount,
			SortOrder: i,
		})
	}

	db := config.GetDB()
	prefix := QuoteNumberPrefix(quoteDate)
	err = allocateWithRetry(ctx, db.WithContext(ctx), &Quote{}, "quote_number", prefix,
		"quote", "CreateQuote", func(tx *gorm.DB, identifier string) error {
			quote.ID = 0
			quote.QuoteNumber = identifier
			for i := range quote.Charges {
				quote.Charges[i].ID = 0
				quote.Charges[i].QuoteId = 0
			}
			return tx.Create(&quote).Error
		})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "quote", quote.ID, quote)
	return &quote, nil
}

// UpdateQuote replaces charges and recomputes totals. Snapshot columns and
// the quote number stay as issued.
func UpdateQuote(ctx context.Context, id int, input *NewQuote) (*Quote, error) {
	quote, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	quoteDate := quote.QuoteDate
	if input.QuoteDate != nil {
		quoteDate = *input.QuoteDate
	}
	subtotal, tax, total := quoteTotals(input.Charges, input.TaxPercent, input.TaxTreatment)

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(quote).Updates(map[string]interface{}{
			"QuoteDate":    quoteDate,
			"ValidityDays": input.ValidityDays,
			"ValidTill":    quoteDate.AddDate(0, 0, input.ValidityDays),
			"CurrencyCode": input.CurrencyCode,
			"TaxPercent":   input.TaxPercent,
			"TaxTreatment": input.TaxTreatment,
			"Subtotal":     subtotal,
			"TaxAmount":    tax,
			"Total":        total,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&QuoteCharge{}).Error; err != nil {
			return err
		}
		for i, charge := range input.Charges {
			row := QuoteCharge{
				QuoteId:   id,
				Name:      charge.Name,
				Amount:    charge.Amount,
				SortOrder: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "quote", quote.ID, input)
	return GetQuote(ctx, id)
}

func UpdateQuoteStatus(ctx context.Context, id int, status QuoteStatus) (*Quote, error) {
	if !status.IsValid() {
		return nil, ErrInvalidEnum("status")
	}
	quote, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(quote).Update("status", status).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "status", "quote", quote.ID, map[string]string{"status": string(status)})
	return quote, nil
}

func DeleteQuote(ctx context.Context, id int) (*Quote, error) {
	quote, err := utils.FetchModel[Quote](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&QuoteCharge{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Quote{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "quote", quote.ID, quote)
	return quote, nil
}

func GetQuote(ctx context.Context, id int) (*Quote, error) {
	db := config.GetDB()
	var quote Quote
	err := db.WithContext(ctx).
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&quote, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &quote, nil
}

type QuoteFilter struct {
	Status *QuoteStatus
	Search *string
}

func GetQuotes(ctx context.Context, filter QuoteFilter) ([]*Quote, error) {
	db := config.GetDB()
	var results []*Quote

	dbCtx := db.WithContext(ctx).
		Preload("Charges", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })
	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		dbCtx = dbCtx.Where("quote_number LIKE ? OR customer_name LIKE ?", like, like)
	}
	if err := dbCtx.Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
