package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
)

// Product is a catalogue commodity with its HSN classification and the
// default GST rate applied when it appears on an invoice line.
type Product struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Name           string          `gorm:"index;size:100;not null" json:"name" binding:"required"`
	HsnCode        string          `gorm:"index;size:8" json:"hsn_code"`
	Unit           string          `gorm:"size:20;not null;default:KG" json:"unit"`
	DefaultTaxRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"default_tax_rate"`
	CategoryId     int             `gorm:"index;not null" json:"category_id" binding:"required"`
	Category       *ProductCategory `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name           string          `json:"name" binding:"required"`
	HsnCode        string          `json:"hsn_code"`
	Unit           string          `json:"unit"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	CategoryId     int             `json:"category_id" binding:"required"`
}

func (input *NewProduct) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Product](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[ProductCategory](ctx, input.CategoryId); err != nil {
		return errors.New("category not found")
	}
	if input.DefaultTaxRate.IsNegative() {
		return errors.New("tax rate must not be negative")
	}
	if input.Unit == "" {
		input.Unit = "KG"
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:           input.Name,
		HsnCode:        input.HsnCode,
		Unit:           input.Unit,
		DefaultTaxRate: input.DefaultTaxRate,
		CategoryId:     input.CategoryId,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "product", product.ID, product)
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(product).Updates(map[string]interface{}{
		"Name":           input.Name,
		"HsnCode":        input.HsnCode,
		"Unit":           input.Unit,
		"DefaultTaxRate": input.DefaultTaxRate,
		"CategoryId":     input.CategoryId,
	}).Error
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "product", product.ID, input)
	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[ShipmentCargoItem](ctx, "product_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("product", "shipment cargo")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(product).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "product", product.ID, product)
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return utils.FetchModel[Product](ctx, id, "Category")
}

func GetProducts(ctx context.Context, name *string, categoryId *int) ([]*Product, error) {
	db := config.GetDB()
	var results []*Product

	dbCtx := db.WithContext(ctx).Preload("Category")
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if categoryId != nil && *categoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *categoryId)
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveProduct(ctx context.Context, id int, isActive bool) (*Product, error) {
	product, err := utils.FetchModel[Product](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(product).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}
	return product, nil
}
