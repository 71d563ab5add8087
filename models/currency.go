package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

type Currency struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Code          string    `gorm:"uniqueIndex;size:3;not null" json:"code" binding:"required,len=3"`
	Name          string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Symbol        string    `gorm:"size:10" json:"symbol"`
	DecimalPlaces int       `gorm:"not null;default:2" json:"decimal_places"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCurrency struct {
	Code          string `json:"code" binding:"required,len=3"`
	Name          string `json:"name" binding:"required"`
	Symbol        string `json:"symbol"`
	DecimalPlaces *int   `json:"decimal_places"`
}

func (input *NewCurrency) validate(ctx context.Context, id int) error {
	input.Code = strings.ToUpper(input.Code)
	return utils.ValidateUnique[Currency](ctx, "code", input.Code, id)
}

func CreateCurrency(ctx context.Context, input *NewCurrency) (*Currency, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	currency := Currency{
		Code:          input.Code,
		Name:          input.Name,
		Symbol:        input.Symbol,
		DecimalPlaces: utils.DereferencePtr(input.DecimalPlaces, 2),
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&currency).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Currency]()
	return &currency, nil
}

func UpdateCurrency(ctx context.Context, id int, input *NewCurrency) (*Currency, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	currency, err := utils.FetchModel[Currency](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(currency).Updates(map[string]interface{}{
		"Code":          input.Code,
		"Name":          input.Name,
		"Symbol":        input.Symbol,
		"DecimalPlaces": utils.DereferencePtr(input.DecimalPlaces, currency.DecimalPlaces),
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Currency]()
	return currency, nil
}

func DeleteCurrency(ctx context.Context, id int) (*Currency, error) {
	currency, err := utils.FetchModel[Currency](ctx, id)
	if err != nil {
		return nil, err
	}

	// a currency referenced by operational documents stays
	count, err := utils.ResourceCountWhere[Invoice](ctx, "currency_code = ?", currency.Code)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("currency", "invoices")
	}
	count, err = utils.ResourceCountWhere[Quote](ctx, "currency_code = ?", currency.Code)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("currency", "quotes")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(currency).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Currency]()
	return currency, nil
}

func GetCurrency(ctx context.Context, id int) (*Currency, error) {
	return utils.FetchModel[Currency](ctx, id)
}

func GetCurrencies(ctx context.Context) ([]*Currency, error) {
	if cached, err := utils.RetrieveRedisList[Currency](); err == nil && len(cached) > 0 {
		return cached, nil
	}

	db := config.GetDB()
	var results []*Currency
	if err := db.WithContext(ctx).Order("code").Find(&results).Error; err != nil {
		return nil, err
	}
	utils.StoreRedisList[Currency](results)
	return results, nil
}
